// Package cli builds the cobra command tree and maps command results to
// process exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/fjsf/internal/app"
	"github.com/atomicstack/fjsf/internal/config"
	"github.com/atomicstack/fjsf/internal/logging"
	"github.com/atomicstack/fjsf/internal/logging/events"
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

// Options carries the process inputs of one invocation. Zero fields fall
// back to the real process.
type Options struct {
	Environ []string
	Dir     string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	OnStart func(config.Config)
	NewApp  func(app.Config) (*app.App, error)
}

func (o Options) withDefaults() Options {
	if o.Environ == nil {
		o.Environ = os.Environ()
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.NewApp == nil {
		o.NewApp = app.New
	}
	return o
}

// Execute loads configuration, runs the command selected by args and returns
// the exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()
	if args == nil {
		// cobra reads os.Args when given nil
		args = []string{}
	}
	cfg, err := config.Load(opts.Environ)
	if err != nil {
		return report(opts.Stderr, err)
	}
	root := newRootCommand(&cfg, opts, args)
	root.SetArgs(args)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)
	root.SetIn(opts.Stdin)
	code := report(opts.Stderr, root.ExecuteContext(ctx))
	events.App.Exit(code)
	return code
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, config.ErrInvalid) {
		return exitConfig
	}
	var exitErr *app.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return exitError
}

func report(w io.Writer, err error) int {
	code := ExitCode(err)
	if err == nil {
		return code
	}
	var exitErr *app.ExitError
	switch {
	case errors.Is(err, config.ErrInvalid):
		fmt.Fprintf(w, "Configuration error: %v\n", err)
	case errors.As(err, &exitErr):
		if exitErr.Message != "" {
			fmt.Fprintln(w, exitErr.Message)
		}
	default:
		logging.Error(err)
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return code
}

// newRootCommand builds the command tree. Flag defaults come from cfg, which
// already holds the file and environment layers; parsed flags are written
// back into it. argv is recorded for the startup trace.
func newRootCommand(cfg *config.Config, opts Options, argv []string) *cobra.Command {
	opts = opts.withDefaults()
	newApp := func() (*app.App, error) {
		a, err := opts.NewApp(cfg.App)
		if err != nil {
			return nil, err
		}
		if opts.Dir != "" {
			a.Dir = opts.Dir
		}
		a.Stdin, a.Stdout, a.Stderr = opts.Stdin, opts.Stdout, opts.Stderr
		a.Runner.Stdin, a.Runner.Stdout, a.Runner.Stderr = opts.Stdin, opts.Stdout, opts.Stderr
		return a, nil
	}

	root := &cobra.Command{
		Use:   "fjsf [manifest.json]",
		Short: "Fuzzy JSON Search & Filter",
		Long: `fjsf fuzzy-searches the npm scripts of a repository and its workspaces,
or the key paths of any JSON file, and runs or prints the selection.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(*cfg); err != nil {
				return err
			}
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			cfg.Snapshot(argv)
			if opts.OnStart != nil {
				opts.OnStart(*cfg)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			manifest := ""
			// anything that is not a manifest falls through to the default search
			if len(args) == 1 && strings.HasSuffix(args[0], ".json") {
				manifest = args[0]
			}
			return a.Scripts(cmd.Context(), manifest)
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&cfg.App.Width, "width", cfg.App.Width, "viewport width in cells (0 uses the terminal width)")
	flags.IntVar(&cfg.App.Height, "height", cfg.App.Height, "viewport height in rows (0 uses the terminal height)")
	flags.IntVar(&cfg.App.MaxVisible, "max-visible", cfg.App.MaxVisible, "maximum rows shown by the full-screen picker")
	flags.IntVar(&cfg.App.WidgetMaxVisible, "widget-max-visible", cfg.App.WidgetMaxVisible, "maximum rows shown by the inline widget")
	flags.BoolVar(&cfg.App.ShowFooter, "footer", cfg.App.ShowFooter, "show the key hint footer")
	flags.BoolVar(&cfg.Logging.Trace, "trace", cfg.Logging.Trace, "write structured trace entries to the log file")
	flags.StringVar(&cfg.Logging.FilePath, "log-file", cfg.Logging.FilePath, "path to the log file")

	root.AddCommand(
		&cobra.Command{
			Use:     "find [file]",
			Aliases: []string{"f"},
			Short:   "Search every file with this name below the working directory (default package.json)",
			Args:    cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return a.Find(firstArg(args))
			},
		},
		&cobra.Command{
			Use:     "path <file>",
			Aliases: []string{"p"},
			Short:   "Search the key paths of a single JSON file",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return a.Path(args[0])
			},
		},
		&cobra.Command{
			Use:     "exec <file> <key>",
			Aliases: []string{"e"},
			Short:   "Run the script at a scripts.<name> key without searching",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return a.Exec(cmd.Context(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "completions [query]",
			Short: "Print name:[workspace] command lines for shell completion",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return a.Completions(firstArg(args))
			},
		},
		&cobra.Command{
			Use:   "widget [query]",
			Short: "Pick a script inline below the shell prompt",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return a.Widget(cmd.Context(), firstArg(args))
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print the discovered scripts as a table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				return a.List()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the fjsf version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintf(cmd.OutOrStdout(), "fjsf %s\n", Version)
				return nil
			},
		},
		&cobra.Command{
			Use:     "quit",
			Aliases: []string{"q"},
			Short:   "Exit immediately",
			Hidden:  true,
			Args:    cobra.ArbitraryArgs,
			RunE:    func(*cobra.Command, []string) error { return nil },
		},
	)
	return root
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
