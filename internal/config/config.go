package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/fjsf/internal/app"
	"github.com/pelletier/go-toml/v2"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Source  string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// ErrInvalid marks configuration problems; the CLI exits with status 2.
var ErrInvalid = errors.New("invalid configuration")

const (
	envConfigPath       = "FJSF_CONFIG"
	envWidth            = "FJSF_WIDTH"
	envHeight           = "FJSF_HEIGHT"
	envMaxVisible       = "FJSF_MAX_VISIBLE"
	envWidgetMaxVisible = "FJSF_WIDGET_MAX_VISIBLE"
	envShowFooter       = "FJSF_FOOTER"
	envTrace            = "FJSF_TRACE"
	envLogFile          = "FJSF_LOG_FILE"
)

// fileConfig mirrors config.toml. Pointers distinguish unset keys from zero.
type fileConfig struct {
	Width            *int    `toml:"width"`
	Height           *int    `toml:"height"`
	MaxVisible       *int    `toml:"max_visible"`
	WidgetMaxVisible *int    `toml:"widget_max_visible"`
	Footer           *bool   `toml:"footer"`
	Trace            *bool   `toml:"trace"`
	LogFile          *string `toml:"log_file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		App: app.Config{
			MaxVisible:       app.DefaultMaxVisible,
			WidgetMaxVisible: app.DefaultWidgetMaxVisible,
		},
	}
}

// DefaultPath is <user config dir>/fjsf/config.toml.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "fjsf", "config.toml")
}

// Load layers the config file and the environment over the defaults.
// Command-line flags are applied on top by the CLI.
func Load(environ []string) (Config, error) {
	env := parseEnv(environ)
	cfg := Defaults()
	path := envOrDefault(env, envConfigPath, "")
	if path == "" {
		path = DefaultPath()
	}
	if err := LoadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(env, &cfg)
	return cfg, nil
}

// LoadFile merges the TOML file at path into cfg. A missing file is not an
// error.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}
	setInt(&cfg.App.Width, fc.Width)
	setInt(&cfg.App.Height, fc.Height)
	setInt(&cfg.App.MaxVisible, fc.MaxVisible)
	setInt(&cfg.App.WidgetMaxVisible, fc.WidgetMaxVisible)
	if fc.Footer != nil {
		cfg.App.ShowFooter = *fc.Footer
	}
	if fc.Trace != nil {
		cfg.Logging.Trace = *fc.Trace
	}
	if fc.LogFile != nil {
		cfg.Logging.FilePath = *fc.LogFile
	}
	cfg.Source = path
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyEnv(env map[string]string, cfg *Config) {
	cfg.App.Width = envOrInt(env, envWidth, cfg.App.Width)
	cfg.App.Height = envOrInt(env, envHeight, cfg.App.Height)
	cfg.App.MaxVisible = envOrInt(env, envMaxVisible, cfg.App.MaxVisible)
	cfg.App.WidgetMaxVisible = envOrInt(env, envWidgetMaxVisible, cfg.App.WidgetMaxVisible)
	cfg.App.ShowFooter = envOrBool(env, envShowFooter, cfg.App.ShowFooter)
	cfg.Logging.Trace = envOrBool(env, envTrace, cfg.Logging.Trace)
	cfg.Logging.FilePath = envOrDefault(env, envLogFile, cfg.Logging.FilePath)
}

// Validate rejects sizes the renderers cannot honour.
func Validate(cfg Config) error {
	checks := []struct {
		name  string
		value int
	}{
		{"width", cfg.App.Width},
		{"height", cfg.App.Height},
		{"max-visible", cfg.App.MaxVisible},
		{"widget-max-visible", cfg.App.WidgetMaxVisible},
	}
	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0 (got %d)", ErrInvalid, c.name, c.value)
		}
	}
	return nil
}

// Snapshot records the effective settings for the startup trace.
func (c *Config) Snapshot(args []string) {
	c.Flags = map[string]string{
		"width":            strconv.Itoa(c.App.Width),
		"height":           strconv.Itoa(c.App.Height),
		"maxVisible":       strconv.Itoa(c.App.MaxVisible),
		"widgetMaxVisible": strconv.Itoa(c.App.WidgetMaxVisible),
		"footer":           strconv.FormatBool(c.App.ShowFooter),
		"trace":            strconv.FormatBool(c.Logging.Trace),
		"logFile":          c.Logging.FilePath,
		"config":           c.Source,
	}
	c.Args = append([]string(nil), args...)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
