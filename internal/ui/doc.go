// Package ui renders interactive search sessions. Two front ends share the
// session state in internal/ui/state and the key decoder in internal/input.
//
// Full screen:
//   - Pick runs a Bubble Tea program on the alternate screen. Model.Update
//     routes each tea.Msg through a typed handler registry; key presses are
//     re-encoded as terminal bytes, decoded, and applied as state
//     transitions. Exit and confirm quit the program and Model.Result
//     reports the outcome.
//   - The view stacks the title, the search prompt with its caret, a window
//     of two-line rows around the selection, the "... N more" indicator and
//     an optional footer. Rows that do not fit the terminal are dropped from
//     the window rather than cut mid-item.
//
// Inline:
//   - Inline draws one line per match below the shell prompt and replaces
//     its previous frame on every Render. It does not read input; callers
//     pair it with session.Run on the raw terminal.
//
// Harness drives Model without a terminal so tests can send key messages and
// inspect the rendered view.
package ui
