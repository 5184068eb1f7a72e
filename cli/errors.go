package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/stmtsplit/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	formatter *errors.TextFormatter
}

// NewErrorRenderer creates a renderer with file contents, keyed by path, for
// source context.
func NewErrorRenderer(sources map[string][]byte) *ErrorRenderer {
	return &ErrorRenderer{
		formatter: errors.NewTextFormatter(
			errors.WithSources(sources),
			errors.WithStyle(errors.Style{
				Message: render(errorStyle),
				Context: render(errContextStyle),
				Caret:   render(errCaretStyle),
			}),
		),
	}
}

func render(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	return r.formatter.Format(err)
}

// reportError prints err in the selected error format and returns the
// CommandError that ends the command.
func (g *Globals) reportError(stdout, stderr io.Writer, sources map[string][]byte, headline string, err error) error {
	if g.ErrorFormat == "json" {
		_, _ = fmt.Fprintln(stdout, errors.NewJSONFormatter().FormatAll([]error{err}))
		return NewCommandError(1)
	}

	_, _ = fmt.Fprintln(stderr, NewErrorRenderer(sources).Render(err))
	_, _ = fmt.Fprintln(stderr)
	printError(stderr, headline)
	return NewCommandError(1)
}
