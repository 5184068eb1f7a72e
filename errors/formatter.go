// Package errors renders statement errors for people and for programs.
//
// Domain error types stay in the packages that raise them (parser, ledger).
// This package only decides how they look:
//   - TextFormatter: the message followed by the offending source lines with a
//     caret under the failing cell
//   - JSONFormatter: an array of objects for scripts and editors
package errors

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/ledger"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by every error that points into a source file.
type positioned interface {
	error
	GetPosition() ast.Position
}

// Style decorates parts of the text output. Nil functions leave text as is.
type Style struct {
	Message func(string) string
	Context func(string) string
	Caret   func(string) string
}

func apply(f func(string) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

// TextFormatter formats errors for terminals.
type TextFormatter struct {
	sources map[string][]byte
	style   Style
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSources provides file contents, keyed by file name, for source context.
func WithSources(sources map[string][]byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sources = sources
	}
}

// WithStyle decorates the message, the context lines and the caret.
func WithStyle(style Style) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.style = style
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Errors pointing into a known source file get
// the surrounding lines; everything else is just the message.
func (tf *TextFormatter) Format(err error) string {
	var p positioned
	if stdErrors.As(err, &p) {
		pos := p.GetPosition()
		if source, ok := tf.sources[pos.Filename]; ok && pos.Line > 0 {
			return tf.formatWithSourceContext(pos, err.Error(), source)
		}
	}
	return apply(tf.style.Message, err.Error())
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = tf.Format(err)
	}
	return strings.Join(parts, "\n\n")
}

// formatWithSourceContext shows up to two lines before the failing line and
// one after it, with a caret under the failing column.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string, source []byte) string {
	var buf bytes.Buffer

	buf.WriteString(apply(tf.style.Message, message))
	buf.WriteString("\n\n")

	lines := strings.Split(strings.TrimSuffix(string(source), "\n"), "\n")

	start := max(pos.Line-3, 0)
	end := min(pos.Line, len(lines)-1)

	for i := start; i <= end; i++ {
		buf.WriteString("   ")
		buf.WriteString(apply(tf.style.Context, strings.TrimSuffix(lines[i], "\r")))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(apply(tf.style.Caret, "^"))
			buf.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Position *PositionJSON     `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as a JSON object.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as an indented JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	data, _ := json.MarshalIndent(result, "", "  ")
	return string(data)
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	var p positioned
	if stdErrors.As(err, &p) {
		errJSON.Type = fmt.Sprintf("%T", p)
		if pos := p.GetPosition(); !pos.IsZero() {
			errJSON.Position = &PositionJSON{
				Filename: pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			}
		}
	}

	details := make(map[string]string)

	var validationErr *ledger.ValidationError
	if stdErrors.As(err, &validationErr) {
		details["invariant"] = validationErr.Invariant.String()
		details["source"] = validationErr.Source
	}

	var conflict *ledger.OverlapConflictError
	if stdErrors.As(err, &conflict) {
		details["field"] = conflict.Field
		details["previous"] = conflict.Previous.Source
		details["next"] = conflict.Next.Source
	}

	if len(details) > 0 {
		errJSON.Details = details
	}
	return errJSON
}
