package errors

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/ledger"
	"github.com/robinvdvleuten/stmtsplit/parser"
)

const source = `Description,,Summary Amt.
Beginning balance as of 01/01/2020,,"0.00"
Total credits,,"150.00"
Total debits,,"-50.00"
`

func formatError() error {
	return &parser.FormatError{
		Pos:      ast.Position{Filename: "a.csv", Line: 3, Column: 16},
		Value:    "150",
		Expected: "amount with two decimals",
	}
}

func TestTextFormatterSourceContext(t *testing.T) {
	tf := NewTextFormatter(WithSources(map[string][]byte{"a.csv": []byte(source)}))

	expected := `a.csv:3: invalid value "150", expected amount with two decimals

   Description,,Summary Amt.
   Beginning balance as of 01/01/2020,,"0.00"
   Total credits,,"150.00"
                  ^
   Total debits,,"-50.00"`
	assert.Equal(t, expected, tf.Format(formatError()))
}

func TestTextFormatterFirstLine(t *testing.T) {
	tf := NewTextFormatter(WithSources(map[string][]byte{"a.csv": []byte(source)}))
	err := &parser.SchemaError{Pos: ast.Position{Filename: "a.csv", Line: 1, Column: 1}, Want: "x", Got: "Description"}

	expected := `a.csv:1: expected "x", got "Description"

   Description,,Summary Amt.
   ^
   Beginning balance as of 01/01/2020,,"0.00"`
	assert.Equal(t, expected, tf.Format(err))
}

func TestTextFormatterWithoutSource(t *testing.T) {
	tf := NewTextFormatter()
	assert.Equal(t, formatError().Error(), tf.Format(formatError()))
	assert.Equal(t, "boom", tf.Format(stdErrors.New("boom")))
}

func TestTextFormatterWrapped(t *testing.T) {
	tf := NewTextFormatter(
		WithSources(map[string][]byte{"a.csv": []byte(source)}),
		WithStyle(Style{Caret: func(s string) string { return "<" + s + ">" }}),
	)
	out := tf.Format(fmt.Errorf("loading: %w", formatError()))
	assert.Contains(t, out, "loading: a.csv:3")
	assert.Contains(t, out, "<^>")
}

func TestTextFormatterFormatAll(t *testing.T) {
	tf := NewTextFormatter()
	assert.Equal(t, "a\n\nb", tf.FormatAll([]error{stdErrors.New("a"), stdErrors.New("b")}))
	assert.Equal(t, "", tf.FormatAll(nil))
}

func TestJSONFormatter(t *testing.T) {
	jf := NewJSONFormatter()

	var got ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.Format(formatError())), &got))
	assert.Equal(t, ErrorJSON{
		Type:     "*parser.FormatError",
		Message:  formatError().Error(),
		Position: &PositionJSON{Filename: "a.csv", Line: 3, Column: 16},
	}, got)
}

func TestJSONFormatterDetails(t *testing.T) {
	validation := fmt.Errorf("merging b.csv: %w", &ledger.ValidationError{
		Source:    "merged",
		Invariant: ledger.InvariantChain,
		Message:   "record starts at 90.00, previous record ended at 100.00",
	})

	var got []ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(NewJSONFormatter().FormatAll([]error{validation, stdErrors.New("plain")})), &got))
	assert.Equal(t, 2, len(got))

	assert.Equal(t, "*ledger.ValidationError", got[0].Type)
	assert.Zero(t, got[0].Position)
	assert.Equal(t, map[string]string{"invariant": "balance chain", "source": "merged"}, got[0].Details)

	assert.Equal(t, "*errors.errorString", got[1].Type)
	assert.Equal(t, "plain", got[1].Message)
}
