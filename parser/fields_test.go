package parser

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("02/29/2020")
	assert.NoError(t, err)
	assert.Equal(t, ast.NewDate(2020, 2, 29), d)

	for _, input := range []string{"2/29/2020", "02/29/20", "2020-02-29", "02/30/2020", "02/29/2019", "13/01/2020", " 02/29/2020", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestParseMoney(t *testing.T) {
	valid := map[string]string{
		"0.00":       "0",
		"-0.50":      "-0.5",
		"12.34":      "12.34",
		`"1234.50"`:  "1234.5",
		`"-1000.00"`: "-1000",
		"-0.00":      "0",
	}
	for input, want := range valid {
		t.Run(input, func(t *testing.T) {
			m, err := ParseMoney(input)
			assert.NoError(t, err)
			assert.True(t, m.Equal(ast.RequireMoney(want)), "got %s", m)
		})
	}

	m, err := ParseMoney(`"-0.00"`)
	assert.NoError(t, err)
	assert.True(t, m.IsNegativeZero())
	assert.Equal(t, "-0.00", ast.FormatMoney(m))

	for _, input := range []string{"12", "12.3", "12.345", "012.00", "+1.00", "1,000.00", "$1.00", `"1.00`, "", `""`, "-.50"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMoney(input)
			assert.Error(t, err)
		})
	}
}

func row(values ...string) Row {
	r := Row{Line: 7}
	for i, v := range values {
		r.Cells = append(r.Cells, Cell{Value: v, Pos: ast.Position{Line: 7, Column: i*4 + 1}})
	}
	return r
}

func TestParseRow(t *testing.T) {
	var (
		date  ast.Date
		text  string
		money ast.Money
	)
	err := ParseRow(row("01/05/2020", "Coffee", "-3.50", "x"),
		Date(&date), Text(&text), Money(&money), Equal("x"))
	assert.NoError(t, err)
	assert.Equal(t, "01/05/2020", date.String())
	assert.Equal(t, "Coffee", text)
	assert.Equal(t, "-3.50", ast.FormatMoney(money))

	err = ParseRow(row("a", "b"), Text(&text))
	var arityErr *ArityError
	assert.True(t, errors.As(err, &arityErr))
	assert.Equal(t, 1, arityErr.Want)
	assert.Equal(t, 2, arityErr.Got)

	err = ParseRow(row(), Text(&text))
	assert.True(t, errors.As(err, &arityErr))
	assert.Equal(t, 7, arityErr.Pos.Line)

	err = ParseRow(row("a", "b"), Equal("a"), Equal("c"))
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, 5, schemaErr.Pos.Column)
}

func TestPrefixedDate(t *testing.T) {
	var d ast.Date
	field := PrefixedDate("Ending balance as of ", &d)

	assert.NoError(t, field(Cell{Value: "Ending balance as of 12/31/2020"}))
	assert.Equal(t, ast.NewDate(2020, 12, 31), d)

	var formatErr *FormatError
	assert.True(t, errors.As(field(Cell{Value: "Ending balance 12/31/2020"}), &formatErr))
	assert.True(t, errors.As(field(Cell{Value: "Ending balance as of 12/32/2020"}), &formatErr))
	assert.Error(t, formatErr.Unwrap())
}
