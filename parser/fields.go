package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

var (
	datePattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	moneyPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)\.\d{2}$`)
)

// Field consumes a single cell, typically storing its typed value in a
// destination bound when the field was created.
type Field func(c Cell) error

// ParseRow applies fields positionally to the cells of row.
func ParseRow(row Row, fields ...Field) error {
	if len(row.Cells) != len(fields) {
		pos := ast.Position{Line: row.Line, Column: 1}
		if len(row.Cells) > 0 {
			pos = row.Cells[0].Pos
		}
		return &ArityError{Pos: pos, Want: len(fields), Got: len(row.Cells)}
	}

	for i, field := range fields {
		if err := field(row.Cells[i]); err != nil {
			return err
		}
	}
	return nil
}

// ParseDate parses a canonical MM/DD/YYYY date. Formatting the result must give
// back the input exactly, which rules out impossible calendar days.
func ParseDate(s string) (ast.Date, error) {
	if !datePattern.MatchString(s) {
		return ast.Date{}, fmt.Errorf("%q is not in MM/DD/YYYY form", s)
	}

	t, err := time.Parse(ast.DateLayout, s)
	if err != nil {
		return ast.Date{}, err
	}

	d := ast.Date{Time: t}
	if d.String() != s {
		return ast.Date{}, fmt.Errorf("%q is not a canonical date", s)
	}
	return d, nil
}

// ParseMoney parses an amount with exactly two fractional digits. The value may
// be wrapped in double quotes.
func ParseMoney(s string) (ast.Money, error) {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}

	if !moneyPattern.MatchString(s) {
		return ast.ZeroMoney, fmt.Errorf("%q is not a two-decimal amount", s)
	}

	return ast.MoneyFromString(s)
}

// Date parses the cell as a date into dst.
func Date(dst *ast.Date) Field {
	return func(c Cell) error {
		d, err := ParseDate(c.Value)
		if err != nil {
			return &FormatError{Pos: c.Pos, Value: c.Value, Expected: "date MM/DD/YYYY", Err: err}
		}
		*dst = d
		return nil
	}
}

// PrefixedDate requires the cell to start with prefix and parses the remainder
// as a date into dst.
func PrefixedDate(prefix string, dst *ast.Date) Field {
	return func(c Cell) error {
		rest, ok := strings.CutPrefix(c.Value, prefix)
		if !ok {
			return &FormatError{Pos: c.Pos, Value: c.Value, Expected: fmt.Sprintf("%q followed by a date", prefix)}
		}

		d, err := ParseDate(rest)
		if err != nil {
			return &FormatError{Pos: c.Pos, Value: c.Value, Expected: fmt.Sprintf("%q followed by a date", prefix), Err: err}
		}
		*dst = d
		return nil
	}
}

// Money parses the cell as an amount into dst.
func Money(dst *ast.Money) Field {
	return func(c Cell) error {
		m, err := ParseMoney(c.Value)
		if err != nil {
			return &FormatError{Pos: c.Pos, Value: c.Value, Expected: "amount with two decimals", Err: err}
		}
		*dst = m
		return nil
	}
}

// Equal requires the cell to hold exactly literal.
func Equal(literal string) Field {
	return func(c Cell) error {
		if c.Value != literal {
			return &SchemaError{Pos: c.Pos, Want: literal, Got: c.Value}
		}
		return nil
	}
}

// Text stores the cell unchanged into dst.
func Text(dst *string) Field {
	return func(c Cell) error {
		*dst = c.Value
		return nil
	}
}
