package parser

import (
	"fmt"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

// location renders the "file:line" prefix used by every parse error.
func location(pos ast.Position) string {
	if pos.Filename == "" {
		return fmt.Sprintf("line %d", pos.Line)
	}
	return fmt.Sprintf("%s:%d", pos.Filename, pos.Line)
}

// FormatError is returned when a cell does not match its expected lexical pattern.
type FormatError struct {
	Pos      ast.Position
	Value    string // Offending cell content
	Expected string // Human readable pattern, e.g. "MM/DD/YYYY"
	Err      error  // Underlying conversion error, if any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: invalid value %q, expected %s", location(e.Pos), e.Value, e.Expected)
}

func (e *FormatError) GetPosition() ast.Position {
	return e.Pos
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when a fixed label or header cell holds unexpected text,
// or when a required row is missing.
type SchemaError struct {
	Pos  ast.Position
	Want string
	Got  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: expected %q, got %q", location(e.Pos), e.Want, e.Got)
}

func (e *SchemaError) GetPosition() ast.Position {
	return e.Pos
}

// ArityError is returned when a row has the wrong number of cells.
type ArityError struct {
	Pos  ast.Position
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d cells, got %d", location(e.Pos), e.Want, e.Got)
}

func (e *ArityError) GetPosition() ast.Position {
	return e.Pos
}

// ConsistencyError is returned when redundant fields of a statement disagree,
// such as the beginning balance in the summary and in the opening ledger row.
type ConsistencyError struct {
	Pos     ast.Position
	Field   string
	Summary string // Value from the summary block
	Ledger  string // Value from the opening ledger row
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s %s in opening row does not match summary %s",
		location(e.Pos), e.Field, e.Ledger, e.Summary)
}

func (e *ConsistencyError) GetPosition() ast.Position {
	return e.Pos
}

// RoundTripError is returned when re-serializing a parsed statement does not
// reproduce the original file byte for byte.
type RoundTripError struct {
	Pos  ast.Position // First differing line
	Want string       // Line from the original file
	Got  string       // Line produced by the formatter
}

func (e *RoundTripError) Error() string {
	return fmt.Sprintf("%s: statement does not round-trip: read %q, would write %q",
		location(e.Pos), e.Want, e.Got)
}

func (e *RoundTripError) GetPosition() ast.Position {
	return e.Pos
}
