package ledger

import (
	stdErrors "errors"
	"fmt"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

// ErrNoStatements is returned when there is nothing to merge.
var ErrNoStatements = stdErrors.New("no statements to merge")

// location renders the "file:line" prefix of a ledger error, falling back to the
// statement's source label for derived statements.
func location(source string, pos ast.Position) string {
	if pos.Filename == "" {
		return source
	}
	return fmt.Sprintf("%s:%d", pos.Filename, pos.Line)
}

// DuplicateError is returned when two statements start on the same day.
type DuplicateError struct {
	Date   ast.Date
	First  *ast.Statement
	Second *ast.Statement
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: statement begins on %s, like %s",
		location(e.Second.Source, e.Second.Pos), e.Date, e.First.Source)
}

func (e *DuplicateError) GetPosition() ast.Position {
	return e.Second.Pos
}

// OrderingError is returned when a later-starting statement does not also end
// later than its predecessor.
type OrderingError struct {
	Previous *ast.Statement
	Next     *ast.Statement
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("%s: statement %s - %s does not follow %s (%s - %s)",
		location(e.Next.Source, e.Next.Pos),
		e.Next.BeginningDate, e.Next.EndingDate,
		e.Previous.Source, e.Previous.BeginningDate, e.Previous.EndingDate)
}

func (e *OrderingError) GetPosition() ast.Position {
	return e.Next.Pos
}

// OverlapConflictError is returned when two statements disagree about a
// record in the period they both cover.
type OverlapConflictError struct {
	Previous *ast.Statement
	Next     *ast.Statement
	Index    int    // Position in the overlap, counted from the start of Next
	Field    string // First differing field, or "missing" when Next is too short
	Want     *ast.Record
	Got      *ast.Record // Nil when Next has no record at Index
}

func (e *OverlapConflictError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("%s: record %d of the overlap with %s is missing (want %s %q)",
			location(e.Next.Source, e.Next.Pos), e.Index+1, e.Previous.Source,
			e.Want.Date, e.Want.Description)
	}
	return fmt.Sprintf("%s: record %d of the overlap with %s has a different %s (want %s %q %s, got %s %q %s)",
		location(e.Next.Source, e.Got.Pos), e.Index+1, e.Previous.Source, e.Field,
		e.Want.Date, e.Want.Description, ast.FormatMoney(e.Want.Amount),
		e.Got.Date, e.Got.Description, ast.FormatMoney(e.Got.Amount))
}

func (e *OverlapConflictError) GetPosition() ast.Position {
	if e.Got != nil && !e.Got.Pos.IsZero() {
		return e.Got.Pos
	}
	return e.Next.Pos
}
