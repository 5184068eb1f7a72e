// Package ledger checks bank statements for bookkeeping consistency, merges
// statements with overlapping periods into one continuous ledger, and splits
// that ledger into calendar years.
//
// A statement is consistent when its records chain from the beginning balance
// to the ending balance, every record falls inside the statement period, and
// the summary totals match the records. Every statement the package produces,
// whether merged or partitioned, is checked again before it is returned.
//
// Example usage:
//
//	l := ledger.New()
//	if err := l.Process(ctx, stmts); err != nil {
//	    var conflict *ledger.OverlapConflictError
//	    if errors.As(err, &conflict) {
//	        // the same period was reported differently by two statements
//	    }
//	    return err
//	}
//	for _, year := range l.Years() {
//	    // write year.Statement
//	}
package ledger

import (
	"context"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/logging"
	"github.com/robinvdvleuten/stmtsplit/telemetry"
)

// Year is the statement of a single calendar year.
type Year struct {
	Year      int
	Statement *ast.Statement
}

// Ledger holds the result of processing a set of statements.
type Ledger struct {
	merged *ast.Statement
	years  []Year
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Process sorts, merges and splits stmts. Any inconsistency aborts processing
// and leaves the ledger empty.
func (l *Ledger) Process(ctx context.Context, stmts []*ast.Statement) error {
	l.merged, l.years = nil, nil

	collector := telemetry.FromContext(ctx)
	log := logging.FromContext(ctx)

	mergeTimer := collector.Start("merge")
	mergeTimer.Count(len(stmts))
	sorted, err := Sort(stmts)
	if err == nil {
		err = CheckOrdering(sorted)
	}
	var merged *ast.Statement
	if err == nil {
		merged, err = MergeAll(sorted)
	}
	mergeTimer.End()
	if err != nil {
		return err
	}

	log.Debug().
		Int("statements", len(sorted)).
		Int("records", len(merged.Records)).
		Str("from", merged.BeginningDate.String()).
		Str("to", merged.EndingDate.String()).
		Msg("merged statements")

	splitTimer := collector.Start("split")
	parts, err := SplitByYear(merged)
	splitTimer.Count(len(parts))
	splitTimer.End()
	if err != nil {
		return err
	}

	years := make([]Year, len(parts))
	for i, part := range parts {
		years[i] = Year{Year: part.BeginningDate.Year(), Statement: part}
		log.Debug().
			Int("year", years[i].Year).
			Int("records", len(part.Records)).
			Str("ending_balance", ast.FormatMoney(part.EndingBalance)).
			Msg("partitioned year")
	}

	l.merged, l.years = merged, years
	return nil
}

// Merged returns the continuous statement covering every input, or nil before
// a successful Process.
func (l *Ledger) Merged() *ast.Statement {
	return l.merged
}

// Years returns one statement per calendar year in ascending order.
func (l *Ledger) Years() []Year {
	return l.years
}
