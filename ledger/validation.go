package ledger

import (
	"fmt"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

// Invariant names a bookkeeping rule every statement must satisfy.
type Invariant int

const (
	InvariantDateRange        Invariant = iota + 1 // beginning date before ending date
	InvariantNonEmpty                              // at least one record
	InvariantTotalCredits                          // credits sum to the summary total
	InvariantTotalDebits                           // debits sum to the summary total
	InvariantRecordDate                            // records fall inside the statement period
	InvariantRecordBalance                         // balance before + amount = running balance
	InvariantBeginningBalance                      // first record starts at the beginning balance
	InvariantChronology                            // records are in date order
	InvariantChain                                 // each record continues the previous balance
	InvariantEndingBalance                         // last record ends at the ending balance
	InvariantSummary                               // beginning + credits + debits = ending
)

var invariantNames = map[Invariant]string{
	InvariantDateRange:        "date range",
	InvariantNonEmpty:         "non-empty",
	InvariantTotalCredits:     "total credits",
	InvariantTotalDebits:      "total debits",
	InvariantRecordDate:       "record date",
	InvariantRecordBalance:    "record balance",
	InvariantBeginningBalance: "beginning balance",
	InvariantChronology:       "chronology",
	InvariantChain:            "balance chain",
	InvariantEndingBalance:    "ending balance",
	InvariantSummary:          "summary",
}

func (i Invariant) String() string {
	if name, ok := invariantNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Invariant(%d)", int(i))
}

// ValidationError reports the first invariant a statement violates.
type ValidationError struct {
	Source    string
	Pos       ast.Position // Offending record, or the statement itself
	Invariant Invariant
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", location(e.Source, e.Pos), e.Invariant, e.Message)
}

func (e *ValidationError) GetPosition() ast.Position {
	return e.Pos
}

// Validate checks stmt against every invariant in a fixed order and returns
// the first violation. It never modifies stmt.
func Validate(stmt *ast.Statement) error {
	fail := func(pos ast.Position, inv Invariant, format string, args ...any) error {
		if pos.IsZero() {
			pos = stmt.Pos
		}
		return &ValidationError{
			Source:    stmt.Source,
			Pos:       pos,
			Invariant: inv,
			Message:   fmt.Sprintf(format, args...),
		}
	}

	if !stmt.BeginningDate.Before(stmt.EndingDate) {
		return fail(stmt.Pos, InvariantDateRange, "beginning date %s is not before ending date %s",
			stmt.BeginningDate, stmt.EndingDate)
	}

	if len(stmt.Records) == 0 {
		return fail(stmt.Pos, InvariantNonEmpty, "statement has no records")
	}

	credits, debits := ast.Totals(stmt.Records)
	if !credits.Equal(stmt.TotalCredits) {
		return fail(stmt.Pos, InvariantTotalCredits, "records sum to %s, summary says %s",
			ast.FormatMoney(credits), ast.FormatMoney(stmt.TotalCredits))
	}
	if !debits.Equal(stmt.TotalDebits) {
		return fail(stmt.Pos, InvariantTotalDebits, "records sum to %s, summary says %s",
			ast.FormatMoney(debits), ast.FormatMoney(stmt.TotalDebits))
	}

	for _, r := range stmt.Records {
		if r.Date.Before(stmt.BeginningDate) || r.Date.After(stmt.EndingDate) {
			return fail(r.Pos, InvariantRecordDate, "record date %s is outside %s - %s",
				r.Date, stmt.BeginningDate, stmt.EndingDate)
		}
	}

	for _, r := range stmt.Records {
		if !r.BalanceBefore.Add(r.Amount).Equal(r.RunningBalance) {
			return fail(r.Pos, InvariantRecordBalance, "%s + %s is not %s",
				ast.FormatMoney(r.BalanceBefore), ast.FormatMoney(r.Amount), ast.FormatMoney(r.RunningBalance))
		}
	}

	first, last := stmt.Records[0], stmt.Records[len(stmt.Records)-1]
	if !first.BalanceBefore.Equal(stmt.BeginningBalance) {
		return fail(first.Pos, InvariantBeginningBalance, "first record starts at %s, beginning balance is %s",
			ast.FormatMoney(first.BalanceBefore), ast.FormatMoney(stmt.BeginningBalance))
	}

	for i := 1; i < len(stmt.Records); i++ {
		prev, cur := stmt.Records[i-1], stmt.Records[i]
		if cur.Date.Before(prev.Date) {
			return fail(cur.Pos, InvariantChronology, "record dated %s follows one dated %s", cur.Date, prev.Date)
		}
		if !prev.RunningBalance.Equal(cur.BalanceBefore) {
			return fail(cur.Pos, InvariantChain, "record starts at %s, previous record ended at %s",
				ast.FormatMoney(cur.BalanceBefore), ast.FormatMoney(prev.RunningBalance))
		}
	}

	if !last.RunningBalance.Equal(stmt.EndingBalance) {
		return fail(last.Pos, InvariantEndingBalance, "last record ends at %s, ending balance is %s",
			ast.FormatMoney(last.RunningBalance), ast.FormatMoney(stmt.EndingBalance))
	}

	if !stmt.BeginningBalance.Add(stmt.TotalCredits).Add(stmt.TotalDebits).Equal(stmt.EndingBalance) {
		return fail(stmt.Pos, InvariantSummary, "%s + %s + %s is not %s",
			ast.FormatMoney(stmt.BeginningBalance), ast.FormatMoney(stmt.TotalCredits),
			ast.FormatMoney(stmt.TotalDebits), ast.FormatMoney(stmt.EndingBalance))
	}

	return nil
}
