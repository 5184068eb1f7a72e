package ast

// Record is a single transaction line of a statement.
//
// BalanceBefore is derived at parse time as RunningBalance - Amount; it is not
// stored in the export and is never trusted on its own. Validation re-checks it
// against Amount and RunningBalance.
type Record struct {
	Pos Position // Where the record was read; not part of equality

	Date           Date
	Description    string
	BalanceBefore  Money
	Amount         Money
	RunningBalance Money
}

// NewRecord creates a record and derives its balance before the transaction.
func NewRecord(date Date, description string, amount, runningBalance Money) *Record {
	return &Record{
		Date:           date,
		Description:    description,
		BalanceBefore:  runningBalance.Sub(amount),
		Amount:         amount,
		RunningBalance: runningBalance,
	}
}

// Equal reports whether both records carry identical dates, descriptions and
// amounts. Source positions are ignored.
func (r *Record) Equal(o *Record) bool {
	return r.Diff(o) == ""
}

// Diff returns the name of the first field that differs between r and o, or an
// empty string when they are equal.
func (r *Record) Diff(o *Record) string {
	switch {
	case r == nil || o == nil:
		if r == o {
			return ""
		}
		return "record"
	case !r.Date.Equal(o.Date):
		return "date"
	case r.Description != o.Description:
		return "description"
	case !r.BalanceBefore.Equal(o.BalanceBefore):
		return "balance before"
	case !r.Amount.Equal(o.Amount):
		return "amount"
	case !r.RunningBalance.Equal(o.RunningBalance):
		return "running balance"
	}
	return ""
}

// Statement is one bank statement: a summary block followed by its records.
type Statement struct {
	// Source labels where the statement came from: a file path for parsed
	// statements, "merged" or "year 2020" for derived ones.
	Source string
	Pos    Position

	BeginningDate    Date
	BeginningBalance Money
	EndingDate       Date
	EndingBalance    Money
	TotalCredits     Money
	TotalDebits      Money

	Records []*Record
}

// Clone returns a copy of the statement with its own record slice. Records are
// shared; they are never modified after parsing.
func (s *Statement) Clone() *Statement {
	c := *s
	c.Records = append([]*Record(nil), s.Records...)
	return &c
}

// Equal reports whether both statements have the same summary and records.
// Source labels and positions are ignored.
func (s *Statement) Equal(o *Statement) bool {
	if !s.BeginningDate.Equal(o.BeginningDate) ||
		!s.EndingDate.Equal(o.EndingDate) ||
		!s.BeginningBalance.Equal(o.BeginningBalance) ||
		!s.EndingBalance.Equal(o.EndingBalance) ||
		!s.TotalCredits.Equal(o.TotalCredits) ||
		!s.TotalDebits.Equal(o.TotalDebits) ||
		len(s.Records) != len(o.Records) {
		return false
	}
	for i := range s.Records {
		if !s.Records[i].Equal(o.Records[i]) {
			return false
		}
	}
	return true
}
