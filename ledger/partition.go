package ledger

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

// Normalize returns a copy of stmt whose balances and totals are derived from
// its records. The period is kept as is.
func Normalize(stmt *ast.Statement) (*ast.Statement, error) {
	if len(stmt.Records) == 0 {
		return nil, &ValidationError{
			Source:    stmt.Source,
			Pos:       stmt.Pos,
			Invariant: InvariantNonEmpty,
			Message:   "statement has no records",
		}
	}

	n := stmt.Clone()
	n.BeginningBalance = n.Records[0].BalanceBefore
	n.EndingBalance = n.Records[len(n.Records)-1].RunningBalance
	n.TotalCredits, n.TotalDebits = ast.Totals(n.Records)
	return n, nil
}

// Years returns the distinct calendar years of stmt's records in ascending
// order.
func Years(stmt *ast.Statement) []int {
	set := make(map[int]struct{})
	for _, r := range stmt.Records {
		set[r.Date.Year()] = struct{}{}
	}
	years := maps.Keys(set)
	slices.Sort(years)
	return years
}

// Partition returns the statement covering January 1 to December 31 of year,
// holding the records of stmt dated in that year.
func Partition(stmt *ast.Statement, year int) (*ast.Statement, error) {
	var records []*ast.Record
	for _, r := range stmt.Records {
		if r.Date.Year() == year {
			records = append(records, r)
		}
	}

	part, err := Normalize(&ast.Statement{
		Source:        fmt.Sprintf("year %d", year),
		BeginningDate: ast.FirstOfYear(year),
		EndingDate:    ast.LastOfYear(year),
		Records:       records,
	})
	if err != nil {
		return nil, err
	}
	if err := Validate(part); err != nil {
		return nil, err
	}
	return part, nil
}

// SplitByYear partitions stmt into one validated statement per year, in
// ascending order.
func SplitByYear(stmt *ast.Statement) ([]*ast.Statement, error) {
	years := Years(stmt)
	parts := make([]*ast.Statement, 0, len(years))
	for _, year := range years {
		part, err := Partition(stmt, year)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}
