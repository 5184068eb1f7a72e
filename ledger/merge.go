package ledger

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

// Sort returns the statements ordered by beginning date. Two statements that
// begin on the same day are rejected with a DuplicateError.
func Sort(stmts []*ast.Statement) ([]*ast.Statement, error) {
	seen := make(map[ast.Date]*ast.Statement, len(stmts))
	for _, s := range stmts {
		if first, ok := seen[s.BeginningDate]; ok {
			return nil, &DuplicateError{Date: s.BeginningDate, First: first, Second: s}
		}
		seen[s.BeginningDate] = s
	}

	sorted := slices.Clone(stmts)
	slices.SortFunc(sorted, func(a, b *ast.Statement) int {
		return a.BeginningDate.Compare(b.BeginningDate)
	})
	return sorted, nil
}

// CheckOrdering verifies that each statement of a sorted sequence both begins
// and ends strictly after its predecessor.
func CheckOrdering(sorted []*ast.Statement) error {
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		if !prev.BeginningDate.Before(next.BeginningDate) || !prev.EndingDate.Before(next.EndingDate) {
			return &OrderingError{Previous: prev, Next: next}
		}
	}
	return nil
}

// Merge joins two consecutive statements. Records of a dated on or after the
// beginning of b form the overlap and must match the start of b exactly. The
// result keeps a's records before the overlap followed by all of b's.
func Merge(a, b *ast.Statement) (*ast.Statement, error) {
	cut := len(a.Records)
	for i, r := range a.Records {
		if !r.Date.Before(b.BeginningDate) {
			cut = i
			break
		}
	}

	for i, want := range a.Records[cut:] {
		if i >= len(b.Records) {
			return nil, &OverlapConflictError{Previous: a, Next: b, Index: i, Field: "missing", Want: want}
		}
		if field := want.Diff(b.Records[i]); field != "" {
			return nil, &OverlapConflictError{Previous: a, Next: b, Index: i, Field: field, Want: want, Got: b.Records[i]}
		}
	}

	records := make([]*ast.Record, 0, cut+len(b.Records))
	records = append(records, a.Records[:cut]...)
	records = append(records, b.Records...)

	return Normalize(&ast.Statement{
		Source:        "merged",
		BeginningDate: a.BeginningDate,
		EndingDate:    b.EndingDate,
		Records:       records,
	})
}

// MergeAll folds a sorted sequence of statements into one, validating every
// intermediate result.
func MergeAll(sorted []*ast.Statement) (*ast.Statement, error) {
	if len(sorted) == 0 {
		return nil, ErrNoStatements
	}

	merged := sorted[0]
	for _, next := range sorted[1:] {
		m, err := Merge(merged, next)
		if err != nil {
			return nil, err
		}
		if err := Validate(m); err != nil {
			return nil, fmt.Errorf("merging %s: %w", next.Source, err)
		}
		merged = m
	}

	if len(sorted) == 1 {
		merged = merged.Clone()
		merged.Source = "merged"
		if err := Validate(merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
