package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

func TestSort(t *testing.T) {
	sorted, err := Sort([]*ast.Statement{february(), january()})
	assert.NoError(t, err)
	assert.Equal(t, "january.csv", sorted[0].Source)
	assert.Equal(t, "february.csv", sorted[1].Source)
}

func TestSortDuplicate(t *testing.T) {
	other := january()
	other.Source = "copy.csv"
	other.Pos.Filename = "copy.csv"

	_, err := Sort([]*ast.Statement{january(), february(), other})
	var dupErr *DuplicateError
	assert.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "january.csv", dupErr.First.Source)
	assert.Equal(t, "copy.csv", dupErr.Second.Source)
	assert.EqualError(t, err, "copy.csv:1: statement begins on 01/01/2020, like january.csv")
}

func TestCheckOrdering(t *testing.T) {
	assert.NoError(t, CheckOrdering([]*ast.Statement{january(), february()}))
	assert.NoError(t, CheckOrdering(nil))

	inner := statement("inner.csv", "01/05/2020", "01/20/2020",
		record("01/10/2020", "Refund", "5.00", "155.00"),
	)
	err := CheckOrdering([]*ast.Statement{january(), inner})
	var orderErr *OrderingError
	assert.True(t, errors.As(err, &orderErr))
	assert.Equal(t, "inner.csv", orderErr.Next.Source)

	sameEnd := statement("same.csv", "01/05/2020", "01/31/2020",
		record("01/10/2020", "Refund", "5.00", "155.00"),
	)
	assert.True(t, errors.As(CheckOrdering([]*ast.Statement{january(), sameEnd}), &orderErr))
}

func TestMerge(t *testing.T) {
	a, b := january(), february()

	merged, err := Merge(a, b)
	assert.NoError(t, err)
	assert.NoError(t, Validate(merged))

	assert.Equal(t, "01/01/2020", merged.BeginningDate.String())
	assert.Equal(t, "02/15/2020", merged.EndingDate.String())
	assert.Equal(t, "0.00", ast.FormatMoney(merged.BeginningBalance))
	assert.Equal(t, "350.00", ast.FormatMoney(merged.TotalCredits))
	assert.Equal(t, "-100.00", ast.FormatMoney(merged.TotalDebits))
	assert.Equal(t, "250.00", ast.FormatMoney(merged.EndingBalance))

	var descriptions []string
	for _, r := range merged.Records {
		descriptions = append(descriptions, r.Description)
	}
	assert.Equal(t, []string{"Payroll", "Grocery", "Fuel", "Payroll", "Rent"}, descriptions)

	// Inputs stay untouched.
	assert.Equal(t, 3, len(a.Records))
	assert.Equal(t, 4, len(b.Records))
	assert.Equal(t, "150.00", ast.FormatMoney(b.BeginningBalance))
}

func TestMergeWithoutOverlap(t *testing.T) {
	march := statement("march.csv", "02/01/2020", "02/29/2020",
		record("02/03/2020", "Payroll", "150.00", "250.00"),
	)

	merged, err := Merge(january(), march)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(merged.Records))
	assert.NoError(t, Validate(merged))
}

func TestMergeConflict(t *testing.T) {
	b := february()
	b.Records[1] = withPos(record("01/30/2020", "Fuel", "-21.00", "99.00"), 10)

	_, err := Merge(january(), b)
	var conflict *OverlapConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, 1, conflict.Index)
	assert.Equal(t, "amount", conflict.Field)
	assert.Equal(t, "Fuel", conflict.Want.Description)
	assert.Equal(t, 10, conflict.GetPosition().Line)
}

func TestMergeConflictDescription(t *testing.T) {
	b := february()
	b.Records[0] = record("01/26/2020", "Groceries", "-30.00", "120.00")

	_, err := Merge(january(), b)
	var conflict *OverlapConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, 0, conflict.Index)
	assert.Equal(t, "description", conflict.Field)
	assert.Equal(t, "february.csv", conflict.GetPosition().Filename)
}

func TestMergeConflictMissing(t *testing.T) {
	short := statement("short.csv", "01/25/2020", "02/15/2020",
		record("01/26/2020", "Grocery", "-30.00", "120.00"),
	)

	_, err := Merge(january(), short)
	var conflict *OverlapConflictError
	assert.True(t, errors.As(err, &conflict))
	assert.Equal(t, "missing", conflict.Field)
	assert.Equal(t, 1, conflict.Index)
	assert.Zero(t, conflict.Got)
	assert.Contains(t, err.Error(), "is missing")
}

func TestMergeAll(t *testing.T) {
	merged, err := MergeAll([]*ast.Statement{january(), february()})
	assert.NoError(t, err)
	assert.Equal(t, "merged", merged.Source)
	assert.Equal(t, 5, len(merged.Records))
}

func TestMergeAllSingle(t *testing.T) {
	a := january()
	merged, err := MergeAll([]*ast.Statement{a})
	assert.NoError(t, err)
	assert.True(t, merged.Equal(a))
	assert.Equal(t, "merged", merged.Source)
	assert.Equal(t, "january.csv", a.Source)
}

func TestMergeAllEmpty(t *testing.T) {
	_, err := MergeAll(nil)
	assert.IsError(t, err, ErrNoStatements)
}

func TestMergeAllGap(t *testing.T) {
	march := statement("march.csv", "02/01/2020", "02/29/2020",
		record("02/03/2020", "Payroll", "150.00", "240.00"),
	)

	_, err := MergeAll([]*ast.Statement{january(), march})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, InvariantChain, validationErr.Invariant)
	assert.Contains(t, err.Error(), "merging march.csv")
}
