// Statement Export Generator
//
// This tool writes a directory of overlapping monthly statement exports for
// performance testing and profiling of the convert pipeline.
//
// Usage:
//
//	go run main.go ./statements
//	go run main.go ./statements 120  # Specify the number of months
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/formatter"
)

const (
	defaultMonths = 36

	// Each statement after the first starts this many days before its month.
	overlapDays = 5
)

var (
	credits = []string{
		"Payroll", "Interest payment", "Refund", "Transfer from savings",
		"Dividend", "Mobile deposit",
	}

	debits = []string{
		"Whole Foods", "Safeway", "Trader Joe's", "Shell Gas", "Chevron",
		"Landlord", "PG&E", "Comcast", "AT&T", "Amazon", "Target",
		"Netflix", "Spotify", `"Corner" Cafe, Inc.`,
	}
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: generate_statements DIR [MONTHS]")
		os.Exit(2)
	}
	dir := os.Args[1]

	months := defaultMonths
	if len(os.Args) > 2 {
		if n, err := strconv.Atoi(os.Args[2]); err == nil && n > 0 {
			months = n
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, months, -1)
	opening := ast.RequireMoney("1000.00")
	records := generateRecords(start, end, opening)

	for m := 0; m < months; m++ {
		first := start.AddDate(0, m, 0)
		begin := first
		if m > 0 {
			begin = first.AddDate(0, 0, -overlapDays)
		}
		stmt := statement(records, opening, begin, first.AddDate(0, 1, -1))

		path := filepath.Join(dir, first.Format("2006-01")+".csv")
		if err := os.WriteFile(path, formatter.Bytes(stmt), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "Generated %d statements with %d records in %s\n", months, len(records), dir)
}

// generateRecords returns a continuous stream of records from start to end,
// one to three days apart.
func generateRecords(start, end time.Time, balance ast.Money) []*ast.Record {
	var records []*ast.Record
	for day := start.AddDate(0, 0, rand.Intn(3)); !day.After(end); day = day.AddDate(0, 0, rand.Intn(3)+1) {
		var description string
		var amount ast.Money
		if rand.Intn(4) == 0 {
			description = credits[rand.Intn(len(credits))]
			amount = randAmount(100, 2500)
		} else {
			description = debits[rand.Intn(len(debits))]
			amount = randAmount(5, 300).Neg()
		}

		balance = balance.Add(amount)
		records = append(records, ast.NewRecord(
			ast.NewDate(day.Year(), day.Month(), day.Day()), description, amount, balance))
	}
	return records
}

// statement cuts the records dated within [begin, end] out of the stream.
func statement(records []*ast.Record, opening ast.Money, begin, end time.Time) *ast.Statement {
	stmt := &ast.Statement{
		BeginningDate:    ast.NewDate(begin.Year(), begin.Month(), begin.Day()),
		EndingDate:       ast.NewDate(end.Year(), end.Month(), end.Day()),
		BeginningBalance: opening,
	}

	for _, r := range records {
		switch {
		case r.Date.Before(stmt.BeginningDate):
			stmt.BeginningBalance = r.RunningBalance
		case !r.Date.After(stmt.EndingDate):
			stmt.Records = append(stmt.Records, r)
		}
	}

	stmt.TotalCredits, stmt.TotalDebits = ast.Totals(stmt.Records)
	stmt.EndingBalance = stmt.BeginningBalance.Add(stmt.TotalCredits).Add(stmt.TotalDebits)
	return stmt
}

func randAmount(min, max int) ast.Money {
	cents := int64(min*100 + rand.Intn((max-min)*100))
	return ast.NewMoney(decimal.New(cents, -2))
}
