package ledger

import (
	"time"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

func date(s string) ast.Date {
	t, err := time.Parse(ast.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return ast.Date{Time: t}
}

func money(s string) ast.Money {
	return ast.RequireMoney(s)
}

func record(day, description, amount, running string) *ast.Record {
	return ast.NewRecord(date(day), description, money(amount), money(running))
}

// statement builds a consistent statement from its records.
func statement(source, begin, end string, records ...*ast.Record) *ast.Statement {
	s := &ast.Statement{
		Source:        source,
		Pos:           ast.Position{Filename: source, Line: 1, Column: 1},
		BeginningDate: date(begin),
		EndingDate:    date(end),
		Records:       records,
	}
	if len(records) > 0 {
		s.BeginningBalance = records[0].BalanceBefore
		s.EndingBalance = records[len(records)-1].RunningBalance
	}
	s.TotalCredits, s.TotalDebits = ast.Totals(records)
	return s
}

func january() *ast.Statement {
	return statement("january.csv", "01/01/2020", "01/31/2020",
		record("01/02/2020", "Payroll", "150.00", "150.00"),
		record("01/26/2020", "Grocery", "-30.00", "120.00"),
		record("01/30/2020", "Fuel", "-20.00", "100.00"),
	)
}

func february() *ast.Statement {
	return statement("february.csv", "01/25/2020", "02/15/2020",
		record("01/26/2020", "Grocery", "-30.00", "120.00"),
		record("01/30/2020", "Fuel", "-20.00", "100.00"),
		record("02/01/2020", "Payroll", "200.00", "300.00"),
		record("02/10/2020", "Rent", "-50.00", "250.00"),
	)
}

func turnOfYear() *ast.Statement {
	return statement("turn.csv", "12/15/2019", "01/15/2020",
		record("12/20/2019", "Gift", "100.00", "100.00"),
		record("12/31/2019", "Party", "-25.00", "75.00"),
		record("01/01/2020", "Coffee", "-15.00", "60.00"),
	)
}
