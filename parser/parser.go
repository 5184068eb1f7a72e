// Package parser reads bank statement exports into ast.Statement values.
//
// Parsing is strict: every row of the export has a fixed shape, every cell has
// a fixed lexical pattern, and the parsed statement must format back to the
// exact input bytes. Any deviation rejects the whole file.
package parser

import (
	"bytes"
	"context"
	"strings"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/formatter"
	"github.com/robinvdvleuten/stmtsplit/telemetry"
)

// rowReader hands out rows in order and reports missing ones as schema errors.
type rowReader struct {
	filename string
	rows     []Row
	next     int
}

func (r *rowReader) read(name string) (Row, error) {
	if r.next >= len(r.rows) {
		line := 1
		if len(r.rows) > 0 {
			line = r.rows[len(r.rows)-1].Line + 1
		}
		return Row{}, &SchemaError{
			Pos:  ast.Position{Filename: r.filename, Line: line, Column: 1},
			Want: name,
			Got:  "end of file",
		}
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}

func (r *rowReader) remaining() []Row {
	return r.rows[r.next:]
}

// ParseString parses a statement held in a string.
func ParseString(ctx context.Context, filename, source string) (*ast.Statement, error) {
	return ParseBytes(ctx, filename, []byte(source))
}

// ParseBytes parses a single statement export and verifies that it formats back
// to data unchanged. CRLF line endings are read as LF, so a statement downloaded
// with Windows line endings is accepted and formats with LF.
func ParseBytes(ctx context.Context, filename string, data []byte) (*ast.Statement, error) {
	collector := telemetry.FromContext(ctx)

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	lexTimer := collector.Start("tokenize")
	rows, err := NewLexer(data, filename).ScanAll()
	lexTimer.Count(len(rows))
	lexTimer.End()
	if err != nil {
		return nil, err
	}

	schemaTimer := collector.Start("schema")
	stmt, err := parseRows(filename, rows)
	schemaTimer.End()
	if err != nil {
		return nil, err
	}
	schemaTimer.Count(len(stmt.Records))

	roundTripTimer := collector.Start("round-trip")
	defer roundTripTimer.End()

	if err := verifyRoundTrip(filename, data, formatter.Bytes(stmt)); err != nil {
		return nil, err
	}

	return stmt, nil
}

func parseRows(filename string, rows []Row) (*ast.Statement, error) {
	r := &rowReader{filename: filename, rows: rows}
	stmt := &ast.Statement{
		Source: filename,
		Pos:    ast.Position{Filename: filename, Line: 1, Column: 1},
	}

	row, err := r.read("summary header")
	if err != nil {
		return nil, err
	}
	if err := ParseRow(row,
		Equal(formatter.DescriptionHeader), Equal(""), Equal(formatter.SummaryAmountHeader),
	); err != nil {
		return nil, err
	}

	if row, err = r.read("beginning balance summary"); err != nil {
		return nil, err
	}
	if err := ParseRow(row,
		PrefixedDate(formatter.BeginningBalancePrefix, &stmt.BeginningDate), Equal(""), Money(&stmt.BeginningBalance),
	); err != nil {
		return nil, err
	}

	if row, err = r.read("total credits summary"); err != nil {
		return nil, err
	}
	if err := ParseRow(row,
		Equal(formatter.TotalCreditsLabel), Equal(""), Money(&stmt.TotalCredits),
	); err != nil {
		return nil, err
	}

	if row, err = r.read("total debits summary"); err != nil {
		return nil, err
	}
	if err := ParseRow(row,
		Equal(formatter.TotalDebitsLabel), Equal(""), Money(&stmt.TotalDebits),
	); err != nil {
		return nil, err
	}

	if row, err = r.read("ending balance summary"); err != nil {
		return nil, err
	}
	if err := ParseRow(row,
		PrefixedDate(formatter.EndingBalancePrefix, &stmt.EndingDate), Equal(""), Money(&stmt.EndingBalance),
	); err != nil {
		return nil, err
	}

	if row, err = r.read("blank separator"); err != nil {
		return nil, err
	}
	if err := ParseRow(row); err != nil {
		return nil, err
	}

	if row, err = r.read("column header"); err != nil {
		return nil, err
	}
	if err := ParseRow(row,
		Equal("Date"), Equal("Description"), Equal("Amount"), Equal("Running Bal."),
	); err != nil {
		return nil, err
	}

	if row, err = r.read("opening balance"); err != nil {
		return nil, err
	}
	if err := parseOpeningRow(row, stmt); err != nil {
		return nil, err
	}

	for _, row := range r.remaining() {
		rec := &ast.Record{Pos: ast.Position{Filename: filename, Line: row.Line, Column: 1}}
		if err := ParseRow(row,
			Date(&rec.Date), Text(&rec.Description), Money(&rec.Amount), Money(&rec.RunningBalance),
		); err != nil {
			return nil, err
		}
		rec.BalanceBefore = rec.RunningBalance.Sub(rec.Amount)
		stmt.Records = append(stmt.Records, rec)
	}

	return stmt, nil
}

// parseOpeningRow checks the synthetic opening ledger row against the summary
// block. It carries the beginning date twice and the beginning balance.
func parseOpeningRow(row Row, stmt *ast.Statement) error {
	var (
		date, labelDate ast.Date
		balance         ast.Money
	)
	if err := ParseRow(row,
		Date(&date), PrefixedDate(formatter.BeginningBalancePrefix, &labelDate), Equal(""), Money(&balance),
	); err != nil {
		return err
	}

	for i, d := range []ast.Date{date, labelDate} {
		if !d.Equal(stmt.BeginningDate) {
			return &ConsistencyError{
				Pos:     row.Cells[i].Pos,
				Field:   "beginning date",
				Summary: stmt.BeginningDate.String(),
				Ledger:  d.String(),
			}
		}
	}
	if !balance.Equal(stmt.BeginningBalance) {
		return &ConsistencyError{
			Pos:     row.Cells[3].Pos,
			Field:   "beginning balance",
			Summary: ast.FormatMoney(stmt.BeginningBalance),
			Ledger:  ast.FormatMoney(balance),
		}
	}
	return nil
}

// verifyRoundTrip compares the original export with its re-serialization and
// reports the first line that differs.
func verifyRoundTrip(filename string, original, formatted []byte) error {
	if bytes.Equal(original, formatted) {
		return nil
	}

	want := strings.SplitAfter(string(original), "\n")
	got := strings.SplitAfter(string(formatted), "\n")

	for i := 0; i < len(want) || i < len(got); i++ {
		var w, g string
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		if w != g {
			return &RoundTripError{
				Pos:  ast.Position{Filename: filename, Line: i + 1, Column: 1},
				Want: w,
				Got:  g,
			}
		}
	}

	return &RoundTripError{Pos: ast.Position{Filename: filename, Line: 1, Column: 1}}
}
