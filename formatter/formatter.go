// Package formatter renders statements in the bank's export format.
//
// The output is the exact inverse of what the parser accepts: parsing a
// formatted statement yields an equal statement, and formatting a parsed
// export reproduces its bytes.
package formatter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/robinvdvleuten/stmtsplit/ast"
)

const (
	// DescriptionHeader and SummaryAmountHeader title the summary block.
	DescriptionHeader   = "Description"
	SummaryAmountHeader = "Summary Amt."

	// BeginningBalancePrefix precedes the beginning date in the summary block and
	// in the opening ledger row.
	BeginningBalancePrefix = "Beginning balance as of "

	// EndingBalancePrefix precedes the ending date in the summary block.
	EndingBalancePrefix = "Ending balance as of "

	TotalCreditsLabel = "Total credits"
	TotalDebitsLabel  = "Total debits"

	// ColumnHeader titles the ledger rows.
	ColumnHeader = "Date,Description,Amount,Running Bal."
)

// Format writes stmt to w.
func Format(w io.Writer, stmt *ast.Statement) error {
	bw := bufio.NewWriter(w)

	begin := stmt.BeginningDate.String()

	writeLine(bw, DescriptionHeader, "", SummaryAmountHeader)
	writeLine(bw, BeginningBalancePrefix+begin, "", quote(ast.FormatMoney(stmt.BeginningBalance)))
	writeLine(bw, TotalCreditsLabel, "", quote(ast.FormatMoney(stmt.TotalCredits)))
	writeLine(bw, TotalDebitsLabel, "", quote(ast.FormatMoney(stmt.TotalDebits)))
	writeLine(bw, EndingBalancePrefix+stmt.EndingDate.String(), "", quote(ast.FormatMoney(stmt.EndingBalance)))
	writeLine(bw)
	writeLine(bw, ColumnHeader)
	writeLine(bw, begin, BeginningBalancePrefix+begin, "", quote(ast.FormatMoney(stmt.BeginningBalance)))

	for _, r := range stmt.Records {
		writeLine(bw,
			r.Date.String(),
			quote(r.Description),
			quote(ast.FormatMoney(r.Amount)),
			quote(ast.FormatMoney(r.RunningBalance)),
		)
	}

	return bw.Flush()
}

// Bytes returns the formatted statement.
func Bytes(stmt *ast.Statement) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = Format(&buf, stmt)
	return buf.Bytes()
}

func writeLine(w *bufio.Writer, cells ...string) {
	for i, c := range cells {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_, _ = w.WriteString(c)
	}
	_ = w.WriteByte('\n')
}

// quote wraps s in double quotes, doubling any quote inside it.
func quote(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
