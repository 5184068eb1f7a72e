package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// SummaryRow is one line of a statement summary table.
type SummaryRow struct {
	Label     string
	Records   int
	Beginning decimal.Decimal
	Credits   decimal.Decimal
	Debits    decimal.Decimal
	Ending    decimal.Decimal
}

// Currency renders an amount in US dollars with thousands separators, e.g.
// "-$1,234.50". Amounts are rounded to cents.
func Currency(d decimal.Decimal) string {
	return money.New(d.Round(2).Shift(2).IntPart(), money.USD).Display()
}

var summaryHeader = []string{"", "Records", "Beginning", "Credits", "Debits", "Ending"}

// WriteSummary writes rows as an aligned table. The first column is left
// aligned, all others are right aligned.
func WriteSummary(w io.Writer, styles *Styles, rows []SummaryRow) {
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, summaryHeader)
	for _, r := range rows {
		cells = append(cells, []string{
			r.Label,
			fmt.Sprintf("%d", r.Records),
			Currency(r.Beginning),
			Currency(r.Credits),
			Currency(r.Debits),
			Currency(r.Ending),
		})
	}

	widths := make([]int, len(summaryHeader))
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	for n, row := range cells {
		var line strings.Builder
		for i, c := range row {
			if i > 0 {
				line.WriteString("  ")
			}

			var padded string
			if i == 0 {
				padded = runewidth.FillRight(c, widths[i])
			} else {
				padded = runewidth.FillLeft(c, widths[i])
			}
			line.WriteString(styleCell(styles, n, i, padded, rows))
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

func styleCell(styles *Styles, row, col int, text string, rows []SummaryRow) string {
	if styles == nil {
		return text
	}
	switch {
	case row == 0:
		return styles.Keyword(text)
	case col == 0:
		return styles.Year(text)
	case col == 1:
		return styles.Dim(text)
	case col == 4 && rows[row-1].Debits.IsNegative():
		return styles.Debit(text)
	default:
		return styles.Amount(text)
	}
}
