package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/output"
)

type CheckCmd struct {
	In string `arg:"" help:"Directory holding the statement exports." type:"existingdir"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	r, err := globals.start(context.Background(), ctx.Stderr, fmt.Sprintf("check %s", filepath.Base(cmd.In)))
	if err != nil {
		return err
	}
	defer r.finish()

	res, err := process(r.ctx, r.cfg, cmd.In)
	if err != nil {
		r.finish()
		return globals.reportError(ctx.Stdout, ctx.Stderr, res.loader.Sources(), "check failed", err)
	}

	rows := make([]output.SummaryRow, 0, len(res.ledger.Years())+1)
	for _, year := range res.ledger.Years() {
		rows = append(rows, summaryRow(strconv.Itoa(year.Year), year.Statement))
	}
	rows = append(rows, summaryRow("Total", res.ledger.Merged()))

	merged := res.ledger.Merged()
	printInfof(ctx.Stdout, "%d statements, %s - %s",
		len(res.loader.Sources()), merged.BeginningDate, merged.EndingDate)
	output.WriteSummary(ctx.Stdout, output.NewStyles(ctx.Stdout), rows)
	printSuccess(ctx.Stdout, "Check passed")

	return nil
}

func summaryRow(label string, stmt *ast.Statement) output.SummaryRow {
	return output.SummaryRow{
		Label:     label,
		Records:   len(stmt.Records),
		Beginning: stmt.BeginningBalance.Decimal(),
		Credits:   stmt.TotalCredits.Decimal(),
		Debits:    stmt.TotalDebits.Decimal(),
		Ending:    stmt.EndingBalance.Decimal(),
	}
}
