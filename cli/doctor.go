package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/loader"
	"github.com/robinvdvleuten/stmtsplit/parser"
)

// DoctorCmd provides doctor utilities for debugging statement files.
type DoctorCmd struct {
	Rows RowsCmd `cmd:"" help:"Show the rows and cells of a statement file."`
	Dump DumpCmd `cmd:"" help:"Parse and validate a statement file and dump the result."`
}

// RowsCmd shows the rows of a statement file as the parser sees them.
type RowsCmd struct {
	File string `arg:"" help:"Statement file." type:"existingfile"`
}

// Run executes the rows command.
func (cmd *RowsCmd) Run(ctx *kong.Context, globals *Globals) error {
	content, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	rows, err := parser.NewLexer(content, cmd.File).ScanAll()
	if err != nil {
		return globals.reportError(ctx.Stdout, ctx.Stderr, map[string][]byte{cmd.File: content}, "failed to tokenize file", err)
	}

	// Format: line  [cells]
	for _, row := range rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = fmt.Sprintf("%q", c.Value)
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%-5d %d [%s]\n", row.Line, len(cells), strings.Join(cells, " "))
	}

	return nil
}

// DumpCmd prints a parsed statement.
type DumpCmd struct {
	File string `arg:"" help:"Statement file." type:"existingfile"`
}

type dumpRecord struct {
	Line           int
	Date           string
	Description    string
	Amount         string
	RunningBalance string
}

type dumpStatement struct {
	Source           string
	BeginningDate    string
	BeginningBalance string
	TotalCredits     string
	TotalDebits      string
	EndingDate       string
	EndingBalance    string
	Records          []dumpRecord
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	r, err := globals.start(context.Background(), ctx.Stderr, "dump")
	if err != nil {
		return err
	}
	defer r.finish()

	ldr := loader.New()
	stmt, err := ldr.LoadFile(r.ctx, cmd.File)
	if err != nil {
		r.finish()
		return globals.reportError(ctx.Stdout, ctx.Stderr, ldr.Sources(), "invalid statement", err)
	}

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(dump(stmt))
	return nil
}

func dump(stmt *ast.Statement) dumpStatement {
	d := dumpStatement{
		Source:           stmt.Source,
		BeginningDate:    stmt.BeginningDate.String(),
		BeginningBalance: ast.FormatMoney(stmt.BeginningBalance),
		TotalCredits:     ast.FormatMoney(stmt.TotalCredits),
		TotalDebits:      ast.FormatMoney(stmt.TotalDebits),
		EndingDate:       stmt.EndingDate.String(),
		EndingBalance:    ast.FormatMoney(stmt.EndingBalance),
	}
	for _, r := range stmt.Records {
		d.Records = append(d.Records, dumpRecord{
			Line:           r.Pos.Line,
			Date:           r.Date.String(),
			Description:    r.Description,
			Amount:         ast.FormatMoney(r.Amount),
			RunningBalance: ast.FormatMoney(r.RunningBalance),
		})
	}
	return d
}
