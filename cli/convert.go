package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type ConvertCmd struct {
	In     string `arg:"" help:"Directory holding the statement exports." type:"existingdir"`
	Out    string `arg:"" help:"Directory to write one file per year into." type:"path"`
	Create bool   `help:"Create the output directory if it does not exist."`

	confirm confirmFunc `kong:"-"`
}

func (cmd *ConvertCmd) Run(ctx *kong.Context, globals *Globals) error {
	r, err := globals.start(context.Background(), ctx.Stderr, fmt.Sprintf("convert %s", filepath.Base(cmd.In)))
	if err != nil {
		return err
	}
	defer r.finish()

	confirm := cmd.confirm
	if confirm == nil {
		confirm = promptYesNo
	}
	prepare := func(dir string) error {
		return ensureDir(dir, cmd.Create || r.cfg.CreateOutput, confirm)
	}

	res, err := convert(r.ctx, r.cfg, cmd.In, cmd.Out, prepare)
	if err != nil {
		r.finish()
		return globals.reportError(ctx.Stdout, ctx.Stderr, res.loader.Sources(), "conversion failed, nothing was written", err)
	}

	for i, path := range res.written {
		year := res.ledger.Years()[i]
		printSuccess(ctx.Stdout, fmt.Sprintf("Wrote %s (%d records)", pathStyle.Render(path), len(year.Statement.Records)))
	}

	return nil
}
