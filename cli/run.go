package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/stmtsplit/config"
	"github.com/robinvdvleuten/stmtsplit/export"
	"github.com/robinvdvleuten/stmtsplit/formatter"
	"github.com/robinvdvleuten/stmtsplit/ledger"
	"github.com/robinvdvleuten/stmtsplit/loader"
	"github.com/robinvdvleuten/stmtsplit/logging"
	"github.com/robinvdvleuten/stmtsplit/output"
	"github.com/robinvdvleuten/stmtsplit/telemetry"
)

// run holds what a single command invocation shares between its stages.
type run struct {
	ctx    context.Context
	cfg    *config.Config
	log    zerolog.Logger
	stderr io.Writer

	collector telemetry.Collector
	timer     telemetry.Timer
	once      sync.Once
	passes    int
}

// start reads the configuration, sets up logging and, with --telemetry, a
// timing collector whose root timer is called name.
func (g *Globals) start(parent context.Context, stderr io.Writer, name string) (*run, error) {
	cfg := config.Default()
	if g.Config != "" {
		var err error
		if cfg, err = config.Load(g.Config); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(stderr, g.LogLevel)
	if err != nil {
		return nil, err
	}
	logger = logging.WithRunID(logger)

	r := &run{
		ctx:    logging.WithContext(parent, logger),
		cfg:    cfg,
		log:    logger,
		stderr: stderr,
	}

	if g.Telemetry {
		r.collector = telemetry.NewTimingCollector()
		r.ctx = telemetry.WithCollector(r.ctx, r.collector)
		r.timer = r.collector.Start(name)
		r.ctx = telemetry.WithRootTimer(r.ctx, r.timer)
	}

	logger.Debug().Str("command", name).Str("input_pattern", cfg.InputPattern).Msg("starting")
	return r, nil
}

// finish prints the telemetry report once.
func (r *run) finish() {
	r.once.Do(func() {
		if r.collector == nil {
			return
		}
		r.timer.End()
		_, _ = fmt.Fprintln(r.stderr)
		r.collector.Report(r.stderr, output.NewStyles(r.stderr))
	})
}

// pass runs fn under its own child of the root timer, named "pass N".
func (r *run) pass(fn func(ctx context.Context)) {
	r.passes++
	timer := telemetry.RootTimer(r.ctx).Child(fmt.Sprintf("pass %d", r.passes))
	defer timer.End()

	fn(r.ctx)
}

// result is what a pass over an input directory produced. The loader is kept
// even on failure so errors can be rendered with source context.
type result struct {
	loader  *loader.Loader
	ledger  *ledger.Ledger
	written []string
}

// process loads, validates, merges and splits every statement in dir.
func process(ctx context.Context, cfg *config.Config, dir string) (*result, error) {
	res := &result{
		loader: loader.New(loader.WithPattern(cfg.InputPattern)),
		ledger: ledger.New(),
	}

	stmts, err := res.loader.Load(ctx, dir)
	if err != nil {
		return res, err
	}
	if err := res.ledger.Process(ctx, stmts); err != nil {
		return res, err
	}
	return res, nil
}

// convert runs process and writes one file per year into out. prepare is
// called only after every statement checked out, right before writing.
func convert(ctx context.Context, cfg *config.Config, in, out string, prepare func(dir string) error) (*result, error) {
	res, err := process(ctx, cfg, in)
	if err != nil {
		return res, err
	}

	batch := export.NewBatch(out)
	for _, year := range res.ledger.Years() {
		name := export.YearFilename(year.Year, cfg.OutputExtension)
		if err := batch.Add(name, formatter.Bytes(year.Statement)); err != nil {
			return res, err
		}
	}

	if err := prepare(out); err != nil {
		return res, err
	}
	if err := batch.Commit(ctx); err != nil {
		return res, err
	}

	for _, name := range batch.Names() {
		res.written = append(res.written, filepath.Join(out, name))
	}
	return res, nil
}

// ensureDir makes sure dir exists, creating it when create is set or the user
// agrees to.
func ensureDir(dir string, create bool, confirm confirmFunc) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%s is not a directory", dir)
	case !os.IsNotExist(err):
		return err
	}

	if !create {
		ok, err := confirm(fmt.Sprintf("Output directory %s does not exist. Create it?", dir))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("output directory %s does not exist (use --create to create it)", dir)
		}
	}

	return os.MkdirAll(dir, 0o755)
}
