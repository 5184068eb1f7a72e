package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

type WatchCmd struct {
	In       string        `arg:"" help:"Directory holding the statement exports." type:"existingdir"`
	Out      string        `arg:"" help:"Directory to write one file per year into." type:"path"`
	Create   bool          `help:"Create the output directory if it does not exist."`
	Debounce time.Duration `help:"Quiet period after a change before converting again." default:"100ms"`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := globals.start(sigCtx, ctx.Stderr, fmt.Sprintf("watch %s", filepath.Base(cmd.In)))
	if err != nil {
		return err
	}
	defer r.finish()

	prepare := func(dir string) error {
		return ensureDir(dir, cmd.Create || r.cfg.CreateOutput, promptYesNo)
	}

	pass := func() {
		r.pass(func(passCtx context.Context) {
			res, err := convert(passCtx, r.cfg, cmd.In, cmd.Out, prepare)
			if err != nil {
				_ = globals.reportError(ctx.Stdout, ctx.Stderr, res.loader.Sources(), "conversion failed, previous output kept", err)
				return
			}
			printSuccess(ctx.Stdout, fmt.Sprintf("Wrote %d file(s) to %s", len(res.written), pathStyle.Render(cmd.Out)))
		})
	}

	pass()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cmd.In); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.In, err)
	}

	printInfof(ctx.Stdout, "Watching %s for changes (Ctrl+C to stop)", pathStyle.Render(cmd.In))

	watchLoop(r.ctx, watcher.Events, watcher.Errors, r.cfg.InputPattern, cmd.Debounce, r.log, pass)
	return nil
}

// watchLoop calls run once changes to files matching pattern have settled for
// the debounce period. It returns when ctx is done or a channel closes.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, pattern string, debounce time.Duration, log zerolog.Logger, run func()) {
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if !relevant(event, pattern) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("statement changed")
			fire = time.After(debounce)

		case err, ok := <-errs:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("file watcher error")

		case <-fire:
			fire = nil
			run()
		}
	}
}

// relevant reports whether event touches a statement file. Remove and rename
// count as well since editors save by replacing the file.
func relevant(event fsnotify.Event, pattern string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern, filepath.Base(event.Name))
	return err == nil && ok
}
