// Package loader reads every statement export of a directory.
//
// Files are selected with a glob pattern (default "*.csv"), read in name order,
// parsed and validated. The first failing file aborts the load, so callers
// either get every statement or none.
//
// Example usage:
//
//	ldr := loader.New(loader.WithPattern("*.csv"))
//	stmts, err := ldr.Load(ctx, "statements/")
//	if err != nil {
//	    // render err with ldr.Sources() for source context
//	}
package loader

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/robinvdvleuten/stmtsplit/ast"
	"github.com/robinvdvleuten/stmtsplit/ledger"
	"github.com/robinvdvleuten/stmtsplit/logging"
	"github.com/robinvdvleuten/stmtsplit/parser"
	"github.com/robinvdvleuten/stmtsplit/telemetry"
)

// DefaultPattern selects bank exports.
const DefaultPattern = "*.csv"

// ErrNoFiles is returned when a directory holds no matching file.
var ErrNoFiles = stdErrors.New("no statement files found")

// Loader loads statement exports from disk.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithPattern("*.txt"))
type Loader struct {
	// Pattern is the glob that selects statement files by base name.
	Pattern string

	sources map[string][]byte
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithPattern selects statement files with the glob pattern instead of
// DefaultPattern.
func WithPattern(pattern string) Option {
	return func(l *Loader) {
		l.Pattern = pattern
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Pattern: DefaultPattern,
		sources: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Files lists the statement files in dir in name order.
func (l *Loader) Files(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	if _, err := filepath.Match(l.Pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", l.Pattern, err)
	}

	// Only base names are matched, so glob characters in dir stay literal.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if ok, _ := filepath.Match(l.Pattern, entry.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Load parses and validates every statement file in dir.
func (l *Loader) Load(ctx context.Context, dir string) ([]*ast.Statement, error) {
	files, err := l.Files(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s matching %q", ErrNoFiles, dir, l.Pattern)
	}

	timer := telemetry.FromContext(ctx).Start("load")
	timer.Count(len(files))
	defer timer.End()

	stmts := make([]*ast.Statement, 0, len(files))
	for _, filename := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stmt, err := l.LoadFile(ctx, filename)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

// LoadFile parses and validates a single statement file.
func (l *Loader) LoadFile(ctx context.Context, filename string) (*ast.Statement, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("parse %s", filepath.Base(filename)))
	defer timer.End()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	l.sources[filename] = data

	stmt, err := parser.ParseBytes(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	if err := ledger.Validate(stmt); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("file", filename).
		Int("records", len(stmt.Records)).
		Str("from", stmt.BeginningDate.String()).
		Str("to", stmt.EndingDate.String()).
		Msg("loaded statement")

	return stmt, nil
}

// Sources returns the raw contents of every file read so far, keyed by path.
func (l *Loader) Sources() map[string][]byte {
	return l.sources
}
