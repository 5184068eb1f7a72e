// Package export writes a set of output files so that either all of them
// appear in the target directory or none do.
package export

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/robinvdvleuten/stmtsplit/logging"
	"github.com/robinvdvleuten/stmtsplit/telemetry"
)

// DefaultExtension is the extension of per-year output files.
const DefaultExtension = "txt"

// YearFilename returns the output file name for year, e.g. "2020.txt".
func YearFilename(year int, ext string) string {
	return strconv.Itoa(year) + "." + ext
}

type file struct {
	name    string
	content []byte
	temp    string
}

// Batch collects files for a single atomic write into Dir.
type Batch struct {
	Dir   string
	files []*file
}

// NewBatch creates an empty batch targeting dir.
func NewBatch(dir string) *Batch {
	return &Batch{Dir: dir}
}

// Add queues a file. name is relative to the batch directory and must not
// contain a path separator.
func (b *Batch) Add(name string, content []byte) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("invalid output file name %q", name)
	}
	for _, f := range b.files {
		if f.name == name {
			return fmt.Errorf("output file %s added twice", name)
		}
	}
	b.files = append(b.files, &file{name: name, content: content})
	return nil
}

// Names returns the queued file names in the order they were added.
func (b *Batch) Names() []string {
	names := make([]string, len(b.files))
	for i, f := range b.files {
		names[i] = f.name
	}
	return names
}

// Commit writes every queued file to a temporary file next to its target and
// renames them into place once all writes have succeeded. Temporary files are
// removed when any write fails.
func (b *Batch) Commit(ctx context.Context) error {
	info, err := os.Stat(b.Dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", b.Dir)
	}

	timer := telemetry.FromContext(ctx).Start("write")
	timer.Count(len(b.files))
	defer timer.End()

	log := logging.FromContext(ctx)

	for _, f := range b.files {
		if err := b.writeTemp(f); err != nil {
			return stdErrors.Join(err, b.cleanup())
		}
	}

	for i, f := range b.files {
		target := filepath.Join(b.Dir, f.name)
		if err := os.Rename(f.temp, target); err != nil {
			err = fmt.Errorf("failed to rename %s: %w", target, err)
			return stdErrors.Join(err, cleanup(b.files[i:]))
		}
		f.temp = ""
		log.Debug().Str("file", target).Int("bytes", len(f.content)).Msg("wrote output")
	}

	return nil
}

func (b *Batch) writeTemp(f *file) error {
	tmp, err := os.CreateTemp(b.Dir, "."+f.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", f.name, err)
	}
	f.temp = tmp.Name()

	if _, err := tmp.Write(f.content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file for %s: %w", f.name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", f.name, err)
	}
	if err := os.Chmod(f.temp, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", f.name, err)
	}
	return nil
}

func (b *Batch) cleanup() error {
	return cleanup(b.files)
}

func cleanup(files []*file) error {
	var errs []error
	for _, f := range files {
		if f.temp == "" {
			continue
		}
		if err := os.Remove(f.temp); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
		f.temp = ""
	}
	return stdErrors.Join(errs...)
}
