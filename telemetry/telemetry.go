// Package telemetry records how long the stages of a run take.
//
// A Collector travels through the context so that the loader, parser and
// ledger can open timers without extra parameters. When no collector is
// attached, FromContext returns one that records nothing.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("load")
//	timer.Count(len(files))
//	defer timer.End()
//
//	collector.Report(os.Stderr, styles)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/stmtsplit/output"
)

type contextKey int

const (
	collectorKey contextKey = iota
	rootTimerKey
)

// Collector collects timers for one run.
type Collector interface {
	// Start opens a timer nested under the most recently started timer that
	// has not ended yet.
	Start(name string) Timer

	// Report writes the collected timers to w. styles may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single stage.
type Timer interface {
	End()

	// Child opens a timer nested under this one.
	Child(name string) Timer

	// Count records how many items (files, rows, records) the stage handled.
	Count(n int)
}

// WithCollector attaches collector to ctx.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector attached to ctx, or a no-op collector.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithRootTimer attaches the timer covering the whole command to ctx.
func WithRootTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, rootTimerKey, timer)
}

// RootTimer returns the timer attached with WithRootTimer, or a no-op timer.
func RootTimer(ctx context.Context) Timer {
	if timer, ok := ctx.Value(rootTimerKey).(Timer); ok {
		return timer
	}
	return noOpTimer{}
}
