package telemetry

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestNoOpCollector(t *testing.T) {
	collector := FromContext(context.Background())
	_, ok := collector.(noOpCollector)
	assert.True(t, ok)

	timer := collector.Start("convert")
	timer.Count(3)
	timer.Child("load").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	got, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.True(t, got == collector)
}

func TestRootTimer(t *testing.T) {
	_, ok := RootTimer(context.Background()).(noOpTimer)
	assert.True(t, ok)

	collector := NewTimingCollector()
	root := collector.Start("convert")
	ctx := WithRootTimer(context.Background(), root)
	assert.Equal(t, root, RootTimer(ctx))
}

func TestTimingCollectorTree(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = steppingClock(time.Millisecond)

	root := collector.Start("convert")

	load := collector.Start("load")
	load.Count(2)
	parse := collector.Start("parse a.csv")
	parse.End()
	load.End()

	write := root.Child("write")
	write.Count(1)
	write.End()

	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	expected := "convert: 7ms\n" +
		"├─ load (2): 3ms\n" +
		"│  └─ parse a.csv: 1ms\n" +
		"└─ write (1): 1ms\n"
	assert.Equal(t, expected, buf.String())
}

func TestTimingCollectorEndTwice(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = steppingClock(time.Millisecond)

	root := collector.Start("run")
	child := collector.Start("stage")
	child.End()
	child.End()
	next := collector.Start("next")
	next.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Contains(t, buf.String(), "├─ stage: 1ms")
	assert.Contains(t, buf.String(), "└─ next: 1ms")
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewTimingCollector().Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0ms"},
		{10 * time.Millisecond, "10ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.duration))
	}
}
