package observ

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTimerPhases(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	timer := NewTimerWithClock(clock.now)

	cfg := timer.Begin("config")
	clock.advance(1500 * time.Microsecond)
	timer.End(cfg, "uiid.toml")

	run := timer.Begin("inject")
	clock.advance(20 * time.Millisecond)
	timer.End(run, "")
	timer.End(7, "ignored")

	report := timer.Report()
	assert.InDelta(t, 21.5, report.TotalMS, 1e-9)
	assert.Equal(t, []PhaseReport{
		{Name: "config", DurationMS: 1.5, Note: "uiid.toml"},
		{Name: "inject", DurationMS: 20},
	}, report.Phases)

	assert.Equal(t, "timings:\n"+
		"  config           1.50 ms  // uiid.toml\n"+
		"  inject          20.00 ms\n"+
		"  total           21.50 ms\n", timer.Summary())
}

func TestTimerEmpty(t *testing.T) {
	timer := NewTimer()
	assert.Empty(t, timer.Report().Phases)
	assert.Equal(t, "timings:\n  total            0.00 ms\n", timer.Summary())
}
