package sim

import "time"

// DefaultMinFrameDelta is the shortest gap between two accepted ticks,
// a soft cap near 110 ticks per second.
const DefaultMinFrameDelta = 9 * time.Millisecond

// FrameGate decides which host frame callbacks become ticks.
// Timestamps are monotonic offsets chosen by the host; only differences matter.
type FrameGate struct {
	MinDelta time.Duration

	started bool
	anchor  time.Duration
	last    time.Duration
}

// NewFrameGate creates a gate with the given minimum delta.
// Non-positive values use DefaultMinFrameDelta.
func NewFrameGate(minDelta time.Duration) *FrameGate {
	if minDelta <= 0 {
		minDelta = DefaultMinFrameDelta
	}
	return &FrameGate{MinDelta: minDelta}
}

// Accept reports whether a callback at ts should run a tick.
// The first call anchors the clock and is always accepted.
func (g *FrameGate) Accept(ts time.Duration) bool {
	if !g.started {
		g.started = true
		g.anchor = ts
		g.last = ts
		return true
	}
	if ts-g.last < g.MinDelta {
		return false
	}
	g.last = ts
	return true
}

// Elapsed returns the run time at ts measured from the anchor.
func (g *FrameGate) Elapsed(ts time.Duration) time.Duration {
	if !g.started {
		return 0
	}
	return ts - g.anchor
}

// Resume shifts the anchor forward by the time since the last accepted tick
// so a pause does not count toward Elapsed.
func (g *FrameGate) Resume(ts time.Duration) {
	if !g.started || ts <= g.last {
		return
	}
	g.anchor += ts - g.last
	g.last = ts
}

// Reset forgets the anchor; the next Accept starts a new clock.
func (g *FrameGate) Reset() {
	g.started = false
	g.anchor = 0
	g.last = 0
}
