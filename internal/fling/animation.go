// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Animation decays a fling velocity exponentially and converts it
// into scroll distances. It is driven by external Ticks.
type Animation struct {
	t0     time.Time
	v0     float32
	moved  float32
	active bool
}

const (
	// maxVelocity caps the initial fling velocity, in pixels per
	// second.
	maxVelocity = 8000
	// minVelocity stops a fling, in pixels per second.
	minVelocity = 50
	// decayTime is the exponential decay time constant of the
	// velocity, in seconds.
	decayTime = 0.325
)

// Start a fling with the given initial velocity in pixels per
// second. Too slow velocities are ignored.
func (f *Animation) Start(now time.Time, velocity float32) {
	if velocity < minVelocity && velocity > -minVelocity {
		return
	}
	if velocity > maxVelocity {
		velocity = maxVelocity
	} else if velocity < -maxVelocity {
		velocity = -maxVelocity
	}
	f.t0 = now
	f.v0 = velocity
	f.moved = 0
	f.active = true
}

// Active reports whether the fling is still moving.
func (f *Animation) Active() bool {
	return f.active
}

// Stop the fling.
func (f *Animation) Stop() {
	f.active = false
}

// Tick advances the fling to now and returns the whole pixels moved
// since the previous Tick.
func (f *Animation) Tick(now time.Time) int {
	if !f.active {
		return 0
	}
	dt := float32(now.Sub(f.t0).Seconds())
	if dt < 0 {
		dt = 0
	}
	decay := float32(math.Exp(float64(-dt / decayTime)))
	total := f.v0 * decayTime * (1 - decay)
	d := int(math.Round(float64(total - f.moved)))
	f.moved += float32(d)
	if v := f.v0 * decay; v < minVelocity && v > -minVelocity {
		f.active = false
	}
	return d
}
