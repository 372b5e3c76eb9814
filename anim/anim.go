// SPDX-License-Identifier: Unlicense OR MIT

/*
Package anim implements a cooperative tween engine.

Animations interpolate an integer value over a duration and apply it
through a callback. The engine is single threaded: values only change
during Tick, which the event loop calls once per frame. At most one
animation can be active per (target, tag) pair; starting a new one
cancels the previous.
*/
package anim

import (
	"math"
	"time"

	"golang.org/x/exp/slices"
)

// Path shapes the progress of an animation. It maps normalized time
// in [0, 1] to normalized progress in [0, 1].
type Path func(t float32) float32

// Linear progress.
func Linear(t float32) float32 {
	return t
}

// EaseOut starts fast and decelerates.
func EaseOut(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// Anim describes one animation.
type Anim struct {
	// Target identifies the animated object. Together with Tag it
	// names the animated value.
	Target any
	Tag    string

	From, To int
	Duration time.Duration
	// Path is the easing curve. Nil means Linear.
	Path Path
	// Exec applies an interpolated value to the target.
	Exec func(v int)
	// Ready is called after the final value has been applied. It
	// is not called when the animation is cancelled.
	Ready func()
}

type running struct {
	Anim
	start time.Duration
}

// Engine runs animations. The zero value is ready to use.
type Engine struct {
	now   time.Duration
	anims []*running
}

// Start registers a and applies its start value. Any active animation
// with the same (Target, Tag) is cancelled first.
func (e *Engine) Start(a Anim) {
	e.Cancel(a.Target, a.Tag)
	if a.Path == nil {
		a.Path = Linear
	}
	if a.Duration <= 0 {
		a.Exec(a.To)
		if a.Ready != nil {
			a.Ready()
		}
		return
	}
	a.Exec(a.From)
	e.anims = append(e.anims, &running{Anim: a, start: e.now})
}

// Cancel removes the animation for (target, tag), if any, without
// calling its Ready callback. It reports whether an animation was
// removed.
func (e *Engine) Cancel(target any, tag string) bool {
	i := slices.IndexFunc(e.anims, func(r *running) bool {
		return r.Target == target && r.Tag == tag
	})
	if i < 0 {
		return false
	}
	e.anims = slices.Delete(e.anims, i, i+1)
	return true
}

// Active reports whether an animation for (target, tag) is running.
func (e *Engine) Active(target any, tag string) bool {
	return slices.ContainsFunc(e.anims, func(r *running) bool {
		return r.Target == target && r.Tag == tag
	})
}

// Tick advances all animations to now. Completed animations are
// removed before their Ready callbacks run, so a callback may start a
// new animation for the same target.
func (e *Engine) Tick(now time.Duration) {
	e.now = now
	var done []*running
	kept := e.anims[:0]
	for _, r := range e.anims {
		t := float32(now-r.start) / float32(r.Duration)
		if t >= 1 {
			done = append(done, r)
			continue
		}
		if t < 0 {
			t = 0
		}
		v := r.From + int(math.Round(float64(r.Path(t))*float64(r.To-r.From)))
		r.Exec(v)
		kept = append(kept, r)
	}
	e.anims = kept
	for _, r := range done {
		r.Exec(r.To)
		if r.Ready != nil {
			r.Ready()
		}
	}
}
