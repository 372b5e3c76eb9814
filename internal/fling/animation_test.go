// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"testing"
	"time"
)

func TestEstimateVelocity(t *testing.T) {
	var e Extrapolation
	// Constant 1000 px/s motion sampled every 10ms.
	for i := 0; i <= 10; i++ {
		e.Sample(time.Duration(i)*10*time.Millisecond, float32(i)*10)
	}
	est := e.Estimate()
	if est.Velocity < 900 || est.Velocity > 1100 {
		t.Errorf("velocity = %v, want ~1000", est.Velocity)
	}
	if est.Distance <= 0 {
		t.Errorf("distance = %v, want > 0", est.Distance)
	}
}

func TestEstimateTooFewSamples(t *testing.T) {
	var e Extrapolation
	e.Sample(0, 0)
	e.Sample(10*time.Millisecond, 5)
	if est := e.Estimate(); est != (Estimate{}) {
		t.Errorf("estimate from 2 samples = %+v, want zero", est)
	}
}

func TestEstimateStaleSamples(t *testing.T) {
	var e Extrapolation
	// A fast stroke followed by a long pause: the pause ends the
	// regression window.
	e.Sample(0, 0)
	e.Sample(10*time.Millisecond, 50)
	e.Sample(20*time.Millisecond, 100)
	e.Sample(500*time.Millisecond, 100)
	e.Sample(510*time.Millisecond, 100)
	e.Sample(520*time.Millisecond, 100)
	est := e.Estimate()
	if est.Velocity > 100 || est.Velocity < -100 {
		t.Errorf("velocity after pause = %v, want ~0", est.Velocity)
	}
}

func TestAnimationDecays(t *testing.T) {
	var a Animation
	now := time.Unix(0, 0)
	a.Start(now, 1000)
	if !a.Active() {
		t.Fatal("animation not active after Start")
	}
	var total int
	for i := 0; i < 100 && a.Active(); i++ {
		now = now.Add(16 * time.Millisecond)
		total += a.Tick(now)
	}
	if a.Active() {
		t.Error("animation still active after decay")
	}
	// Total distance approaches v0*decayTime = 325px.
	if total < 250 || total > 340 {
		t.Errorf("total distance = %d, want ~325", total)
	}
}

func TestAnimationIgnoresSlowStart(t *testing.T) {
	var a Animation
	a.Start(time.Unix(0, 0), 10)
	if a.Active() {
		t.Error("slow fling should not start")
	}
}
