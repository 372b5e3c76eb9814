// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"testing"
	"time"

	"embedui.org/anim"
	"embedui.org/draw"
	"embedui.org/io/input"
	"embedui.org/io/key"
	"embedui.org/style"
	"embedui.org/text"
)

// testRollerStyle: 16 px lines with 4 px spacing, so one option row
// is 20 px and three visible rows make the widget 60 px tall.
func testRollerStyle(animDur time.Duration) style.Style {
	face := testFace()
	return style.Style{
		Main:     style.Part{Face: face, LineSpacing: 4, AnimDuration: animDur},
		Selected: style.Part{Face: face, LineSpacing: 4},
	}
}

func newTestRoller(t *testing.T, options string, mode Mode) (*Roller, *anim.Engine) {
	t.Helper()
	eng := new(anim.Engine)
	r := NewRoller(testRollerStyle(0), eng)
	r.SetOptions(options, mode)
	return r, eng
}

func TestRollerNormalSelection(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC", ModeNormal)
	if r.OptionCount() != 3 {
		t.Fatalf("option count = %d, want 3", r.OptionCount())
	}
	if r.Selected() != 0 {
		t.Fatalf("initial selection = %d, want 0", r.Selected())
	}
	if r.LabelY() != 22 {
		t.Fatalf("initial label offset = %d, want 22", r.LabelY())
	}

	r.SetSelected(2, false)
	if r.Selected() != 2 {
		t.Errorf("selection = %d, want 2", r.Selected())
	}
	// mid - 2*unit: 22 - 2*20.
	if r.LabelY() != -18 {
		t.Errorf("label offset = %d, want -18", r.LabelY())
	}
}

func TestRollerInfiniteNormalization(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC", ModeInfinite)
	if r.OptionCount() != 3 {
		t.Fatalf("option count = %d, want 3", r.OptionCount())
	}
	if r.Selected() != 0 {
		t.Fatalf("initial selection = %d, want 0", r.Selected())
	}

	for _, k := range []int{1, 2, 5, 6} {
		r.SetSelected(3*k, false)
		if got := r.Selected(); got >= 3 {
			t.Fatalf("Selected() = %d after selecting %d, want < 3", got, 3*k)
		} else if 3*k < 21 && got != 0 {
			t.Fatalf("Selected() = %d after selecting multiple %d, want 0", got, 3*k)
		}
	}
}

func TestRollerSelectedRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeNormal, ModeInfinite} {
		t.Run(mode.String(), func(t *testing.T) {
			r, _ := newTestRoller(t, "A\nB\nC", mode)
			for n := 0; n < 3; n++ {
				r.SetSelected(n, false)
				if got := r.Selected(); got != n {
					t.Errorf("Selected() = %d after SetSelected(%d)", got, n)
				}
			}
		})
	}
}

func TestRollerSetOptionsResets(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC", ModeNormal)
	r.SetSelected(2, false)
	r.SetOptions("X\nY", ModeNormal)
	if r.Selected() != 0 || r.OptionCount() != 2 {
		t.Errorf("after reset: selection %d of %d options, want 0 of 2", r.Selected(), r.OptionCount())
	}
	// The origin must match, so losing focus must not move it.
	r.Signal(Signal{Kind: SignalDefocus})
	if r.Selected() != 0 {
		t.Errorf("defocus moved a fresh selection to %d", r.Selected())
	}
}

func TestRollerSelectedText(t *testing.T) {
	r, _ := newTestRoller(t, "Alpha\nBeta\nGamma", ModeNormal)
	r.SetSelected(1, false)
	if got := r.SelectedText(); got != "Beta" {
		t.Errorf("SelectedText() = %q, want \"Beta\"", got)
	}

	buf := make([]byte, 2)
	if n := r.SelectedTextInto(buf); n != 2 || string(buf) != "Be" {
		t.Errorf("SelectedTextInto = %d %q, want 2 \"Be\"", n, buf)
	}

	r.SetOptions("Alpha\nBeta\nGamma", ModeInfinite)
	r.SetSelected(2, false)
	if got := r.SelectedText(); got != "Gamma" {
		t.Errorf("infinite SelectedText() = %q, want \"Gamma\"", got)
	}
}

func TestRollerTapSelects(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC", ModeNormal)
	var changed []int
	r.On(func(e *Event) {
		if e.Kind == EventValueChanged {
			changed = append(changed, e.Value)
		}
	})

	// Option 1 sits at label offset 20..36; the label top is at 22.
	dev := &fakeDevice{kind: input.KindPointer, point: image.Point{X: 4, Y: 50}}
	r.Signal(Signal{Kind: SignalPressed, Device: dev})
	r.Signal(Signal{Kind: SignalReleased, Device: dev})

	if r.Selected() != 1 {
		t.Errorf("tap selected %d, want 1", r.Selected())
	}
	if len(changed) != 1 || changed[0] != 1 {
		t.Errorf("value events = %v, want [1]", changed)
	}
}

func TestRollerTapRightMarginSelectsSameLine(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC", ModeNormal)
	// Far right of the first option maps to its line break, which
	// still belongs to option 0.
	dev := &fakeDevice{kind: input.KindPointer, point: image.Point{X: 200, Y: 25}}
	r.Signal(Signal{Kind: SignalPressed, Device: dev})
	r.Signal(Signal{Kind: SignalReleased, Device: dev})
	if r.Selected() != 0 {
		t.Errorf("margin tap selected %d, want 0", r.Selected())
	}
}

func TestRollerTapCountsZeroWidthRunes(t *testing.T) {
	eng := new(anim.Engine)
	st := testRollerStyle(0)
	st.Main.Face = fixedFace{adv: 8, ascent: 12, descent: 4, zero: '\u200b'}
	r := NewRoller(st, eng)
	r.SetOptions("A\u200bB\nC\nD", ModeNormal)

	// The zero width rune in option 0 must not shift the delimiter
	// count for taps on later options.
	dev := &fakeDevice{kind: input.KindPointer, point: image.Point{X: 4, Y: 50}}
	r.Signal(Signal{Kind: SignalPressed, Device: dev})
	r.Signal(Signal{Kind: SignalReleased, Device: dev})
	if r.Selected() != 1 {
		t.Errorf("tap selected %d, want 1", r.Selected())
	}
}

func TestRollerDragSettlesOnNearest(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC\nD\nE", ModeNormal)
	dev := &fakeDevice{kind: input.KindPointer}

	r.Signal(Signal{Kind: SignalPressed, Device: dev})
	dev.vector = image.Point{Y: -10}
	r.Signal(Signal{Kind: SignalPressing, Device: dev})
	if r.LabelY() != 12 {
		t.Fatalf("label offset after drag = %d, want 12", r.LabelY())
	}

	// Projected top is -20; (30 - (-20)) / 20 rounds up to 3.
	dev.throw = -32
	r.Signal(Signal{Kind: SignalReleased, Device: dev})
	if r.Selected() != 3 {
		t.Errorf("drag settled on %d, want 3", r.Selected())
	}
	if r.LabelY() != 22-3*20 {
		t.Errorf("label offset = %d, want %d", r.LabelY(), 22-3*20)
	}
}

func TestRollerControlKeysPreserveOrigin(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC\nD\nE", ModeNormal)
	r.SetSelected(1, false)

	r.Signal(Signal{Kind: SignalControl, Key: key.CodeDown})
	r.Signal(Signal{Kind: SignalControl, Key: key.CodeDown})
	if r.Selected() != 3 {
		t.Fatalf("after two steps selection = %d, want 3", r.Selected())
	}

	// Steps do not checkpoint; defocus reverts to the confirmed
	// value.
	r.Signal(Signal{Kind: SignalDefocus})
	if r.Selected() != 1 {
		t.Errorf("after defocus selection = %d, want 1", r.Selected())
	}
}

func TestRollerEncoderFocusRevertsUnconfirmed(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC\nD\nE", ModeNormal)
	r.SetSelected(2, false)
	r.Signal(Signal{Kind: SignalControl, Key: key.CodeDown})
	if r.Selected() != 3 {
		t.Fatal("setup: step failed")
	}

	enc := &fakeDevice{kind: input.KindEncoder}
	r.Signal(Signal{Kind: SignalFocus, Device: enc, Editing: false})
	if r.Selected() != 2 {
		t.Errorf("navigate focus kept %d, want revert to 2", r.Selected())
	}
}

func TestRollerKeypadReleaseConfirms(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC\nD\nE", ModeNormal)
	r.SetSelected(1, false)
	r.Signal(Signal{Kind: SignalControl, Key: key.CodeDown})

	pad := &fakeDevice{kind: input.KindKeypad}
	r.Signal(Signal{Kind: SignalReleased, Device: pad})

	// The release checkpointed; defocus no longer reverts.
	r.Signal(Signal{Kind: SignalDefocus})
	if r.Selected() != 2 {
		t.Errorf("after confirm selection = %d, want 2", r.Selected())
	}
}

func TestRollerAnimatedSettleRenormalizes(t *testing.T) {
	eng := new(anim.Engine)
	r := NewRoller(testRollerStyle(100*time.Millisecond), eng)
	r.SetOptions("A\nB\nC", ModeInfinite)

	r.SetSelected(15, true)
	if !eng.Active(r.label, "y") {
		t.Fatal("no scroll animation started")
	}
	eng.Tick(50 * time.Millisecond)
	eng.Tick(100 * time.Millisecond)
	if eng.Active(r.label, "y") {
		t.Fatal("scroll animation still active after completion")
	}

	if r.Selected() != 0 {
		t.Errorf("settled selection = %d, want 0", r.Selected())
	}
	// Index 15 renormalizes to the middle page (index 9).
	if r.LabelY() != 22-9*20 {
		t.Errorf("label offset = %d, want %d", r.LabelY(), 22-9*20)
	}
}

func TestRollerDrawSplit(t *testing.T) {
	r, _ := newTestRoller(t, "A\nB\nC", ModeNormal)
	r.SetSelected(1, false)

	clip := image.Rect(0, 0, 1000, 1000)
	var rec draw.Recorder
	r.Draw(clip, MainDraw, &rec)

	// Background plus the selection band.
	if len(rec.Rects) != 2 {
		t.Fatalf("painted %d rects, want 2", len(rec.Rects))
	}
	band := rec.Rects[1].Rect
	wantBand := image.Rect(0, 20, r.Width(), 40)
	if band != wantBand {
		t.Fatalf("band = %v, want %v", band, wantBand)
	}
	// The option text is painted above and below the band only.
	if len(rec.Labels) != 2 {
		t.Fatalf("painted %d labels, want 2", len(rec.Labels))
	}
	if rec.Labels[0].Clip.Max.Y > band.Min.Y {
		t.Errorf("upper label clip %v overlaps band", rec.Labels[0].Clip)
	}
	if rec.Labels[1].Clip.Min.Y < band.Max.Y {
		t.Errorf("lower label clip %v overlaps band", rec.Labels[1].Clip)
	}

	rec.Reset()
	r.Draw(clip, PostDraw, &rec)
	if len(rec.Labels) != 1 {
		t.Fatalf("post draw painted %d labels, want 1", len(rec.Labels))
	}
	sel := rec.Labels[0]
	if sel.Clip != wantBand {
		t.Errorf("selected text clip = %v, want %v", sel.Clip, wantBand)
	}
	// With identical fonts the selected text tracks the label
	// position exactly.
	if sel.Rect.Min.Y != r.label.Y() {
		t.Errorf("selected text top = %d, want label top %d", sel.Rect.Min.Y, r.label.Y())
	}
	if sel.Style.Flags&text.FlagExpand == 0 {
		t.Error("selected text not laid out expanded")
	}
}
