// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"testing"

	"embedui.org/style"
	"embedui.org/text"
)

func testLabelPart() style.Part {
	return style.Part{Face: testFace(), LineSpacing: 4}
}

func TestLabelSetTextResizes(t *testing.T) {
	l := NewLabel(testLabelPart())
	var sized bool
	l.On(func(e *Event) {
		if e.Kind == EventSizeChanged {
			sized = true
		}
	})
	l.SetText("abc")
	if w, h := l.Width(), l.Height(); w != 24 || h != 16 {
		t.Errorf("size = %dx%d, want 24x16", w, h)
	}
	if !sized {
		t.Error("no size change event")
	}
	l.SetText("ab\ncd")
	if w, h := l.Width(), l.Height(); w != 24 || h != 36 {
		t.Errorf("two-line size = %dx%d, want 24x36", w, h)
	}
}

func TestLabelMovePreservesSize(t *testing.T) {
	l := NewLabel(testLabelPart())
	l.SetText("abc")
	size := l.Coords.Size()
	l.SetY(-18)
	l.SetX(7)
	if l.Coords.Size() != size {
		t.Errorf("size changed to %v after move, want %v", l.Coords.Size(), size)
	}
	if l.Y() != -18 || l.Coords.Min.X != 7 {
		t.Errorf("position = (%d,%d), want (7,-18)", l.Coords.Min.X, l.Y())
	}
}

func TestLabelLetterOn(t *testing.T) {
	l := NewLabel(testLabelPart())
	l.SetText("ab\ncd")
	// Lines are 16 px tall with 4 px spacing; runes advance 8 px.
	tests := []struct {
		name string
		pt   image.Point
		want int
	}{
		{"first letter", image.Point{X: 0, Y: 0}, 0},
		{"second letter", image.Point{X: 12, Y: 5}, 1},
		{"past line end maps to its break", image.Point{X: 100, Y: 5}, 2},
		{"second line", image.Point{X: 4, Y: 25}, 3},
		{"below text maps into last line", image.Point{X: 100, Y: 100}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.LetterOn(tc.pt); got != tc.want {
				t.Errorf("LetterOn(%v) = %d, want %d", tc.pt, got, tc.want)
			}
		})
	}
}

func TestLabelLetterOnZeroWidthRune(t *testing.T) {
	face := fixedFace{adv: 8, ascent: 12, descent: 4, zero: '\u200b'}
	l := NewLabel(style.Part{Face: face, LineSpacing: 4})
	l.SetText("a\u200bb\ncd")
	// The zero width rune still occupies index 1, so 'b' is index 2
	// and the break index 3.
	tests := []struct {
		name string
		pt   image.Point
		want int
	}{
		{"after zero width rune", image.Point{X: 12, Y: 5}, 2},
		{"line end", image.Point{X: 100, Y: 5}, 3},
		{"second line", image.Point{X: 0, Y: 25}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.LetterOn(tc.pt); got != tc.want {
				t.Errorf("LetterOn(%v) = %d, want %d", tc.pt, got, tc.want)
			}
		})
	}
}

func TestLabelDirection(t *testing.T) {
	l := NewLabel(testLabelPart())
	l.SetText("abc")
	if l.Dir != text.LTR {
		t.Errorf("Dir = %v, want LTR", l.Dir)
	}
	l.SetText("שלום")
	if l.Dir != text.RTL {
		t.Errorf("Dir = %v, want RTL", l.Dir)
	}
}
