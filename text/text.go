// SPDX-License-Identifier: Unlicense OR MIT

// Package text provides the text measurement contract consumed by
// widgets: line metrics, wrapped layout and text sizing.
package text

import (
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// A Line contains the measurements of a line of text.
type Line struct {
	Text String
	// Width is the width of the line.
	Width fixed.Int26_6
	// Ascent is the height above the baseline.
	Ascent fixed.Int26_6
	// Descent is the height below the baseline, including
	// the line gap.
	Descent fixed.Int26_6
}

// String is a line of text together with the advance of
// each of its runes.
type String struct {
	String string
	// Advances contain the advance of each rune in String.
	Advances []fixed.Int26_6
}

// A Layout contains the measurements of a body of text as
// a list of Lines.
type Layout struct {
	Lines []Line
}

// LayoutOptions specify the constraints of a text layout.
type LayoutOptions struct {
	// MaxWidth sets the maximum width of the layout.
	MaxWidth int
	// SingleLine specifies that line breaks are ignored.
	SingleLine bool
	// LetterSpacing is added to the advance of every rune.
	LetterSpacing int
}

// Face is a text measurement service. Implementations lay out text
// with a particular font and size.
type Face interface {
	// Layout returns the text layout for a string given a set of
	// options.
	Layout(s string, opts LayoutOptions) *Layout
	// LineHeight returns the height of a single line of text in
	// pixels.
	LineHeight() int
}

// Flags alter how text is measured and drawn.
type Flags uint8

const (
	// FlagNone measures with wrapping at the maximum width.
	FlagNone Flags = 0
	// FlagExpand ignores the maximum width; the text takes as much
	// horizontal space as it needs.
	FlagExpand Flags = 1 << iota
)

// Alignment is the text alignment within its box.
type Alignment uint8

const (
	Start Alignment = iota
	End
	Middle
)

// Dir is the base direction of a body of text.
type Dir uint8

const (
	LTR Dir = iota
	RTL
)

const maxWidthInf = 1e6

// Size measures str laid out with face, returning its bounding size
// in pixels. letterSpacing is added to every rune advance and
// lineSpacing between consecutive lines, matching the widget style
// model. FlagExpand ignores maxWidth.
func Size(face Face, str string, letterSpacing, lineSpacing, maxWidth int, flags Flags) image.Point {
	if flags&FlagExpand != 0 {
		maxWidth = maxWidthInf
	}
	l := face.Layout(str, LayoutOptions{
		MaxWidth:      maxWidth,
		LetterSpacing: letterSpacing,
	})
	var width fixed.Int26_6
	var h int
	for i, line := range l.Lines {
		if i > 0 {
			h += lineSpacing
		}
		h += (line.Ascent + line.Descent).Ceil()
		if line.Width > width {
			width = line.Width
		}
	}
	return image.Point{X: width.Ceil(), Y: h}
}

// Direction reports the base direction of s according to the Unicode
// bidirectional algorithm. Undetermined input is treated as
// left-to-right.
func Direction(s string) Dir {
	var p bidi.Paragraph
	if _, err := p.SetString(s); err != nil {
		return LTR
	}
	o, err := p.Order()
	if err != nil || o.NumRuns() == 0 {
		return LTR
	}
	if p.IsLeftToRight() {
		return LTR
	}
	return RTL
}

func (a Alignment) String() string {
	switch a {
	case Start:
		return "Start"
	case End:
		return "End"
	case Middle:
		return "Middle"
	default:
		panic("unreachable")
	}
}

func (d Dir) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	default:
		panic(fmt.Sprintf("unknown direction %d", uint8(d)))
	}
}
