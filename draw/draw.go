// SPDX-License-Identifier: Unlicense OR MIT

/*
Package draw defines the primitives widgets paint with.

Widgets describe rectangles and labels with style descriptors and
hand them to a Canvas. The descriptors are plain data so event hooks
can adjust them before the primitive is drawn.
*/
package draw

import (
	"image"
	"image/color"

	"embedui.org/text"
)

// Side is a set of rectangle sides.
type Side uint8

const (
	SideLeft Side = 1 << iota
	SideRight
	SideTop
	SideBottom

	SideAll = SideLeft | SideRight | SideTop | SideBottom
)

// RectStyle describes a filled, optionally bordered rectangle.
type RectStyle struct {
	Fill color.NRGBA
	// BorderWidth is the border thickness in pixels. Zero disables
	// the border.
	BorderWidth int
	BorderColor color.NRGBA
	// BorderSides selects which sides carry a border.
	BorderSides Side
}

// LabelStyle describes how label text is laid out and painted.
type LabelStyle struct {
	Face          text.Face
	Color         color.NRGBA
	LetterSpacing int
	LineSpacing   int
	Align         text.Alignment
	Flags         text.Flags
}

// Canvas is the draw target consumed by widgets. Primitives outside
// clip must not be painted.
type Canvas interface {
	Rect(r, clip image.Rectangle, style *RectStyle)
	Label(r, clip image.Rectangle, style *LabelStyle, txt string)
}

// RectCall is one recorded Rect invocation.
type RectCall struct {
	Rect, Clip image.Rectangle
	Style      RectStyle
}

// LabelCall is one recorded Label invocation.
type LabelCall struct {
	Rect, Clip image.Rectangle
	Style      LabelStyle
	Text       string
}

// Recorder is a Canvas that records calls, for tests and draw
// inspection.
type Recorder struct {
	Rects  []RectCall
	Labels []LabelCall
}

func (r *Recorder) Rect(rect, clip image.Rectangle, style *RectStyle) {
	r.Rects = append(r.Rects, RectCall{Rect: rect, Clip: clip, Style: *style})
}

func (r *Recorder) Label(rect, clip image.Rectangle, style *LabelStyle, txt string) {
	r.Labels = append(r.Labels, LabelCall{Rect: rect, Clip: clip, Style: *style, Text: txt})
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.Rects = r.Rects[:0]
	r.Labels = r.Labels[:0]
}
