// SPDX-License-Identifier: Unlicense OR MIT

/*
Package style defines resolved style snapshots.

Widgets receive a Style by value at construction and never consult a
global style resolver; layout and draw code read the snapshot
directly, which keeps the widgets testable without a styling
framework.
*/
package style

import (
	"image/color"
	"time"

	"embedui.org/draw"
	"embedui.org/text"
	"embedui.org/unit"
)

// Insets are paddings around a content box.
type Insets struct {
	Top, Bottom, Left, Right int
}

// Horizontal is the sum of the left and right insets.
func (in Insets) Horizontal() int {
	return in.Left + in.Right
}

// Vertical is the sum of the top and bottom insets.
func (in Insets) Vertical() int {
	return in.Top + in.Bottom
}

// Border describes a rectangle border.
type Border struct {
	Width int
	Color color.NRGBA
	Sides draw.Side
}

// Part is the resolved style of one widget part.
type Part struct {
	Face          text.Face
	TextColor     color.NRGBA
	TextAlign     text.Alignment
	LetterSpacing int
	LineSpacing   int

	Pad    Insets
	Bg     color.NRGBA
	Border Border

	// AnimDuration is the duration of this part's position
	// animations. Zero disables animation.
	AnimDuration time.Duration
}

// Style is a complete widget style snapshot. Main styles the widget
// background, Items the repeated content (table cells), Selected the
// selection band and text (roller).
type Style struct {
	Main     Part
	Items    Part
	Selected Part

	// Metric converts device independent sizes for the display the
	// style was resolved for. The zero Metric means an unscaled
	// display.
	Metric unit.Metric
}

// Px resolves v against the style's display metric.
func (s *Style) Px(v unit.Value) int {
	m := s.Metric
	if m == (unit.Metric{}) {
		m = unit.NewMetric(unit.DefaultDPI)
	}
	return m.Px(v)
}

// RectStyle derives the draw descriptor for this part's background
// and border.
func (p *Part) RectStyle() draw.RectStyle {
	return draw.RectStyle{
		Fill:        p.Bg,
		BorderWidth: p.Border.Width,
		BorderColor: p.Border.Color,
		BorderSides: p.Border.Sides,
	}
}

// LabelStyle derives the draw descriptor for this part's text.
func (p *Part) LabelStyle(flags text.Flags) draw.LabelStyle {
	return draw.LabelStyle{
		Face:          p.Face,
		Color:         p.TextColor,
		LetterSpacing: p.LetterSpacing,
		LineSpacing:   p.LineSpacing,
		Align:         p.TextAlign,
		Flags:         flags,
	}
}
