// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"

	"golang.org/x/image/math/fixed"

	"embedui.org/draw"
	"embedui.org/style"
	"embedui.org/text"
)

// maxLabelWidth disables wrapping when a label lays out its own text.
const maxLabelWidth = 1e6

// Label is a block of text. It sizes itself to its content and is
// typically used as an internal child of scrolling widgets.
type Label struct {
	Obj
	part style.Part
	txt  string
}

// NewLabel returns a label styled with part.
func NewLabel(part style.Part) *Label {
	l := &Label{part: part}
	l.SetText("")
	return l
}

// SetText replaces the label text. The label resizes to fit the new
// content and emits EventSizeChanged when its size changes.
func (l *Label) SetText(s string) {
	l.txt = s
	l.Dir = text.Direction(s)
	size := text.Size(l.part.Face, s, l.part.LetterSpacing, l.part.LineSpacing, 0, text.FlagExpand)
	old := l.Coords.Size()
	l.Coords.Max = l.Coords.Min.Add(size)
	if size != old {
		l.Emit(&Event{Kind: EventSizeChanged, Rect: l.Coords})
	}
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.txt
}

// Y returns the top coordinate of the label.
func (l *Label) Y() int {
	return l.Coords.Min.Y
}

// SetY moves the label vertically, preserving its size.
func (l *Label) SetY(y int) {
	size := l.Coords.Size()
	l.Coords.Min.Y = y
	l.Coords.Max = l.Coords.Min.Add(size)
}

// SetX moves the label horizontally, preserving its size.
func (l *Label) SetX(x int) {
	size := l.Coords.Size()
	l.Coords.Min.X = x
	l.Coords.Max = l.Coords.Min.Add(size)
}

// LetterOn returns the index of the letter under p, given in screen
// coordinates. Line breaks count as letters. Points beyond a line's
// last letter map to that letter, and points below the text map into
// the last line.
func (l *Label) LetterOn(p image.Point) int {
	rel := p.Sub(l.Coords.Min)
	layout := l.part.Face.Layout(l.txt, text.LayoutOptions{
		MaxWidth:      maxLabelWidth,
		LetterSpacing: l.part.LetterSpacing,
	})
	if len(layout.Lines) == 0 {
		return 0
	}
	// Find the line containing rel.Y.
	li := 0
	y := 0
	for i, line := range layout.Lines {
		h := (line.Ascent + line.Descent).Ceil()
		li = i
		if rel.Y < y+h {
			break
		}
		y += h + l.part.LineSpacing
	}
	base := 0
	for i := 0; i < li; i++ {
		base += len(layout.Lines[i].Text.Advances)
	}
	line := layout.Lines[li]
	x := 0
	switch l.part.TextAlign {
	case text.Middle:
		x = (l.Width() - line.Width.Ceil()) / 2
	case text.End:
		x = l.Width() - line.Width.Ceil()
	}
	pos := fixed.I(x)
	last := len(line.Text.Advances) - 1
	if last < 0 {
		return base
	}
	for i, adv := range line.Text.Advances {
		if fixed.I(rel.X) < pos+adv {
			return base + i
		}
		pos += adv
	}
	return base + last
}

// Draw implements Widget.
func (l *Label) Draw(clip image.Rectangle, mode DrawMode, c draw.Canvas) DrawRes {
	switch mode {
	case CoverCheck:
		return DrawNotCover
	case MainDraw:
		ls := l.part.LabelStyle(text.FlagExpand)
		l.DrawStyled(clip, c, &ls)
	}
	return DrawOK
}

// DrawStyled paints the label text with an explicit style descriptor,
// for widgets that repaint their label under different clips and
// colors.
func (l *Label) DrawStyled(clip image.Rectangle, c draw.Canvas, ls *draw.LabelStyle) {
	vis := clip.Intersect(l.Coords)
	if vis.Empty() {
		return
	}
	c.Label(l.Coords, vis, ls, l.txt)
}

// Signal implements Widget.
func (l *Label) Signal(sig Signal) Res {
	return l.SignalBase(sig)
}

// Destroy implements Widget.
func (l *Label) Destroy() {
	l.handlers = nil
}
