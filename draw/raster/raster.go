// SPDX-License-Identifier: Unlicense OR MIT

// Package raster implements a software Canvas over an RGBA image.
package raster

import (
	"image"
	idraw "image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"embedui.org/draw"
	"embedui.org/text"
)

// glyphFace is implemented by measurement faces that can also expose
// a rasterization face, such as shape.Face.
type glyphFace interface {
	text.Face
	XFace() (font.Face, error)
}

// Canvas paints into an RGBA image.
type Canvas struct {
	Dst *image.RGBA
}

// New returns a Canvas painting into an image of the given size.
func New(size image.Point) *Canvas {
	return &Canvas{Dst: image.NewRGBA(image.Rectangle{Max: size})}
}

// Rect implements draw.Canvas.
func (c *Canvas) Rect(r, clip image.Rectangle, style *draw.RectStyle) {
	vis := r.Intersect(clip).Intersect(c.Dst.Bounds())
	if vis.Empty() {
		return
	}
	if style.Fill.A > 0 {
		idraw.Draw(c.Dst, vis, image.NewUniform(style.Fill), image.Point{}, idraw.Over)
	}
	if style.BorderWidth <= 0 || style.BorderSides == 0 {
		return
	}
	w := style.BorderWidth
	src := image.NewUniform(style.BorderColor)
	paint := func(side image.Rectangle) {
		side = side.Intersect(clip).Intersect(c.Dst.Bounds())
		if !side.Empty() {
			idraw.Draw(c.Dst, side, src, image.Point{}, idraw.Over)
		}
	}
	if style.BorderSides&draw.SideTop != 0 {
		paint(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w))
	}
	if style.BorderSides&draw.SideBottom != 0 {
		paint(image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y))
	}
	if style.BorderSides&draw.SideLeft != 0 {
		paint(image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y))
	}
	if style.BorderSides&draw.SideRight != 0 {
		paint(image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y))
	}
}

// Label implements draw.Canvas. The style face must be able to
// produce glyphs (a shape.Face); pure measurement faces are skipped
// with a logged warning.
func (c *Canvas) Label(r, clip image.Rectangle, style *draw.LabelStyle, txt string) {
	gf, ok := style.Face.(glyphFace)
	if !ok {
		log.Printf("raster: face %T cannot rasterize", style.Face)
		return
	}
	xface, err := gf.XFace()
	if err != nil {
		log.Printf("raster: glyph face: %v", err)
		return
	}
	vis := clip.Intersect(c.Dst.Bounds())
	if vis.Empty() {
		return
	}
	dst, ok := c.Dst.SubImage(vis).(*image.RGBA)
	if !ok {
		return
	}
	maxWidth := r.Dx()
	if style.Flags&text.FlagExpand != 0 {
		maxWidth = 1e6
	}
	layout := style.Face.Layout(txt, text.LayoutOptions{
		MaxWidth:      maxWidth,
		LetterSpacing: style.LetterSpacing,
	})
	src := image.NewUniform(style.Color)
	y := r.Min.Y
	for _, line := range layout.Lines {
		x := r.Min.X
		switch style.Align {
		case text.Middle:
			x += (r.Dx() - line.Width.Ceil()) / 2
		case text.End:
			x += r.Dx() - line.Width.Ceil()
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: xface,
			Dot: fixed.Point26_6{
				X: fixed.I(x),
				Y: fixed.I(y) + line.Ascent,
			},
		}
		// Place each rune at its measured advance so spacing
		// matches the layout exactly.
		i := 0
		for _, rn := range line.Text.String {
			dot := d.Dot
			if rn != '\n' {
				d.DrawString(string(rn))
			}
			if i < len(line.Text.Advances) {
				d.Dot = fixed.Point26_6{X: dot.X + line.Text.Advances[i], Y: dot.Y}
			}
			i++
		}
		y += (line.Ascent + line.Descent).Ceil() + style.LineSpacing
	}
}
