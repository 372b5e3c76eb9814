// SPDX-License-Identifier: Unlicense OR MIT

/*
Package shape implements text measurement over OpenType fonts.

A Face wraps an sfnt font at a fixed pixel size and lays strings out
with greedy word wrapping and kerning. Layouts are cached until the
next call to Reset.
*/
package shape

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	xopentype "golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"embedui.org/text"
)

// glyphSource provides the per-rune measurements layout needs.
type glyphSource interface {
	GlyphAdvance(buf *sfnt.Buffer, ppem fixed.Int26_6, r rune) (fixed.Int26_6, bool)
	Kern(buf *sfnt.Buffer, ppem fixed.Int26_6, r0, r1 rune) fixed.Int26_6
	Metrics(buf *sfnt.Buffer, ppem fixed.Int26_6) font.Metrics
}

// Face is an implementation of text.Face for a single font at a
// single size.
type Face struct {
	fnt     *sfnt.Font
	src     glyphSource
	ppem    fixed.Int26_6
	buf     sfnt.Buffer
	metrics font.Metrics

	layoutCache map[layoutKey]cachedLayout

	xface font.Face
}

type layoutKey struct {
	str  string
	opts text.LayoutOptions
}

type cachedLayout struct {
	active bool
	layout *text.Layout
}

// Parse parses an OpenType or TrueType font.
func Parse(ttf []byte) (*sfnt.Font, error) {
	return sfnt.Parse(ttf)
}

// NewFace returns a Face for fnt at the given pixel size.
func NewFace(fnt *sfnt.Font, sizePx float32) *Face {
	f := &Face{
		fnt:  fnt,
		src:  &opentype{Font: fnt, Hinting: font.HintingFull},
		ppem: fixed.Int26_6(sizePx * 64),
	}
	f.metrics = f.src.Metrics(&f.buf, f.ppem)
	return f
}

// LineHeight implements text.Face. It reports the recommended
// baseline-to-baseline distance, including the line gap.
func (f *Face) LineHeight() int {
	return f.metrics.Height.Ceil()
}

// Layout implements text.Face. The returned layout is owned by the
// cache and must not be modified.
func (f *Face) Layout(str string, opts text.LayoutOptions) *text.Layout {
	if f.layoutCache == nil {
		f.layoutCache = make(map[layoutKey]cachedLayout)
	}
	lk := layoutKey{str: str, opts: opts}
	if l, ok := f.layoutCache[lk]; ok {
		l.active = true
		f.layoutCache[lk] = l
		return l.layout
	}
	l := f.layoutText(str, opts)
	f.layoutCache[lk] = cachedLayout{active: true, layout: l}
	return l
}

// Reset the cache, discarding any layouts that haven't been used
// since the last call to Reset.
func (f *Face) Reset() {
	for lk, l := range f.layoutCache {
		if !l.active {
			delete(f.layoutCache, lk)
			continue
		}
		l.active = false
		f.layoutCache[lk] = l
	}
}

// XFace returns a rasterization face for the same font and size, for
// use with font.Drawer.
func (f *Face) XFace() (font.Face, error) {
	if f.xface != nil {
		return f.xface, nil
	}
	xf, err := xopentype.NewFace(f.fnt, &xopentype.FaceOptions{
		Size:    float64(f.ppem) / 64,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	f.xface = xf
	return xf, nil
}

func (f *Face) layoutText(str string, opts text.LayoutOptions) *text.Layout {
	m := f.metrics
	lineTmpl := text.Line{
		Ascent: m.Ascent,
		// m.Height is equal to m.Ascent + m.Descent + linegap.
		// Compute the descent including the linegap.
		Descent: m.Height - m.Ascent,
	}
	letterSpace := fixed.I(opts.LetterSpacing)
	var lines []text.Line
	maxDotX := fixed.I(opts.MaxWidth)
	type state struct {
		r     rune
		advs  []fixed.Int26_6
		adv   fixed.Int26_6
		x     fixed.Int26_6
		idx   int
		valid bool
	}
	var prev, word state
	endLine := func() {
		line := lineTmpl
		line.Text.Advances = prev.advs
		line.Text.String = str[:prev.idx]
		line.Width = prev.x + prev.adv
		lines = append(lines, line)
		str = str[prev.idx:]
		prev = state{}
		word = state{}
	}
	for prev.idx < len(str) {
		c, s := utf8.DecodeRuneInString(str[prev.idx:])
		nl := c == '\n'
		if opts.SingleLine && nl {
			nl = false
			c = ' '
			s = 1
		}
		// Runes without glyph measurements stay in the line with a
		// zero advance, keeping advances aligned with the text.
		a, aok := f.src.GlyphAdvance(&f.buf, f.ppem, c)
		next := state{
			r:     c,
			advs:  prev.advs,
			idx:   prev.idx + s,
			x:     prev.x + prev.adv,
			valid: aok,
		}
		if nl {
			// The newline is zero width; use the previous
			// character for line measurements.
			prev.advs = append(prev.advs, 0)
			prev.idx = next.idx
			endLine()
			continue
		}
		if aok {
			next.adv = a + letterSpace
		}
		var k fixed.Int26_6
		if aok && prev.valid {
			k = f.src.Kern(&f.buf, f.ppem, prev.r, next.r)
		}
		// Break the line if we're out of space.
		if prev.idx > 0 && next.x+next.adv+k >= maxDotX {
			// If the line contains no word breaks, break off the last rune.
			if word.idx == 0 {
				word = prev
			}
			next.x -= word.x + word.adv
			next.idx -= word.idx
			next.advs = next.advs[len(word.advs):]
			prev = word
			endLine()
		} else {
			next.adv += k
		}
		next.advs = append(next.advs, next.adv)
		if unicode.IsSpace(next.r) {
			word = next
		}
		prev = next
	}
	endLine()
	return &text.Layout{Lines: lines}
}
