// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"log"
	"math"
	"strings"

	"embedui.org/anim"
	"embedui.org/draw"
	"embedui.org/io/input"
	"embedui.org/io/key"
	"embedui.org/style"
	"embedui.org/text"
)

// InfinitePages is the number of option-list replicas backing an
// infinite roller. Selection is kept on the middle replica so the
// list can wrap in both directions.
const InfinitePages = 7

// Mode selects the roller's wraparound behavior.
type Mode uint8

const (
	// ModeNormal stops at the first and last option.
	ModeNormal Mode = iota
	// ModeInfinite wraps around seamlessly.
	ModeInfinite
)

// Roller is a vertical option picker. Options scroll behind a fixed
// selection band centered in the widget; releasing a drag or tapping
// an option animates it into the band.
type Roller struct {
	Obj
	st  style.Style
	eng *anim.Engine

	label *Label
	mode  Mode
	// optCnt is the logical option count: in infinite mode the real
	// count times InfinitePages.
	optCnt    int
	selIdx    int
	selIdxOri int
	// moved is set once the current press gesture drags, which
	// turns the release from a tap into a fling settle.
	moved bool
}

// NewRoller returns a roller showing three rows, styled with st and
// animated by eng. Main styles the background and the option text,
// Selected the band and the selected text.
func NewRoller(st style.Style, eng *anim.Engine) *Roller {
	r := &Roller{st: st, eng: eng}
	r.label = NewLabel(st.Main)
	r.SetOptions("Option 1\nOption 2\nOption 3\nOption 4\nOption 5", ModeNormal)
	r.SetVisibleRowCount(3)
	return r
}

// SetOptions replaces the option list. options holds the option
// labels separated by '\n'. Selection resets to the first option, or
// to its middle-page equivalent in infinite mode.
func (r *Roller) SetOptions(options string, mode Mode) {
	r.mode = mode
	r.selIdx = 0
	r.selIdxOri = 0
	real := strings.Count(options, "\n") + 1

	if mode == ModeNormal {
		r.optCnt = real
		r.label.SetText(options)
	} else {
		rep := strings.Repeat(options+"\n", InfinitePages)
		r.label.SetText(rep[:len(rep)-1])
		r.selIdx = (InfinitePages / 2) * real
		r.optCnt = InfinitePages * real
		r.infNormalize()
	}
	r.selIdxOri = r.selIdx
	r.refreshSize()
	r.refrPosition(false)
}

// SetSelected selects the option at idx, clamped to the option
// count. In infinite mode idx may also be a logical (replicated)
// index; Selected reduces it to the real one.
func (r *Roller) SetSelected(idx int, animate bool) {
	if idx < 0 {
		idx = 0
	}
	if idx >= r.optCnt {
		idx = r.optCnt - 1
	}
	r.selIdx = idx
	r.selIdxOri = r.selIdx
	r.refrPosition(animate)
}

// Selected returns the selected option index, always less than the
// real option count.
func (r *Roller) Selected() int {
	if r.mode == ModeInfinite {
		return r.selIdx % (r.optCnt / InfinitePages)
	}
	return r.selIdx
}

// OptionCount returns the number of real options.
func (r *Roller) OptionCount() int {
	if r.mode == ModeInfinite {
		return r.optCnt / InfinitePages
	}
	return r.optCnt
}

// Options returns the backing option text, '\n' separated. In
// infinite mode it contains every replica.
func (r *Roller) Options() string {
	return r.label.Text()
}

// SelectedText returns the text of the selected option.
func (r *Roller) SelectedText() string {
	txt := r.label.Text()
	line := 0
	start := 0
	for i := 0; i < len(txt) && line != r.selIdx; i++ {
		if txt[i] == '\n' {
			line++
			start = i + 1
		}
	}
	end := strings.IndexByte(txt[start:], '\n')
	if end < 0 {
		return txt[start:]
	}
	return txt[start : start+end]
}

// SelectedTextInto copies the text of the selected option into buf,
// truncating with a logged warning when buf is too small. It returns
// the number of bytes copied.
func (r *Roller) SelectedTextInto(buf []byte) int {
	s := r.SelectedText()
	n := copy(buf, s)
	if n < len(s) {
		log.Printf("roller: selected text %q truncated to %d bytes", s, n)
	}
	return n
}

// SetVisibleRowCount sets the widget height to show n options.
func (r *Roller) SetVisibleRowCount(n int) {
	h := (r.st.Main.Face.LineHeight()+r.st.Main.LineSpacing)*n + r.st.Main.Pad.Vertical()
	old := r.Coords.Size()
	r.Coords.Max.Y = r.Coords.Min.Y + h
	if r.Coords.Size() != old {
		r.Emit(&Event{Kind: EventSizeChanged, Rect: r.Coords})
	}
	r.refrPosition(false)
}

// LabelY returns the option label's vertical offset relative to the
// content top.
func (r *Roller) LabelY() int {
	return r.label.Y() - r.contentRect().Min.Y
}

// Draw implements Widget. MainDraw paints the background, the
// selection band and the option text split above and below the band;
// PostDraw repaints the selected option's text with the selected
// style on top.
func (r *Roller) Draw(clip image.Rectangle, mode DrawMode, c draw.Canvas) DrawRes {
	switch mode {
	case CoverCheck:
		return r.DrawBase(clip, mode, c, &r.st.Main)
	case MainDraw:
		r.DrawBase(clip, mode, c, &r.st.Main)
		band := r.bandRect()
		rs := r.st.Selected.RectStyle()
		c.Rect(band, clip, &rs)

		// The band's own text is repainted in PostDraw; here the
		// label is drawn only outside it.
		ls := r.st.Main.LabelStyle(text.FlagExpand)
		above := image.Rect(r.Coords.Min.X, r.Coords.Min.Y, r.Coords.Max.X, band.Min.Y)
		r.label.DrawStyled(clip.Intersect(above), c, &ls)
		below := image.Rect(r.Coords.Min.X, band.Max.Y, r.Coords.Max.X, r.Coords.Max.Y)
		r.label.DrawStyled(clip.Intersect(below), c, &ls)
	case PostDraw:
		r.drawSelected(clip, c)
	}
	return DrawOK
}

func (r *Roller) drawSelected(clip image.Rectangle, c draw.Canvas) {
	mask := clip.Intersect(r.bandRect())
	if mask.Empty() || r.label.Height() == 0 {
		return
	}
	sel := &r.st.Selected
	ls := sel.LabelStyle(text.FlagExpand)
	size := text.Size(sel.Face, r.label.Text(), sel.LetterSpacing, sel.LineSpacing, r.Width(), text.FlagExpand)

	// Move the selected text proportionally with the label: its
	// offset from the middle line, in 1/16384ths of the label
	// height, scaled to the selected text's own height.
	mid := r.Coords.Min.Y + r.Height()/2
	prop := ((r.label.Y() - mid) << 14) / r.label.Height()

	// Different fonts between the normal and selected parts shift
	// the baselines; split the difference.
	corr := (sel.Face.LineHeight() - r.st.Main.Face.LineHeight()) / 2

	selH := size.Y - corr
	selY := mid + (prop*selH)>>14 - corr
	area := image.Rect(r.label.Coords.Min.X, selY, r.label.Coords.Max.X, selY+selH)
	c.Label(area, mask, &ls, r.label.Text())
}

// Signal implements Widget.
func (r *Roller) Signal(sig Signal) Res {
	if res := r.SignalBase(sig); res != ResOK {
		return res
	}
	switch sig.Kind {
	case SignalStyleChanged:
		r.refreshSize()
		r.refrPosition(false)
	case SignalCoordChanged:
		if sig.OldSize != r.Coords.Size() {
			r.refrPosition(false)
		}
	case SignalPressed:
		r.moved = false
		r.eng.Cancel(r.label, "y")
	case SignalPressing:
		if sig.Device == nil {
			break
		}
		if dy := sig.Device.Vector().Y; dy != 0 {
			r.label.SetY(r.label.Y() + dy)
			r.moved = true
		}
	case SignalReleased:
		r.releaseHandler(sig.Device)
	case SignalFocus:
		kind := input.KindNone
		if sig.Device != nil {
			kind = sig.Device.Kind()
		}
		if kind == input.KindEncoder {
			if !sig.Editing {
				// Navigate mode shows the confirmed value.
				if r.selIdx != r.selIdxOri {
					r.selIdx = r.selIdxOri
					r.refrPosition(true)
				}
			} else {
				r.selIdxOri = r.selIdx
			}
		} else {
			// Checkpoint, to revert if Enter is never pressed.
			r.selIdxOri = r.selIdx
		}
	case SignalDefocus:
		if r.selIdx != r.selIdxOri {
			r.selIdx = r.selIdxOri
			r.refrPosition(true)
		}
	case SignalControl:
		switch sig.Key {
		case key.CodeRight, key.CodeDown:
			if r.selIdx+1 < r.optCnt {
				ori := r.selIdxOri
				r.SetSelected(r.selIdx+1, true)
				r.selIdxOri = ori
			}
		case key.CodeLeft, key.CodeUp:
			if r.selIdx > 0 {
				ori := r.selIdxOri
				r.SetSelected(r.selIdx-1, true)
				r.selIdxOri = ori
			}
		}
	}
	return ResOK
}

// Destroy implements Widget.
func (r *Roller) Destroy() {
	r.eng.Cancel(r.label, "y")
	r.label.Destroy()
	r.handlers = nil
}

// releaseHandler commits the selection at the end of a gesture: a tap
// selects the option under the press point, a drag settles on the
// option nearest the band after the projected fling.
func (r *Roller) releaseHandler(dev input.Device) {
	kind := input.KindNone
	if dev != nil {
		kind = dev.Kind()
	}
	if kind == input.KindEncoder || kind == input.KindKeypad {
		r.selIdxOri = r.selIdx
	}
	if kind == input.KindPointer || kind == input.KindButton {
		newOpt := -1
		if !r.moved {
			// The delimiter under the press is not counted; it
			// still belongs to the pressed line.
			li := r.label.LetterOn(dev.Point())
			newOpt = 0
			for k, rn := range []rune(r.label.Text()) {
				if k >= li {
					break
				}
				if rn == '\n' {
					newOpt++
				}
			}
		} else {
			unit := r.st.Main.Face.LineHeight() + r.st.Main.LineSpacing
			mid := r.Coords.Min.Y + r.Height()/2
			top := r.label.Y() + dev.ThrowPredict(input.Vertical)
			id := int(math.Round(float64(mid-top) / float64(unit)))
			if id < 0 {
				id = 0
			}
			if id >= r.optCnt {
				id = r.optCnt - 1
			}
			newOpt = id
		}
		if newOpt >= 0 {
			r.SetSelected(newOpt, true)
		}
	}
	r.Emit(&Event{Kind: EventValueChanged, Value: r.Selected()})
}

// refrPosition moves the label so the selected option sits centered
// in the band, immediately or with an ease-out animation whose
// completion renormalizes the infinite page.
func (r *Roller) refrPosition(animate bool) {
	content := r.contentRect()
	switch r.st.Main.TextAlign {
	case text.Middle:
		r.label.SetX(content.Min.X + (content.Dx()-r.label.Width())/2)
	case text.End:
		r.label.SetX(content.Min.X + content.Dx() - r.label.Width())
	default:
		r.label.SetX(content.Min.X)
	}

	dur := r.st.Main.AnimDuration
	if !animate || dur == 0 {
		// Without an animation there is no completion callback to
		// renormalize, so do it now.
		r.infNormalize()
		r.eng.Cancel(r.label, "y")
		r.label.SetY(r.targetY())
		return
	}
	r.eng.Start(anim.Anim{
		Target:   r.label,
		Tag:      "y",
		From:     r.label.Y(),
		To:       r.targetY(),
		Duration: dur,
		Path:     anim.EaseOut,
		Exec:     func(v int) { r.label.SetY(v) },
		Ready:    r.infNormalize,
	})
}

// infNormalize parks the selection on the middle replica page and
// snaps the label to match. All pages render identical text, so the
// jump is invisible.
func (r *Roller) infNormalize() {
	if r.mode != ModeInfinite {
		return
	}
	real := r.optCnt / InfinitePages
	r.selIdx = r.selIdx%real + (InfinitePages/2)*real
	r.selIdxOri = r.selIdxOri%real + (InfinitePages/2)*real
	r.label.SetY(r.targetY())
}

// targetY is the label top that centers the selected option in the
// band.
func (r *Roller) targetY() int {
	content := r.contentRect()
	fontH := r.st.Main.Face.LineHeight()
	selY := r.selIdx * (fontH + r.st.Main.LineSpacing)
	midY := content.Dy()/2 - fontH/2
	return content.Min.Y + midY - selY
}

func (r *Roller) bandRect() image.Rectangle {
	fontH := r.st.Main.Face.LineHeight()
	lineSpace := r.st.Main.LineSpacing
	y := r.Coords.Min.Y + (r.Height()-fontH-lineSpace)/2
	return image.Rect(r.Coords.Min.X, y, r.Coords.Max.X, y+fontH+lineSpace)
}

func (r *Roller) contentRect() image.Rectangle {
	return image.Rect(
		r.Coords.Min.X+r.st.Main.Pad.Left,
		r.Coords.Min.Y+r.st.Main.Pad.Top,
		r.Coords.Max.X-r.st.Main.Pad.Right,
		r.Coords.Max.Y-r.st.Main.Pad.Bottom,
	)
}

// refreshSize fits the widget width to the option text.
func (r *Roller) refreshSize() {
	w := r.label.Width() + r.st.Main.Pad.Horizontal()
	old := r.Coords.Size()
	r.Coords.Max.X = r.Coords.Min.X + w
	if r.Coords.Size() != old {
		r.Emit(&Event{Kind: EventSizeChanged, Rect: r.Coords})
	}
}

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeInfinite:
		return "Infinite"
	default:
		panic("invalid Mode")
	}
}
