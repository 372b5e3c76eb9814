// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"fmt"
	"image"
	"log"

	"embedui.org/draw"
	"embedui.org/io/input"
	"embedui.org/style"
	"embedui.org/text"
	"embedui.org/unit"
)

// CellFormat holds the per-cell format flags.
type CellFormat struct {
	// Crop disables height auto-fit. The text is laid out as a
	// single line and clipped to the row height.
	Crop bool
	// MergeRight extends the cell's rectangle into the next column,
	// which is not drawn independently.
	MergeRight bool
}

type cell struct {
	format CellFormat
	txt    string
}

// defaultColWidth is the width given to newly created columns.
var defaultColWidth = unit.Dp(unit.DefaultDPI)

// Table is a 2D grid of text cells with per-column widths and derived
// per-row heights.
//
// The grid starts at 1x1. Write operations referencing rows or
// columns beyond the current counts grow the grid; read operations
// never do.
type Table struct {
	Obj
	st style.Style

	colCnt int
	rowCnt int
	colW   []int
	rowH   []int
	// cells is indexed row*colCnt+col. A nil entry is an unset
	// cell.
	cells []*cell
}

// NewTable returns a 1x1 table styled with st.
func NewTable(st style.Style) *Table {
	t := &Table{
		st:     st,
		colCnt: 1,
		rowCnt: 1,
		colW:   []int{st.Px(defaultColWidth)},
		rowH:   []int{0},
		cells:  make([]*cell, 1),
	}
	t.refreshSize()
	return t
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return t.colCnt
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.rowCnt
}

// SetColumnCount resizes the grid to n columns. Surviving (row, col)
// pairs keep their cells; new columns get the default width. The
// whole grid is rebuilt and committed at once.
func (t *Table) SetColumnCount(n int) {
	if n < 1 {
		log.Printf("table: invalid column count %d", n)
		return
	}
	if n == t.colCnt {
		return
	}
	colW := make([]int, n)
	copy(colW, t.colW)
	for i := t.colCnt; i < n; i++ {
		colW[i] = t.st.Px(defaultColWidth)
	}
	cells := make([]*cell, t.rowCnt*n)
	keep := t.colCnt
	if n < keep {
		keep = n
	}
	for row := 0; row < t.rowCnt; row++ {
		for col := 0; col < keep; col++ {
			cells[row*n+col] = t.cells[row*t.colCnt+col]
		}
	}
	t.colW = colW
	t.cells = cells
	t.colCnt = n
	t.refreshSize()
}

// SetRowCount resizes the grid to n rows. Row-major addressing is
// unaffected, so no cell remap is needed.
func (t *Table) SetRowCount(n int) {
	if n < 1 {
		log.Printf("table: invalid row count %d", n)
		return
	}
	if n == t.rowCnt {
		return
	}
	rowH := make([]int, n)
	copy(rowH, t.rowH)
	cells := make([]*cell, n*t.colCnt)
	copy(cells, t.cells)
	t.rowH = rowH
	t.cells = cells
	t.rowCnt = n
	t.refreshSize()
}

// SetCell sets the text of (row, col), growing the grid as needed.
// Columns grow before rows; column growth changes the flat-index
// stride the row extension depends on. Existing format flags are
// preserved.
func (t *Table) SetCell(row, col int, txt string) {
	if row < 0 || col < 0 {
		log.Printf("table: cell (%d,%d) out of range %dx%d", row, col, t.rowCnt, t.colCnt)
		return
	}
	if col >= t.colCnt {
		t.SetColumnCount(col + 1)
	}
	if row >= t.rowCnt {
		t.SetRowCount(row + 1)
	}
	c := t.cells[row*t.colCnt+col]
	if c == nil {
		c = &cell{}
		t.cells[row*t.colCnt+col] = c
	}
	c.txt = txt
	t.refreshSize()
}

// SetCellf formats according to a format specifier and sets the
// result as the text of (row, col), growing the grid like SetCell.
func (t *Table) SetCellf(row, col int, format string, args ...any) {
	t.SetCell(row, col, fmt.Sprintf(format, args...))
}

// Cell returns the text of (row, col). It reports false and logs a
// warning when the indices are out of range; unset in-range cells
// read as empty.
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= t.rowCnt || col < 0 || col >= t.colCnt {
		log.Printf("table: cell (%d,%d) out of range %dx%d", row, col, t.rowCnt, t.colCnt)
		return "", false
	}
	c := t.cells[row*t.colCnt+col]
	if c == nil {
		return "", true
	}
	return c.txt, true
}

// SetCellCrop sets the crop flag of (row, col), growing the grid as
// needed. An unset cell is materialized empty so the flag can be
// recorded without text.
func (t *Table) SetCellCrop(row, col int, crop bool) {
	c := t.materialize(row, col)
	if c == nil {
		return
	}
	c.format.Crop = crop
}

// CellCrop returns the crop flag of (row, col). Unset in-range cells
// read as false.
func (t *Table) CellCrop(row, col int) (bool, bool) {
	if row < 0 || row >= t.rowCnt || col < 0 || col >= t.colCnt {
		log.Printf("table: cell (%d,%d) out of range %dx%d", row, col, t.rowCnt, t.colCnt)
		return false, false
	}
	c := t.cells[row*t.colCnt+col]
	if c == nil {
		return false, true
	}
	return c.format.Crop, true
}

// SetCellMergeRight sets the merge-right flag of (row, col), growing
// the grid as needed. Merging changes the effective text width of the
// run, so row heights are recomputed.
func (t *Table) SetCellMergeRight(row, col int, merge bool) {
	c := t.materialize(row, col)
	if c == nil {
		return
	}
	c.format.MergeRight = merge
	t.refreshSize()
}

// CellMergeRight returns the merge-right flag of (row, col).
func (t *Table) CellMergeRight(row, col int) (bool, bool) {
	if row < 0 || row >= t.rowCnt || col < 0 || col >= t.colCnt {
		log.Printf("table: cell (%d,%d) out of range %dx%d", row, col, t.rowCnt, t.colCnt)
		return false, false
	}
	c := t.cells[row*t.colCnt+col]
	if c == nil {
		return false, true
	}
	return c.format.MergeRight, true
}

// SetColumnWidth sets the width of col in pixels, growing the column
// count as needed.
func (t *Table) SetColumnWidth(col, w int) {
	if col < 0 {
		log.Printf("table: column %d out of range %d", col, t.colCnt)
		return
	}
	if col >= t.colCnt {
		t.SetColumnCount(col + 1)
	}
	t.colW[col] = w
	t.refreshSize()
}

// ColumnWidth returns the width of col in pixels.
func (t *Table) ColumnWidth(col int) (int, bool) {
	if col < 0 || col >= t.colCnt {
		log.Printf("table: column %d out of range %d", col, t.colCnt)
		return 0, false
	}
	return t.colW[col], true
}

// RowHeight returns the derived height of row in pixels.
func (t *Table) RowHeight(row int) (int, bool) {
	if row < 0 || row >= t.rowCnt {
		log.Printf("table: row %d out of range %d", row, t.rowCnt)
		return 0, false
	}
	return t.rowH[row], true
}

// PressedCell maps the device's last point to the cell under it. It
// reports (-1, -1, false) when dev cannot report screen positions.
// Points beyond the grid edge clamp to the last row or column.
func (t *Table) PressedCell(dev input.Device) (row, col int, ok bool) {
	if dev == nil || (dev.Kind() != input.KindPointer && dev.Kind() != input.KindButton) {
		return -1, -1, false
	}
	rel := dev.Point().Sub(t.Coords.Min)
	rel.X -= t.st.Main.Pad.Left - t.Scroll.X
	rel.Y -= t.st.Main.Pad.Top - t.Scroll.Y
	if t.Dir == text.RTL {
		rel.X = t.gridWidth() - 1 - rel.X
	}
	col = t.colCnt - 1
	for i, edge := 0, 0; i < t.colCnt; i++ {
		edge += t.colW[i]
		if rel.X < edge {
			col = i
			break
		}
	}
	row = t.rowCnt - 1
	for i, edge := 0, 0; i < t.rowCnt; i++ {
		edge += t.rowH[i]
		if rel.Y < edge {
			row = i
			break
		}
	}
	return row, col, true
}

// Draw implements Widget.
func (t *Table) Draw(clip image.Rectangle, mode DrawMode, c draw.Canvas) DrawRes {
	switch mode {
	case CoverCheck:
		return t.DrawBase(clip, mode, c, &t.st.Main)
	case MainDraw:
		t.DrawBase(clip, mode, c, &t.st.Main)
		t.drawCells(clip, c)
	}
	return DrawOK
}

func (t *Table) drawCells(clip image.Rectangle, c draw.Canvas) {
	origin := t.Coords.Min.Add(image.Point{
		X: t.st.Main.Pad.Left,
		Y: t.st.Main.Pad.Top,
	}).Sub(t.Scroll)
	gridW := t.gridWidth()
	bw := t.st.Items.Border.Width
	sides := t.st.Items.Border.Sides

	y := origin.Y
	for row := 0; row < t.rowCnt; row++ {
		h := t.rowH[row]
		// Rows stack monotonically; everything below the clip
		// stays below it.
		if y > clip.Max.Y {
			break
		}
		if y+h < clip.Min.Y {
			y += h
			continue
		}
		x := 0
		for col := 0; col < t.colCnt; {
			idx := row*t.colCnt + col
			cl := t.cells[idx]
			w := t.colW[col]
			merged := 0
			for m := 0; m+col < t.colCnt-1; m++ {
				mc := t.cells[idx+m]
				if mc == nil || !mc.format.MergeRight {
					break
				}
				w += t.colW[col+m+1]
				merged++
			}

			rect := image.Rect(0, y, 0, y+h)
			leftInterior := col > 0
			rightInterior := col+merged < t.colCnt-1
			if t.Dir == text.RTL {
				rect.Min.X = origin.X + gridW - (x + w)
				rect.Max.X = origin.X + gridW - x
				leftInterior, rightInterior = rightInterior, leftInterior
			} else {
				rect.Min.X = origin.X + x
				rect.Max.X = origin.X + x + w
			}
			// Halve the border on bordered interior edges so shared
			// borders coincide without double seams. Odd widths put
			// the extra pixel on the trailing edge.
			if leftInterior && sides&draw.SideLeft != 0 {
				rect.Min.X -= bw / 2
			}
			if rightInterior && sides&draw.SideRight != 0 {
				rect.Max.X += bw/2 + bw&1
			}
			if row > 0 && sides&draw.SideTop != 0 {
				rect.Min.Y -= bw / 2
			}
			if row < t.rowCnt-1 && sides&draw.SideBottom != 0 {
				rect.Max.Y += bw/2 + bw&1
			}

			t.drawCell(clip, c, idx, rect, cl)

			x += w
			col += 1 + merged
		}
		y += h
	}
}

func (t *Table) drawCell(clip image.Rectangle, c draw.Canvas, idx int, rect image.Rectangle, cl *cell) {
	part := &t.st.Items
	rs := part.RectStyle()
	ls := part.LabelStyle(text.FlagNone)
	ev := Event{
		Kind:       EventDrawPartBegin,
		Index:      idx,
		Rect:       rect,
		RectStyle:  &rs,
		LabelStyle: &ls,
	}
	t.Emit(&ev)

	c.Rect(rect, clip, &rs)

	// Unset cells are painted but carry no text.
	format := CellFormat{Crop: true}
	if cl != nil {
		format = cl.format
	}
	if cl != nil && cl.txt != "" {
		inner := image.Rect(
			rect.Min.X+part.Pad.Left,
			rect.Min.Y+part.Pad.Top,
			rect.Max.X-part.Pad.Right,
			rect.Max.Y-part.Pad.Bottom,
		)
		txtClip := clip.Intersect(rect)
		if format.Crop {
			// Single line, top aligned, clipped.
			ls.Flags = text.FlagExpand
			c.Label(inner, txtClip, &ls, cl.txt)
		} else {
			size := text.Size(part.Face, cl.txt, part.LetterSpacing, part.LineSpacing, inner.Dx(), text.FlagNone)
			off := (inner.Dy() - size.Y) / 2
			if off < 0 {
				off = 0
			}
			lr := inner
			lr.Min.Y += off
			c.Label(lr, txtClip, &ls, cl.txt)
		}
	}

	ev.Kind = EventDrawPartEnd
	t.Emit(&ev)
}

// Signal implements Widget.
func (t *Table) Signal(sig Signal) Res {
	return t.SignalBase(sig)
}

// Destroy implements Widget.
func (t *Table) Destroy() {
	t.cells = nil
	t.colW = nil
	t.rowH = nil
	t.handlers = nil
}

func (t *Table) materialize(row, col int) *cell {
	if row < 0 || col < 0 {
		log.Printf("table: cell (%d,%d) out of range %dx%d", row, col, t.rowCnt, t.colCnt)
		return nil
	}
	if col >= t.colCnt {
		t.SetColumnCount(col + 1)
	}
	if row >= t.rowCnt {
		t.SetRowCount(row + 1)
	}
	c := t.cells[row*t.colCnt+col]
	if c == nil {
		c = &cell{}
		t.cells[row*t.colCnt+col] = c
	}
	return c
}

func (t *Table) gridWidth() int {
	w := 0
	for _, cw := range t.colW {
		w += cw
	}
	return w
}

// refreshSize re-derives every row height and the widget size. Layout
// is not incremental: merges make cell heights interdependent across
// columns, so any mutation re-derives the full height table.
func (t *Table) refreshSize() {
	for row := 0; row < t.rowCnt; row++ {
		t.rowH[row] = t.rowHeight(row)
	}
	h := 0
	for _, rh := range t.rowH {
		h += rh
	}
	size := image.Point{
		X: t.gridWidth() + t.st.Main.Pad.Horizontal(),
		Y: h + t.st.Main.Pad.Vertical(),
	}
	old := t.Coords.Size()
	t.Coords.Max = t.Coords.Min.Add(size)
	if size != old {
		t.Emit(&Event{Kind: EventSizeChanged, Rect: t.Coords})
	}
}

// rowHeight derives the height of one row: the maximum over its cells
// of the wrapped text height at the cell's effective width, floored
// at one line. Cropped and unset cells contribute exactly one line.
// A merge run is measured once at the summed width and skipped over.
func (t *Table) rowHeight(row int) int {
	part := &t.st.Items
	lineH := part.Face.LineHeight()
	hMax := lineH + part.Pad.Vertical()

	for col := 0; col < t.colCnt; {
		idx := row*t.colCnt + col
		cl := t.cells[idx]
		merged := 0
		effW := t.colW[col]
		for m := 0; m+col < t.colCnt-1; m++ {
			mc := t.cells[idx+m]
			if mc == nil || !mc.format.MergeRight {
				break
			}
			effW += t.colW[col+m+1]
			merged++
		}
		if cl != nil && !cl.format.Crop && cl.txt != "" {
			maxW := effW - part.Pad.Horizontal()
			size := text.Size(part.Face, cl.txt, part.LetterSpacing, part.LineSpacing, maxW, text.FlagNone)
			h := size.Y
			if h < lineH {
				h = lineH
			}
			if h+part.Pad.Vertical() > hMax {
				hMax = h + part.Pad.Vertical()
			}
		}
		col += 1 + merged
	}
	return hMax
}
