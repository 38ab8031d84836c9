/*

MIT License

Copyright (c) 2022 wangqi

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

package terminal

// Row is one screen line: a fixed-width slice of Cells plus the autowrap
// continuation flag the next line's first character needs to check (set
// when DisplayCharacter at the last column wraps instead of overwriting).
type Row struct {
	cells []Cell
	wrap  bool

	doubleWidth        bool
	doubleHeightTop    bool
	doubleHeightBottom bool
}

func NewRow(width int, blank Renditions) *Row {
	r := &Row{cells: make([]Cell, width)}
	for i := range r.cells {
		r.cells[i] = blankCell(blank)
	}
	return r
}

func (r *Row) Width() int { return len(r.cells) }

func (r *Row) At(col int) *Cell {
	if col < 0 || col >= len(r.cells) {
		return nil
	}
	return &r.cells[col]
}

func (r *Row) Reset(blank Renditions) {
	for i := range r.cells {
		r.cells[i].Reset(blank)
	}
	r.wrap = false
}

// InsertCells opens a gap of n blank cells starting at col, shifting
// existing cells right and dropping whatever falls off the right edge —
// the row-local primitive behind Screen.InsertChars.
func (r *Row) InsertCells(col, n int, blank Renditions) {
	width := len(r.cells)
	if col < 0 || col >= width || n <= 0 {
		return
	}
	if n > width-col {
		n = width - col
	}
	copy(r.cells[col+n:width], r.cells[col:width-n])
	for i := col; i < col+n; i++ {
		r.cells[i].Reset(blank)
	}
}

// DeleteCells removes n cells starting at col, shifting the remainder
// left and filling the vacated tail with blanks.
func (r *Row) DeleteCells(col, n int, blank Renditions) {
	width := len(r.cells)
	if col < 0 || col >= width || n <= 0 {
		return
	}
	if n > width-col {
		n = width - col
	}
	copy(r.cells[col:width-n], r.cells[col+n:width])
	for i := width - n; i < width; i++ {
		r.cells[i].Reset(blank)
	}
}

func (r *Row) Resize(width int, blank Renditions) {
	if width == len(r.cells) {
		return
	}
	cells := make([]Cell, width)
	for i := range cells {
		cells[i] = blankCell(blank)
	}
	copy(cells, r.cells)
	r.cells = cells
}

// tabStops is the per-screen tab-stop bitmap, grounded on aprilsh's
// DrawState.tabs/reinitializeTabs (the draw-state split of row.go): a
// plain []bool with every eighth column set by default, and independent
// set/clear/next-tab operations so Screen.ChangeTabStop and the
// Framebuffer's Tab/Backtab handling share the same representation.
type tabStops struct {
	stops []bool
}

func newTabStops(width int) *tabStops {
	ts := &tabStops{stops: make([]bool, width)}
	ts.resetDefaults()
	return ts
}

func (ts *tabStops) resetDefaults() {
	for i := range ts.stops {
		ts.stops[i] = i%8 == 0
	}
}

func (ts *tabStops) resize(width int) {
	stops := make([]bool, width)
	copy(stops, ts.stops)
	ts.stops = stops
}

func (ts *tabStops) set(col int) {
	if col >= 0 && col < len(ts.stops) {
		ts.stops[col] = true
	}
}

func (ts *tabStops) clear(col int) {
	if col >= 0 && col < len(ts.stops) {
		ts.stops[col] = false
	}
}

func (ts *tabStops) clearAll() {
	for i := range ts.stops {
		ts.stops[i] = false
	}
}

// nextTab returns the column of the n-th tab stop to the right of col,
// or the last column if none remain.
func (ts *tabStops) nextTab(col, n int) int {
	i := col + 1
	for ; i < len(ts.stops); i++ {
		if ts.stops[i] {
			n--
			if n == 0 {
				return i
			}
		}
	}
	return len(ts.stops) - 1
}

// prevTab returns the column of the n-th tab stop to the left of col, or
// 0 if none remain.
func (ts *tabStops) prevTab(col, n int) int {
	i := col - 1
	for ; i > 0; i-- {
		if ts.stops[i] {
			n--
			if n == 0 {
				return i
			}
		}
	}
	return 0
}
