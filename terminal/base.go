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

import "fmt"

// Point is a (col, row) position on the screen.
type Point struct {
	x, y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.x, p.y)
}

// Rect is a rectangular region of the screen addressed in 1-based
// (top, left, bottom, right) terms, the way DECRQCRA (§4.7) names its
// checksum region argument. NewRect bounds the rectangle to an actual
// screen of the given size.
type Rect struct {
	Top, Left, Bottom, Right int
}

// NewRect builds a rectangle from DECRQCRA's Pt;Pl;Pb;Pr parameters,
// substituting the screen bound for any zero/omitted argument the way
// the original's checksum handler treats missing parameters as "to the
// edge".
func NewRect(top, left, bottom, right, rows, cols int) Rect {
	r := Rect{Top: top, Left: left, Bottom: bottom, Right: right}
	if r.Top <= 0 {
		r.Top = 1
	}
	if r.Left <= 0 {
		r.Left = 1
	}
	if r.Bottom <= 0 || r.Bottom > rows {
		r.Bottom = rows
	}
	if r.Right <= 0 || r.Right > cols {
		r.Right = cols
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{top=%d left=%d bottom=%d right=%d}", r.Top, r.Left, r.Bottom, r.Right)
}

func (r Rect) empty() bool {
	return r.Top > r.Bottom || r.Left > r.Right
}

// Damage describes the contiguous dirty-cell range of a single row. Neither
// the core nor the default Framebuffer creates, updates or reads a Damage
// value (§1 excludes glyph rendering).
type Damage struct {
	start      int
	end        int
	totalCells int
}

func (dmg *Damage) reset() {
	dmg.start = 0
	dmg.end = 0
}

func (dmg *Damage) expose() {
	dmg.start = 0
	dmg.end = dmg.totalCells
}

func (dmg *Damage) add(start, end int) {
	if end < start {
		start = 0
		end = dmg.totalCells
	}

	if dmg.start == dmg.end {
		dmg.start = start
		dmg.end = end
	} else {
		dmg.start = minInt(dmg.start, start)
		dmg.end = maxInt(dmg.end, end)
	}
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
