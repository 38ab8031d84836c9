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

// Package terminal's Framebuffer is the repo's own default
// implementation of the Screen interface (§6). The contract explicitly
// keeps scrollback storage and its eviction policy external to the core
// (§1), so unlike aprilsh's own Framebuffer (which folds a scrollback
// ring into the same flat cell array as the view), this one only ever
// holds exactly nRows live Rows — a host wanting scrollback composes its
// own Screen that retains evicted rows before they reach here.
package terminal

import "github.com/rivo/uniseg"

// Cursor carries the default implementation's cursor style; the cursor
// position lives in Framebuffer.cursorX/cursorY, and the core itself only
// ever asks Screen for CursorPosition().
type Cursor struct {
	style CursorStyle
}

type Framebuffer struct {
	nRows, nCols int
	rows         []*Row

	cursorX, cursorY int
	marginTop        int // 0-based, inclusive
	marginBottom     int // 0-based, inclusive

	tabs *tabStops

	rendition Renditions

	savedX, savedY int
	savedRend      Renditions
	savedOrigin    bool

	originMode    bool
	insertMode    bool
	autoWrapMode  bool
	cursorVisible bool
	reverseVideo  bool
	newLineMode   bool

	cursor Cursor

	iconName    string
	windowTitle string
	bellCount   int

	links       *hyperlinkTable
	currentLink int
}

func NewFramebuffer(nCols, nRows int) *Framebuffer {
	fb := &Framebuffer{
		nCols:         nCols,
		nRows:         nRows,
		marginTop:     0,
		marginBottom:  nRows - 1,
		autoWrapMode:  true,
		cursorVisible: true,
		cursor:        Cursor{style: CursorStyleBlock},
		links:         newHyperlinkTable(),
		currentLink:   noLinkIndex,
	}
	fb.rows = make([]*Row, nRows)
	for i := range fb.rows {
		fb.rows[i] = NewRow(nCols, fb.rendition)
	}
	fb.tabs = newTabStops(nCols)
	return fb
}

// SetHyperlink implements the Screen contract's OSC 8 hook: subsequent
// DisplayCharacter calls tag each written Cell with the active link index.
func (fb *Framebuffer) SetHyperlink(uri, params string) {
	fb.currentLink = fb.links.intern(uri, params)
}

func (fb *Framebuffer) row(y int) *Row {
	if y < 0 {
		y = 0
	}
	if y >= fb.nRows {
		y = fb.nRows - 1
	}
	return fb.rows[y]
}

func (fb *Framebuffer) limitTop() int {
	if fb.originMode {
		return fb.marginTop
	}
	return 0
}

func (fb *Framebuffer) limitBottom() int {
	if fb.originMode {
		return fb.marginBottom
	}
	return fb.nRows - 1
}

func (fb *Framebuffer) clampCursor() {
	if fb.cursorY < fb.limitTop() {
		fb.cursorY = fb.limitTop()
	}
	if fb.cursorY > fb.limitBottom() {
		fb.cursorY = fb.limitBottom()
	}
	if fb.cursorX < 0 {
		fb.cursorX = 0
	}
	if fb.cursorX >= fb.nCols {
		fb.cursorX = fb.nCols - 1
	}
}

// ---- cursor motion ----

func (fb *Framebuffer) CursorUp(n int) {
	fb.cursorY -= n
	fb.clampCursor()
}

func (fb *Framebuffer) CursorDown(n int) {
	fb.cursorY += n
	fb.clampCursor()
}

func (fb *Framebuffer) CursorLeft(n int) {
	fb.cursorX -= n
	fb.clampCursor()
}

func (fb *Framebuffer) CursorRight(n int) {
	fb.cursorX += n
	fb.clampCursor()
}

func (fb *Framebuffer) SetCursorX(x int) {
	fb.cursorX = x
	fb.clampCursor()
}

func (fb *Framebuffer) SetCursorY(y int) {
	fb.cursorY = y + fb.limitTop()
	fb.clampCursor()
}

func (fb *Framebuffer) SetCursorYX(y, x int) {
	fb.cursorY = y + fb.limitTop()
	fb.cursorX = x
	fb.clampCursor()
}

// Index moves the cursor down one row, scrolling the margin region up
// when already at the bottom margin (§6 index).
func (fb *Framebuffer) Index() {
	if fb.cursorY == fb.marginBottom {
		fb.ScrollUp(1)
		return
	}
	fb.cursorY++
	fb.clampCursor()
}

// ReverseIndex moves the cursor up one row, scrolling down at the top margin.
func (fb *Framebuffer) ReverseIndex() {
	if fb.cursorY == fb.marginTop {
		fb.ScrollDown(1)
		return
	}
	fb.cursorY--
	fb.clampCursor()
}

func (fb *Framebuffer) NextLine() {
	fb.ToStartOfLine()
	fb.Index()
}

func (fb *Framebuffer) ToStartOfLine() {
	fb.cursorX = 0
}

// ---- character insertion ----

// DisplayCharacter measures r's display width with uniseg (East Asian
// wide characters take two columns, combining marks take none) before
// writing it, so the Checksum/cursor-accounting path always reflects
// what a real terminal would actually occupy rather than one rune per
// column.
func (fb *Framebuffer) DisplayCharacter(r rune) {
	width := uniseg.StringWidth(string(r))
	if width == 0 {
		// a combining mark attaches to the cell behind the cursor rather
		// than occupying one of its own.
		if prev := fb.row(fb.cursorY).At(fb.cursorX - 1); prev != nil {
			prev.AddCombining(r)
		}
		return
	}

	row := fb.row(fb.cursorY)
	if fb.cursorX >= fb.nCols || (width == 2 && fb.cursorX == fb.nCols-1) {
		if fb.autoWrapMode {
			row.wrap = true
			fb.NextLine()
			row = fb.row(fb.cursorY)
			fb.cursorX = 0
		} else {
			fb.cursorX = fb.nCols - 1
		}
	}
	if fb.insertMode {
		row.InsertCells(fb.cursorX, width, fb.rendition)
	}
	wide := width == 2
	if c := row.At(fb.cursorX); c != nil {
		c.SetChar(r, wide)
		c.SetRenditions(fb.rendition)
		c.SetLink(fb.currentLink)
	}
	if wide {
		// the overlapped cell holds no character of its own; blank it so
		// a later column-addressed write doesn't find stale content.
		if next := row.At(fb.cursorX + 1); next != nil {
			next.Reset(fb.rendition)
		}
	}
	fb.cursorX += width
}

func (fb *Framebuffer) Backspace() {
	if fb.cursorX > 0 {
		fb.cursorX--
	}
}

func (fb *Framebuffer) Tab(n int) {
	if n <= 0 {
		n = 1
	}
	fb.cursorX = fb.tabs.nextTab(fb.cursorX, n)
}

func (fb *Framebuffer) Backtab(n int) {
	if n <= 0 {
		n = 1
	}
	fb.cursorX = fb.tabs.prevTab(fb.cursorX, n)
}

func (fb *Framebuffer) NewLine() {
	fb.Index()
}

func (fb *Framebuffer) InsertChars(n int) {
	fb.row(fb.cursorY).InsertCells(fb.cursorX, n, fb.rendition)
}

func (fb *Framebuffer) InsertLines(n int) {
	if fb.cursorY < fb.marginTop || fb.cursorY > fb.marginBottom {
		return
	}
	fb.scrollRegion(fb.cursorY, fb.marginBottom, n)
}

func (fb *Framebuffer) DeleteChars(n int) {
	fb.row(fb.cursorY).DeleteCells(fb.cursorX, n, fb.rendition)
}

func (fb *Framebuffer) DeleteLines(n int) {
	if fb.cursorY < fb.marginTop || fb.cursorY > fb.marginBottom {
		return
	}
	fb.scrollRegion(fb.cursorY, fb.marginBottom, -n)
}

func (fb *Framebuffer) EraseChars(n int) {
	row := fb.row(fb.cursorY)
	end := fb.cursorX + n
	if end > fb.nCols {
		end = fb.nCols
	}
	for i := fb.cursorX; i < end; i++ {
		if c := row.At(i); c != nil {
			c.Reset(fb.rendition)
		}
	}
}

func (fb *Framebuffer) RepeatChars(n int) {
	row := fb.row(fb.cursorY)
	if fb.cursorX == 0 {
		return
	}
	prev := *row.At(fb.cursorX - 1)
	for i := 0; i < n; i++ {
		fb.DisplayCharacter(prev.Rune())
	}
}

// ---- clearing ----

func (fb *Framebuffer) ClearToEndOfLine() {
	row := fb.row(fb.cursorY)
	for i := fb.cursorX; i < row.Width(); i++ {
		row.At(i).Reset(fb.rendition)
	}
}

func (fb *Framebuffer) ClearToEndOfScreen() {
	fb.ClearToEndOfLine()
	for y := fb.cursorY + 1; y < fb.nRows; y++ {
		fb.rows[y].Reset(fb.rendition)
	}
}

func (fb *Framebuffer) ClearToBeginOfLine() {
	row := fb.row(fb.cursorY)
	for i := 0; i <= fb.cursorX && i < row.Width(); i++ {
		row.At(i).Reset(fb.rendition)
	}
}

func (fb *Framebuffer) ClearToBeginOfScreen() {
	fb.ClearToBeginOfLine()
	for y := 0; y < fb.cursorY; y++ {
		fb.rows[y].Reset(fb.rendition)
	}
}

func (fb *Framebuffer) ClearEntireLine() {
	fb.row(fb.cursorY).Reset(fb.rendition)
}

func (fb *Framebuffer) ClearEntireScreen() {
	for _, row := range fb.rows {
		row.Reset(fb.rendition)
	}
}

// ---- scrolling ----

func (fb *Framebuffer) ScrollUp(n int) {
	fb.scrollRegion(fb.marginTop, fb.marginBottom, n)
}

func (fb *Framebuffer) ScrollDown(n int) {
	fb.scrollRegion(fb.marginTop, fb.marginBottom, -n)
}

// scrollRegion shifts rows [top,bottom] by n (positive scrolls content
// up/lines in at the bottom, negative scrolls down/lines in at the top),
// shared by ScrollUp/Down and InsertLines/DeleteLines since both are the
// same row-rotation primitive over a sub-region.
func (fb *Framebuffer) scrollRegion(top, bottom, n int) {
	if top < 0 {
		top = 0
	}
	if bottom >= fb.nRows {
		bottom = fb.nRows - 1
	}
	if top > bottom || n == 0 {
		return
	}
	height := bottom - top + 1
	if n > height {
		n = height
	}
	if n < -height {
		n = -height
	}
	region := fb.rows[top : bottom+1]
	if n > 0 {
		fresh := make([]*Row, n)
		for i := range fresh {
			fresh[i] = NewRow(fb.nCols, fb.rendition)
		}
		copy(region, region[n:])
		copy(region[height-n:], fresh)
	} else {
		n = -n
		fresh := make([]*Row, n)
		for i := range fresh {
			fresh[i] = NewRow(fb.nCols, fb.rendition)
		}
		copy(region[n:], region[:height-n])
		copy(region[:n], fresh)
	}
}

// ---- margins and tabs ----

func (fb *Framebuffer) SetMargins(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= fb.nRows {
		bottom = fb.nRows - 1
	}
	if bottom-top < 1 {
		return // real rule requires a two-line scrolling region
	}
	fb.marginTop = top
	fb.marginBottom = bottom
}

func (fb *Framebuffer) SetDefaultMargins() {
	fb.marginTop = 0
	fb.marginBottom = fb.nRows - 1
}

func (fb *Framebuffer) ChangeTabStop(set bool) {
	if set {
		fb.tabs.set(fb.cursorX)
	} else {
		fb.tabs.clear(fb.cursorX)
	}
}

func (fb *Framebuffer) ClearTabStops() {
	fb.tabs.clearAll()
}

// ---- rendition ----

func (fb *Framebuffer) SetRendition(attr charAttribute) {
	fb.rendition.SetAttributes(attr, true)
}

func (fb *Framebuffer) ResetRendition(attr charAttribute) {
	fb.rendition.SetAttributes(attr, false)
}

func (fb *Framebuffer) SetDefaultRendition() {
	fb.rendition = Renditions{}
}

func (fb *Framebuffer) SetForeColor(space ColorSpace, value int) {
	switch space {
	case ColorSpaceIndexed:
		fb.rendition.SetForegroundColor(value)
	case ColorSpaceRGB:
		r, g, b := (value>>16)&0xff, (value>>8)&0xff, value&0xff
		fb.rendition.SetFgColor(r, g, b)
	case ColorSpace256:
		fb.rendition.setAnsiForeground(PaletteColor(value))
	default:
		fb.rendition.setAnsiForeground(ColorDefault)
	}
}

func (fb *Framebuffer) SetBackColor(space ColorSpace, value int) {
	switch space {
	case ColorSpaceIndexed:
		fb.rendition.SetBackgroundColor(value)
	case ColorSpaceRGB:
		r, g, b := (value>>16)&0xff, (value>>8)&0xff, value&0xff
		fb.rendition.SetBgColor(r, g, b)
	case ColorSpace256:
		fb.rendition.setAnsiBackground(PaletteColor(value))
	default:
		fb.rendition.setAnsiBackground(ColorDefault)
	}
}

// ---- line properties ----

func (fb *Framebuffer) SetLineProperty(kind LineProperty, value bool) {
	row := fb.row(fb.cursorY)
	switch kind {
	case LineDoubleWidth:
		row.doubleWidth = value
	case LineDoubleHeightTop:
		row.doubleHeightTop = value
	case LineDoubleHeightBottom:
		row.doubleHeightBottom = value
	}
}

// ---- state ----

func (fb *Framebuffer) SaveCursor() {
	fb.savedX, fb.savedY = fb.cursorX, fb.cursorY
	fb.savedRend = fb.rendition
	fb.savedOrigin = fb.originMode
}

func (fb *Framebuffer) RestoreCursor() {
	fb.cursorX, fb.cursorY = fb.savedX, fb.savedY
	fb.rendition = fb.savedRend
	fb.originMode = fb.savedOrigin
	fb.clampCursor()
}

func (fb *Framebuffer) SetMode(m Mode, value bool) {
	switch m {
	case ModeCursor:
		fb.cursorVisible = value
	case ModeInsert:
		fb.insertMode = value
	case ModeOrigin:
		fb.originMode = value
		fb.clampCursor()
	case ModeWrap:
		fb.autoWrapMode = value
	case ModeReverseVideo:
		fb.reverseVideo = value
	case ModeNewLine:
		// carried only for save/restore symmetry (§4.3); the core itself
		// decides whether CR alone or CR+LF is emitted on input.
		fb.newLineMode = value
	}
}

func (fb *Framebuffer) GetMode(m Mode) bool {
	switch m {
	case ModeCursor:
		return fb.cursorVisible
	case ModeInsert:
		return fb.insertMode
	case ModeOrigin:
		return fb.originMode
	case ModeWrap:
		return fb.autoWrapMode
	case ModeReverseVideo:
		return fb.reverseVideo
	case ModeNewLine:
		return fb.newLineMode
	default:
		return false
	}
}

func (fb *Framebuffer) SetImageSize(rows, cols int) {
	fb.Resize(cols, rows)
}

func (fb *Framebuffer) HelpAlign() {
	// DECALN (§ supplemented via EscDe 8): fill the screen with 'E' at
	// default rendition, used to check screen alignment.
	def := Renditions{}
	for _, row := range fb.rows {
		for i := 0; i < row.Width(); i++ {
			c := row.At(i)
			c.SetChar('E', false)
			c.SetRenditions(def)
		}
	}
}

// Resize grows or shrinks the live screen in place. Scrollback retention
// across a resize is a host concern (§1); this default implementation
// just pads or truncates rows.
func (fb *Framebuffer) Resize(nCols, nRows int) {
	if nCols == fb.nCols && nRows == fb.nRows {
		return
	}
	if nCols != fb.nCols {
		for _, row := range fb.rows {
			row.Resize(nCols, fb.rendition)
		}
		fb.tabs.resize(nCols)
	}
	if nRows > fb.nRows {
		for i := fb.nRows; i < nRows; i++ {
			fb.rows = append(fb.rows, NewRow(nCols, fb.rendition))
		}
	} else if nRows < fb.nRows {
		fb.rows = fb.rows[:nRows]
	}
	fb.nCols, fb.nRows = nCols, nRows
	fb.marginTop = 0
	fb.marginBottom = nRows - 1
	fb.clampCursor()
}

// ---- read-back for the Device Reporter / checksum path ----

func (fb *Framebuffer) CursorPosition() (row, col int) {
	return fb.cursorY, fb.cursorX
}

func (fb *Framebuffer) Size() (rows, cols int) {
	return fb.nRows, fb.nCols
}

// Checksum implements DECRQCRA (§4.7): per cell add the character value
// (or 0x20 if Concealed), plus 0x80 Bold, 0x40 Blink, 0x20 Reverse,
// 0x10 Underline; final value is (-sum)&0xFFFF.
func (fb *Framebuffer) Checksum(r Rect) uint16 {
	var sum int
	for y := r.Top; y <= r.Bottom && y <= fb.nRows; y++ {
		row := fb.rows[y-1]
		for x := r.Left; x <= r.Right && x <= row.Width(); x++ {
			c := row.At(x - 1)
			if c == nil {
				continue
			}
			rend := c.Renditions()
			v := int(c.Rune())
			if invisible, _ := rend.GetAttributes(Invisible); invisible {
				v = 0x20
			}
			sum += v
			if bold, _ := rend.GetAttributes(Bold); bold {
				sum += 0x80
			}
			if blink, _ := rend.GetAttributes(Blink); blink {
				sum += 0x40
			}
			if inverse, _ := rend.GetAttributes(Inverse); inverse {
				sum += 0x20
			}
			if underline, _ := rend.GetAttributes(Underlined); underline {
				sum += 0x10
			}
		}
	}
	return uint16(-sum) & 0xFFFF
}

func (fb *Framebuffer) SetWindowTitle(title string) { fb.windowTitle = title }
func (fb *Framebuffer) GetWindowTitle() string       { return fb.windowTitle }
func (fb *Framebuffer) SetIconName(name string)      { fb.iconName = name }
func (fb *Framebuffer) GetIconName() string          { return fb.iconName }
func (fb *Framebuffer) RingBell()                    { fb.bellCount++ }
func (fb *Framebuffer) BellCount() int                { return fb.bellCount }
func (fb *Framebuffer) SetCursorStyle(cs CursorStyle) { fb.cursor.style = cs }
func (fb *Framebuffer) CursorStyle() CursorStyle       { return fb.cursor.style }
