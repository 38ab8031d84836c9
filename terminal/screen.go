// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// LineProperty selects one of the line-width/height attributes a Screen
// may track per row (§6 setLineProperty).
type LineProperty int

const (
	LineDoubleWidth LineProperty = iota
	LineDoubleHeightTop
	LineDoubleHeightBottom
)

// Screen is the only surface the core mutates when interpreting a
// dispatched token (§6: "the Screen is abstract; the contract, not the
// implementation, is part of this spec"). Line/cell storage, scrollback
// retention, and rendering all live on the other side of this interface;
// Framebuffer is this repo's own default implementation, not part of the
// contract.
type Screen interface {
	// cursor motion
	CursorUp(n int)
	CursorDown(n int)
	CursorLeft(n int)
	CursorRight(n int)
	SetCursorX(x int)
	SetCursorY(y int)
	SetCursorYX(y, x int)
	Index()
	ReverseIndex()
	NextLine()
	ToStartOfLine()

	// character insertion
	DisplayCharacter(r rune)
	Backspace()
	Tab(n int)
	Backtab(n int)
	NewLine()
	InsertChars(n int)
	InsertLines(n int)
	DeleteChars(n int)
	DeleteLines(n int)
	EraseChars(n int)
	RepeatChars(n int)

	// clearing
	ClearToEndOfLine()
	ClearToEndOfScreen()
	ClearToBeginOfLine()
	ClearToBeginOfScreen()
	ClearEntireLine()
	ClearEntireScreen()

	// scrolling
	ScrollUp(n int)
	ScrollDown(n int)

	// margins and tabs
	SetMargins(top, bottom int)
	SetDefaultMargins()
	ChangeTabStop(set bool)
	ClearTabStops()

	// rendition
	SetRendition(attr charAttribute)
	ResetRendition(attr charAttribute)
	SetDefaultRendition()
	SetForeColor(space ColorSpace, value int)
	SetBackColor(space ColorSpace, value int)

	// line properties
	SetLineProperty(kind LineProperty, value bool)

	// hyperlinks (§4.8 OSC 8); SetHyperlink("", "") closes the active link
	SetHyperlink(uri, params string)

	// state
	SaveCursor()
	RestoreCursor()
	SetMode(m Mode, value bool)
	GetMode(m Mode) bool
	SetImageSize(rows, cols int)
	HelpAlign()

	// read-back needed by the Device Reporter (§4.7) and checksum path;
	// not part of the original C++ Screen contract's write surface but
	// required for the core to synthesize CPR/DECRQCRA without reaching
	// into Screen internals.
	CursorPosition() (row, col int)
	Size() (rows, cols int)
	Checksum(r Rect) uint16
}

// ColorSpace distinguishes how SetForeColor/SetBackColor's value argument
// is to be interpreted (§4.2 SGR sub-sequence handling).
type ColorSpace int

const (
	ColorSpaceDefault ColorSpace = iota
	ColorSpaceIndexed
	ColorSpaceRGB
	ColorSpace256
)
