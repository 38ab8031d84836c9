// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// CursorStyle enumerates the DECSCUSR cursor shapes; the numeric values of
// the non-default styles match the CSI Ps SP q parameters 1-6, and the
// dispatcher maps Ps through CursorStyleFromParam. Framebuffer.CursorStyle
// reads the current style back.
type CursorStyle int

const (
	CursorStyleDefault CursorStyle = iota
	CursorStyleBlockBlink
	CursorStyleBlock
	CursorStyleUnderlineBlink
	CursorStyleUnderline
	CursorStyleBarBlink
	CursorStyleBar
)

func (cs CursorStyle) String() string {
	switch cs {
	case CursorStyleBlockBlink:
		return "block-blink"
	case CursorStyleBlock:
		return "block"
	case CursorStyleUnderlineBlink:
		return "underline-blink"
	case CursorStyleUnderline:
		return "underline"
	case CursorStyleBarBlink:
		return "bar-blink"
	case CursorStyleBar:
		return "bar"
	default:
		return "default"
	}
}

// CursorStyleFromParam maps a DECSCUSR Ps argument to a CursorStyle: an
// omitted (0) or 1 value gives CursorStyleBlockBlink as in xterm, and any
// unknown value gives CursorStyleBlock.
func CursorStyleFromParam(ps int) CursorStyle {
	switch ps {
	case 0, 1:
		return CursorStyleBlockBlink
	case 2:
		return CursorStyleBlock
	case 3:
		return CursorStyleUnderlineBlink
	case 4:
		return CursorStyleUnderline
	case 5:
		return CursorStyleBarBlink
	case 6:
		return CursorStyleBar
	default:
		return CursorStyleBlock
	}
}
