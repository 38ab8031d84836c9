// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"fmt"
	"unicode/utf8"
)

// MouseEventType is the pointer transition kind passed to EncodeMouse (§4.6).
type MouseEventType int

const (
	MousePress MouseEventType = iota
	MouseDrag
	MouseRelease
)

// EncodeMouse implements the §4.6 priority rules for a single pointer
// event, returning nil when the event should be dropped or no tracking
// mode is active.
func (e *Emulator) EncodeMouse(cb, cx, cy int, evt MouseEventType) []byte {
	if cx < 1 || cy < 1 {
		return nil
	}

	m1000 := e.modes.Get(ModeMouse1000)
	m1001 := e.modes.Get(ModeMouse1001)
	m1002 := e.modes.Get(ModeMouse1002)
	m1003 := e.modes.Get(ModeMouse1003)
	m1006 := e.modes.Get(ModeMouse1006)

	if !m1000 && !m1001 && !m1002 && !m1003 {
		return nil
	}

	if evt == MouseDrag && m1000 && !m1002 && !m1003 {
		return nil // Mouse1000 only reports press/release
	}

	out := cb
	if evt == MouseRelease && !m1006 {
		out = 3
	}

	if out == 3 && cb >= 4 && m1002 && !m1003 {
		return nil // wheel event dropped under dragging-only tracking
	}

	if cb >= 4 {
		out += 0x3C
	}
	if evt == MouseDrag && (m1002 || m1003) {
		out += 0x20
	}

	switch {
	case m1006:
		final := byte('M')
		if evt == MouseRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1B[<%d;%d;%d%c", out, cx, cy, final))

	case e.modes.Get(ModeMouse1015):
		return []byte(fmt.Sprintf("\x1B[%d;%d;%dM", out+32, cx, cy))

	case e.modes.Get(ModeMouse1005):
		if cx > 2015 || cy > 2015 {
			return nil
		}
		buf := []byte{0x1B, '[', 'M', byte(out + 32)}
		buf = utf8.AppendRune(buf, rune(cx+32))
		buf = utf8.AppendRune(buf, rune(cy+32))
		return buf

	default: // X10
		if cx > 223 || cy > 223 {
			return nil
		}
		return []byte{0x1B, '[', 'M', byte(out + 32), byte(cx + 32), byte(cy + 32)}
	}
}

// EncodeFocus implements §4.6's focus-event report, gated by the
// independently-tracked ReportFocusEvents mode (SPEC_FULL §12.5).
func (e *Emulator) EncodeFocus(gained bool) []byte {
	if !e.modes.Get(ModeReportFocusEvents) {
		return nil
	}
	if gained {
		return []byte("\x1B[I")
	}
	return []byte("\x1B[O")
}
