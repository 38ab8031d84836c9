// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "fmt"

// reportDA1 answers ESC [ c, primary device attributes.
func (e *Emulator) reportDA1() {
	if !e.ansiMode {
		e.send("\x1B/Z")
		return
	}
	e.send("\x1B[?1;2c")
}

// reportDA2 answers ESC [ > c, secondary device attributes.
func (e *Emulator) reportDA2() {
	e.send("\x1B[>0;115;0c")
}

// reportDA3 answers ESC [ = c, tertiary device attributes.
func (e *Emulator) reportDA3() {
	e.send("\x1BP!|7E4B4445\x1B\\")
}

// reportDSR answers ESC [ 5 n, device status report.
func (e *Emulator) reportDSR() {
	e.send("\x1B[0n")
}

// reportCPR answers ESC [ 6 n with the cursor position, adjusted by the
// current top margin when Origin mode is active (§4.7).
func (e *Emulator) reportCPR() {
	row, col := e.currentScreen().CursorPosition()
	y := row + 1
	if e.currentScreen().GetMode(ModeOrigin) {
		if fb, ok := e.currentScreen().(*Framebuffer); ok {
			y -= fb.marginTop
		}
	}
	e.send(fmt.Sprintf("\x1B[%d;%dR", y, col+1))
}

// reportWindowSize answers ESC [ 18 t with the current screen size.
func (e *Emulator) reportWindowSize() {
	rows, cols := e.currentScreen().Size()
	e.send(fmt.Sprintf("\x1B[8;%d;%dt", rows, cols))
}

// reportTerminalParams answers ESC [ x. The "sol" field (solicited vs
// unsolicited) is hardcoded to 2 (unsolicited) per SPEC_FULL §12.6; a real
// negotiated value has no other producer in this core.
func (e *Emulator) reportTerminalParams() {
	const sol = 2
	e.send(fmt.Sprintf("\x1B[%d;1;1;112;112;1;0x", sol))
}

// reportChecksum answers DECRQCRA (CSI Pp ; Pt ; Pl ; Pb ; Pr * y). Gated by
// a runtime flag (SPEC_FULL §12.1, replacing the original's compile-time
// #ifdef) that is off by default: until a host opts in with
// SetDECRQCRAEnabled, the request is dropped without a reply.
func (e *Emulator) reportChecksum(pp int, args []int) {
	if !e.decrqcraEnabled {
		return
	}
	rows, cols := e.currentScreen().Size()
	var top, left, bottom, right int
	if len(args) > 0 {
		top = args[0]
	}
	if len(args) > 1 {
		left = args[1]
	}
	if len(args) > 2 {
		bottom = args[2]
	}
	if len(args) > 3 {
		right = args[3]
	}
	r := NewRect(top, left, bottom, right, rows, cols)
	if e.currentScreen().GetMode(ModeOrigin) {
		if fb, ok := e.currentScreen().(*Framebuffer); ok {
			r.Top += fb.marginTop
			r.Bottom += fb.marginTop
		}
	}
	sum := e.currentScreen().Checksum(r)
	e.send(fmt.Sprintf("\x1BP%d!~%04X\x1B\\", pp, sum))
}
