// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/wqhelper/vtcore/terminal"
	"github.com/wqhelper/vtcore/util"
)

// demoHost implements terminal.Host by writing outbound bytes back to the
// PTY the child shell is attached to, and logging every other event
// through util.Logger so --verbose shows the wiring is actually live.
type demoHost struct {
	ptmx    *os.File
	verbose int

	linkURI string
	linkBuf []byte
}

func (h *demoHost) SendData(b []byte) {
	h.ptmx.Write(b)
}

func (h *demoHost) Bell() {
	util.Logger.Debug("bell")
}

func (h *demoHost) ImageResizeRequest(cols, rows int) {
	util.Logger.Info("program requested resize", "cols", cols, "rows", rows)
}

func (h *demoHost) SetCursorStyleRequest(shape terminal.CursorStyle, blink bool) {
	util.Logger.Debug("cursor style request", "shape", shape, "blink", blink)
}

func (h *demoHost) ResetCursorStyleRequest() {
	util.Logger.Debug("cursor style reset")
}

func (h *demoHost) ProgramRequestsMouseTracking(enabled bool) {
	util.Logger.Debug("mouse tracking changed", "enabled", enabled)
}

func (h *demoHost) ProgramBracketedPasteModeChanged(enabled bool) {
	util.Logger.Debug("bracketed paste changed", "enabled", enabled)
}

func (h *demoHost) EnableAlternateScrolling(enabled bool) {
	util.Logger.Debug("alternate scrolling changed", "enabled", enabled)
}

func (h *demoHost) AlternateScreenChanged(enabled bool) {
	util.Logger.Debug("alternate screen changed", "enabled", enabled)
}

func (h *demoHost) SessionAttributeChanged(id int, text string) {
	if id == 2 { // xterm window-title convention
		util.Logger.Info("window title", "title", text)
	}
}

func (h *demoHost) SessionAttributeRequest(id int, terminator rune) {
	util.Logger.Debug("session attribute query", "id", id)
}

func (h *demoHost) FlowControlKeyPressed(enabled bool) {
	util.Logger.Debug("flow control key", "enabled", enabled)
}

func (h *demoHost) HyperlinkBegin(uri string) {
	h.linkURI = uri
	h.linkBuf = h.linkBuf[:0]
}

func (h *demoHost) HyperlinkChar(r rune) {
	h.linkBuf = append(h.linkBuf, []byte(string(r))...)
}

func (h *demoHost) HyperlinkEnd() {
	if h.linkURI != "" {
		util.Logger.Info("hyperlink", "uri", h.linkURI, "text", string(h.linkBuf))
	}
	h.linkURI = ""
	h.linkBuf = h.linkBuf[:0]
}
