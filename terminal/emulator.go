// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"fmt"

	"github.com/wqhelper/vtcore/util"
)

// Host receives every discrete event and outbound byte the core produces
// (§6 "Downstream to host"). An Emulator never touches a transport or a
// renderer directly; a program embedding this package supplies Host and
// owns the PTY/GUI side of the pipeline.
type Host interface {
	SendData(b []byte)
	Bell()
	ImageResizeRequest(cols, rows int)
	SetCursorStyleRequest(shape CursorStyle, blink bool)
	ResetCursorStyleRequest()
	ProgramRequestsMouseTracking(enabled bool)
	ProgramBracketedPasteModeChanged(enabled bool)
	EnableAlternateScrolling(enabled bool)
	SessionAttributeChanged(id int, text string)
	SessionAttributeRequest(id int, terminator rune)
	FlowControlKeyPressed(enabled bool)
	// AlternateScreenChanged fires whenever the active screen flips (e.g.
	// DECSET/DECRST 1049). A host tracking a selection over the primary
	// screen's text has no way to know its coordinates stopped meaning
	// anything otherwise, since the core itself never models selection.
	AlternateScreenChanged(enabled bool)
	// HyperlinkBegin/Char/End feed a host-side URL extractor (§8 scenario
	// 5); distinct from Screen.SetHyperlink, which tags cells for a
	// renderer that draws straight from screen state instead.
	HyperlinkBegin(uri string)
	HyperlinkChar(r rune)
	HyperlinkEnd()
}

// Codec encodes outbound key text for the wire (§6: "two sentinels exist:
// Utf8Codec ... LocaleCodec"). Upstream decoding of inbound PTY bytes into
// code points happens before Feed is ever called — this core only ever
// needs the encode direction, for keyboard input.
type Codec interface {
	Encode(s string) []byte
}

type utf8Codec struct{}

func (utf8Codec) Encode(s string) []byte { return []byte(s) }

// localeCodec is a best-effort stand-in: without a negotiated locale name
// from the host there is nothing to transcode against, so it behaves like
// utf8Codec. A host that needs real 8-bit locale transcoding supplies its
// own Codec through SetCodec.
type localeCodec struct{}

func (localeCodec) Encode(s string) []byte { return []byte(s) }

// Emulator is the single owner of all terminal-core state (§3 Lifecycle):
// modes, charsets, the tokenizer, both screens, and the handful of
// ambient singletons (pending attributes, coalescing timer) the
// dispatcher reads.
type Emulator struct {
	tokenizer *Tokenizer
	modes     *ModeRegistry
	charsets  charsets
	screens   [2]*Framebuffer
	current   int
	ansiMode  bool

	savedCharsetScreen int // not written or read; ESC 7/8 save and restore the current screen's charset state only

	codec    Codec
	host     Host
	bindings BindingTable
	scroller Scroller
	readOnly bool

	pending *pendingAttributes
	timer   Timer

	decrqcraEnabled bool
	urlMode         bool
}

// NewEmulator builds an Emulator with both screens sized cols x rows,
// default modes, US-ASCII charsets, and a UTF-8 codec.
func NewEmulator(cols, rows int, host Host) *Emulator {
	e := &Emulator{
		modes:    NewModeRegistry(),
		charsets: newCharsets(),
		codec:    utf8Codec{},
		host:     host,
		ansiMode: true,
		pending:  newPendingAttributes(),
	}
	e.screens[0] = NewFramebuffer(cols, rows)
	e.screens[1] = NewFramebuffer(cols, rows)
	e.tokenizer = NewTokenizer(e)
	return e
}

func (e *Emulator) currentScreen() Screen { return e.screens[e.current] }

// SetCodec swaps the outbound key-text codec (§6 setCodec), valid only
// from the same single-threaded caller as everything else here.
func (e *Emulator) SetCodec(c Codec) { e.codec = c }

// SetBindings/SetScroller/SetTimer/SetReadOnly/SetDECRQCRAEnabled wire the
// host-supplied collaborators; nil is a valid value for any of them and
// is checked at every call site.
func (e *Emulator) SetBindings(b BindingTable) { e.bindings = b }
func (e *Emulator) SetScroller(s Scroller)     { e.scroller = s }
func (e *Emulator) SetTimer(t Timer)           { e.timer = t }
func (e *Emulator) SetReadOnly(v bool)         { e.readOnly = v }
func (e *Emulator) SetDECRQCRAEnabled(v bool)  { e.decrqcraEnabled = v }

// Feed hands a run of already-decoded code points to the tokenizer.
func (e *Emulator) Feed(s []rune) {
	e.tokenizer.Feed(s)
}

func (e *Emulator) send(s string) {
	if e.host != nil {
		e.host.SendData([]byte(s))
	}
}

// Reset implements the core-reset path of §5: abort any pending sequence,
// reinitialize the tokenizer, reset the mode set (preserving
// Allow132Columns and Mouse1007), clear both screens, and request a
// default cursor style.
func (e *Emulator) Reset() {
	e.tokenizer = NewTokenizer(e)
	e.modes.ResetAll(e)
	e.current = 0
	for _, fb := range e.screens {
		fb.ClearEntireScreen()
		fb.SetDefaultRendition()
		fb.SetCursorYX(0, 0)
		fb.SetDefaultMargins()
	}
	e.charsets = newCharsets()
	if e.host != nil {
		e.host.ResetCursorStyleRequest()
	}
}

// --- ModeRegistry Hooks ---

func (e *Emulator) MouseTrackingChanged(enabled bool) {
	if e.host != nil {
		e.host.ProgramRequestsMouseTracking(enabled)
	}
}

func (e *Emulator) AlternateScrollingChanged(enabled bool) {
	if e.host != nil {
		e.host.EnableAlternateScrolling(enabled)
	}
}

func (e *Emulator) BracketedPasteChanged(enabled bool) {
	if e.host != nil {
		e.host.ProgramBracketedPasteModeChanged(enabled)
	}
}

func (e *Emulator) Columns132Changed(enabled bool) {
	cols := 80
	if enabled {
		cols = 132
	}
	for _, fb := range e.screens {
		fb.ClearEntireScreen()
		fb.Resize(cols, fb.nRows)
	}
}

func (e *Emulator) AlternateScreenChanged(enabled bool) {
	if enabled {
		e.screens[1].ClearEntireScreen()
		e.screens[1].SetDefaultRendition()
		e.current = 1
	} else {
		e.current = 0
	}
	e.charsets.screenIndex = e.current
	if e.host != nil {
		e.host.AlternateScreenChanged(enabled)
	}
}

func (e *Emulator) ForwardModeToScreens(m Mode, value bool) {
	for _, fb := range e.screens {
		fb.SetMode(m, value)
	}
}

// Resize applies a host-driven window-size change (e.g. SIGWINCH) to both
// screens. Distinct from Columns132Changed, which is the terminal's own
// DECCOLM-triggered 80/132 switch.
func (e *Emulator) Resize(cols, rows int) {
	for _, fb := range e.screens {
		fb.Resize(cols, rows)
	}
}

// CursorPosition, Mode, and Bindings give a host read-back access to state
// it does not own, for diagnostics or status lines (e.g. cmd/vtdemo's
// Ctrl-T dump).
func (e *Emulator) CursorPosition() (row, col int) { return e.currentScreen().CursorPosition() }
func (e *Emulator) Mode(m Mode) bool               { return e.modes.Get(m) }
func (e *Emulator) Bindings() BindingTable         { return e.bindings }

// --- Sink (tokenizer callbacks) ---

func (e *Emulator) ReportDecodingError(buf []rune) {
	util.Logger.Warn("terminal: decoding error", "buffer", fmt.Sprintf("% x", []byte(string(buf))))
}

func (e *Emulator) HandleOSC(pv string, terminator rune) {
	e.handleOSC(pv, terminator)
}

// EncodePaste wraps pasted text in the bracketed-paste framing (GLOSSARY)
// when BracketedPaste is active, otherwise returns the text unwrapped.
func (e *Emulator) EncodePaste(text string) []byte {
	b := e.codec.Encode(text)
	if !e.modes.Get(ModeBracketedPaste) {
		return b
	}
	out := append([]byte("\x1B[200~"), b...)
	return append(out, []byte("\x1B[201~")...)
}
