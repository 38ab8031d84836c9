// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

// fakeBindings is a minimal BindingTable double for exercising EncodeKey
// without pulling in a real terminfo-backed table.
type fakeBindings struct {
	table map[string]Binding
}

func (b *fakeBindings) Lookup(key string, mods Modifiers, stateMask int) (Binding, bool) {
	v, ok := b.table[key]
	return v, ok
}

// with no BindingTable configured, EncodeKey reports the missing
// translator instead of sending anything.
func TestEncodeKeyMissingTranslator(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.EncodeKey(KeyEvent{Key: "a", Text: "a"})

	if len(h.sent) != 0 {
		t.Fatalf("expect nothing sent to host, got %v", h.sent)
	}
	// the message is fed back through the tokenizer and then Reset wipes
	// both screens, so only the reset's own observable side effects
	// (default cursor style requested, cursor back at the origin) survive.
	if !h.cursorReset {
		t.Error("expect ResetCursorStyleRequest from the trailing Reset")
	}
	row, col := e.screens[0].CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expect cursor at origin after reset, got (%d,%d)", row, col)
	}
}

// an unbound key with plain text falls through to the codec.
func TestEncodeKeyUnboundFallsBackToText(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{}})

	e.EncodeKey(KeyEvent{Key: "a", Text: "a"})
	if got := string(h.lastSent()); got != "a" {
		t.Errorf("expect plain text %q, got %q", "a", got)
	}
}

// a bound key with literal Text sends that text verbatim.
func TestEncodeKeyBoundLiteralText(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{
		"Up": {Text: "\x1BOA"},
	}})

	e.EncodeKey(KeyEvent{Key: "Up"})
	if got := string(h.lastSent()); got != "\x1BOA" {
		t.Errorf("expect %q, got %q", "\x1BOA", got)
	}
}

// CmdErase falls back to a bare backspace when no Backspace binding exists.
func TestEncodeKeyEraseFallsBackToBareBackspace(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{
		"Backspace": {Command: CmdErase},
	}})

	e.EncodeKey(KeyEvent{Key: "Backspace"})
	if got := string(h.lastSent()); got != "\b" {
		t.Errorf("expect bare backspace, got %q", got)
	}
}

// CmdErase prefers the configured Backspace binding's own text over the
// bare fallback (SPEC_FULL §12.3).
func TestEncodeKeyEraseUsesBackspaceBindingText(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{
		"Erase":     {Command: CmdErase},
		"Backspace": {Text: "\x7F"},
	}})

	e.EncodeKey(KeyEvent{Key: "Erase"})
	if got := string(h.lastSent()); got != "\x7F" {
		t.Errorf("expect bound backspace text %q, got %q", "\x7F", got)
	}
}

// Alt prefixes the encoded bytes with ESC unless the binding claims it.
func TestEncodeKeyAltPrefixing(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{}})

	e.EncodeKey(KeyEvent{Key: "x", Text: "x", Modifiers: ModAlt})
	if got := string(h.lastSent()); got != "\x1Bx" {
		t.Errorf("expect ESC-prefixed %q, got %q", "\x1Bx", got)
	}
}

func TestEncodeKeyAltSuppressedByClaimsAlt(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{
		"F1": {Text: "\x1BOP", ClaimsAlt: true},
	}})

	e.EncodeKey(KeyEvent{Key: "F1", Modifiers: ModAlt})
	if got := string(h.lastSent()); got != "\x1BOP" {
		t.Errorf("expect no extra ESC prefix, got %q", got)
	}
}

// Meta prefixes with the xterm meta-escape sequence unless claimed.
func TestEncodeKeyMetaPrefixing(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{}})

	e.EncodeKey(KeyEvent{Key: "x", Text: "x", Modifiers: ModMeta})
	if got := string(h.lastSent()); got != "\x18@sx" {
		t.Errorf("expect meta-prefixed %q, got %q", "\x18@sx", got)
	}
}

// Ctrl+S/Q/C report flow-control events to the host rather than
// suppressing the usual key encoding.
func TestEncodeKeyCtrlFlowControl(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{}})

	e.EncodeKey(KeyEvent{Key: "s", Text: "s", Modifiers: ModCtrl})
	if len(h.flowControl) != 1 || !h.flowControl[0] {
		t.Fatalf("expect FlowControlKeyPressed(true) for Ctrl+S, got %v", h.flowControl)
	}

	e.EncodeKey(KeyEvent{Key: "q", Text: "q", Modifiers: ModCtrl})
	if len(h.flowControl) != 2 || h.flowControl[1] {
		t.Fatalf("expect FlowControlKeyPressed(false) for Ctrl+Q, got %v", h.flowControl)
	}
}

// ReadOnly suppresses outbound bytes entirely.
func TestEncodeKeyReadOnlySuppressesOutput(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{}})
	e.SetReadOnly(true)

	e.EncodeKey(KeyEvent{Key: "a", Text: "a"})
	if len(h.sent) != 0 {
		t.Errorf("expect nothing sent while read-only, got %v", h.sent)
	}
}

// a Command binding with no configured Scroller is a safe no-op.
func TestEncodeKeyScrollCommandWithoutScroller(t *testing.T) {
	e, _ := newTestEmulator(80, 24)
	e.SetBindings(&fakeBindings{table: map[string]Binding{
		"PageUp": {Command: CmdScrollPageUp},
	}})

	e.EncodeKey(KeyEvent{Key: "PageUp"}) // must not panic
}
