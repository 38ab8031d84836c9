// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Modifiers is the bitmask of keyboard modifiers held during a KeyEvent.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
	ModKeypad // numeric keypad origin, distinct from a held modifier key
)

// Command is the set of non-textual actions a key binding may request
// instead of (or in addition to) literal bytes (§4.5 step 5).
type Command uint8

const (
	CmdNone Command = iota
	CmdErase
	CmdScrollPageUp
	CmdScrollPageDown
	CmdScrollLineUp
	CmdScrollLineDown
	CmdScrollUpToTop
	CmdScrollDownToBottom
)

// KeyEvent is the abstract key event the Keyboard Encoder accepts (§4.5).
// Key is a symbolic name ("Up", "F5", "Backspace") for non-printable keys,
// empty for plain text entry where Text already carries the rune(s).
type KeyEvent struct {
	Key       string
	Modifiers Modifiers
	Text      string
}

// Binding is one key-binding table entry (§4.5: "a key-binding table
// (external)"). ClaimsAlt/ClaimsMeta suppress the encoder's own Alt/Meta
// prefixing (step 7) when the binding already accounts for the modifier.
type Binding struct {
	Text       string
	Command    Command
	ClaimsAlt  bool
	ClaimsMeta bool
}

// BindingTable resolves a (key, modifiers, state mask) triple to a Binding.
// The concrete table (e.g. the keytab package, terminfo-backed) lives
// outside this package — the core only ever consumes the interface.
type BindingTable interface {
	Lookup(key string, mods Modifiers, stateMask int) (Binding, bool)
}

// Scroller is the viewing-window scroll surface a Command may invoke
// (§4.5 step 5); like BindingTable this is supplied by the host, not
// implemented here, since scrollback itself is out of the core's scope.
type Scroller interface {
	ScrollPageUp()
	ScrollPageDown()
	ScrollLineUp()
	ScrollLineDown()
	ScrollUpToTop()
	ScrollDownToBottom()
}

// stateMask builds the binding-table lookup mask from modes (§4.5 step 1).
func (e *Emulator) stateMask(mods Modifiers) int {
	var m int
	if e.modes.Get(ModeNewLine) {
		m |= 1
	}
	if e.modes.Get(ModeAnsi) {
		m |= 2
	}
	if e.modes.Get(ModeAppCuKeys) {
		m |= 4
	}
	if e.modes.Get(ModeAppScreen) {
		m |= 8
	}
	if e.modes.Get(ModeAppKeyPad) && mods&ModKeypad != 0 {
		m |= 16
	}
	return m
}

// eraseChar returns the byte sequence CmdErase appends: the active
// Backspace binding's text if one is configured, else a bare backspace
// (supplemented per SPEC_FULL §12.3 — the original falls back the same way
// when no explicit binding exists).
func (e *Emulator) eraseChar() string {
	if e.bindings != nil {
		if b, ok := e.bindings.Lookup("Backspace", 0, e.stateMask(0)); ok && b.Text != "" {
			return b.Text
		}
	}
	return "\b"
}

// EncodeKey implements the §4.5 algorithm end to end.
func (e *Emulator) EncodeKey(ev KeyEvent) {
	if e.bindings == nil {
		e.reportMissingKeyTranslator()
		return
	}

	if ev.Modifiers&ModCtrl != 0 && e.host != nil && !e.readOnly {
		switch ev.Key {
		case "s", "S":
			e.host.FlowControlKeyPressed(true)
		case "q", "Q":
			e.host.FlowControlKeyPressed(false)
		case "c", "C":
			e.host.FlowControlKeyPressed(false)
		}
	}

	mask := e.stateMask(ev.Modifiers)
	binding, ok := e.bindings.Lookup(ev.Key, ev.Modifiers, mask)

	var out []byte
	switch {
	case !ok:
		out = e.encodeText(ev.Text)
	case binding.Command != CmdNone:
		out = e.runCommand(binding.Command)
	case binding.Text != "":
		out = []byte(binding.Text)
	default:
		out = e.encodeText(ev.Text)
	}

	if ev.Modifiers&ModAlt != 0 && !binding.ClaimsAlt {
		out = append([]byte{0x1B}, out...)
	}
	if ev.Modifiers&ModMeta != 0 && !binding.ClaimsMeta {
		out = append([]byte("\x18@s"), out...)
	}

	if len(out) == 0 || e.readOnly {
		return
	}
	if e.host != nil {
		e.host.SendData(out)
	}
}

func (e *Emulator) runCommand(c Command) []byte {
	switch c {
	case CmdErase:
		return []byte(e.eraseChar())
	case CmdScrollPageUp:
		if e.scroller != nil {
			e.scroller.ScrollPageUp()
		}
	case CmdScrollPageDown:
		if e.scroller != nil {
			e.scroller.ScrollPageDown()
		}
	case CmdScrollLineUp:
		if e.scroller != nil {
			e.scroller.ScrollLineUp()
		}
	case CmdScrollLineDown:
		if e.scroller != nil {
			e.scroller.ScrollLineDown()
		}
	case CmdScrollUpToTop:
		if e.scroller != nil {
			e.scroller.ScrollUpToTop()
		}
	case CmdScrollDownToBottom:
		if e.scroller != nil {
			e.scroller.ScrollDownToBottom()
		}
	}
	return nil
}

func (e *Emulator) encodeText(text string) []byte {
	if text == "" {
		return nil
	}
	return e.codec.Encode(text)
}

// reportMissingKeyTranslator implements §4.5's last paragraph and §7.4:
// display an i18n error string through the incoming data channel (i.e.
// feed it back through the tokenizer as if the child had sent it) and
// reset the emulator.
func (e *Emulator) reportMissingKeyTranslator() {
	const msg = "\r\n[no key translator configured]\r\n"
	e.Feed([]rune(msg))
	e.Reset()
}
