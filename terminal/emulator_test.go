// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

// fakeHost records every Host callback an Emulator makes so tests can
// assert on them without a real PTY/GUI behind the interface.
type fakeHost struct {
	sent             [][]byte
	bells            int
	resizeCols       int
	resizeRows       int
	cursorStyle      CursorStyle
	cursorBlink      bool
	cursorReset      bool
	mouseTracking    []bool
	bracketedPaste   []bool
	altScrolling     []bool
	attrChanges      []struct {
		id   int
		text string
	}
	attrRequests []struct {
		id         int
		terminator rune
	}
	flowControl []bool
	hyperlinks  []string
	hyperChars  []rune
	hyperEnds   int
	altScreen   []bool
}

func (h *fakeHost) SendData(b []byte) { h.sent = append(h.sent, append([]byte(nil), b...)) }
func (h *fakeHost) Bell()             { h.bells++ }
func (h *fakeHost) ImageResizeRequest(cols, rows int) {
	h.resizeCols, h.resizeRows = cols, rows
}

func (h *fakeHost) SetCursorStyleRequest(shape CursorStyle, blink bool) {
	h.cursorStyle, h.cursorBlink = shape, blink
}

func (h *fakeHost) ResetCursorStyleRequest() { h.cursorReset = true }
func (h *fakeHost) ProgramRequestsMouseTracking(enabled bool) {
	h.mouseTracking = append(h.mouseTracking, enabled)
}

func (h *fakeHost) ProgramBracketedPasteModeChanged(enabled bool) {
	h.bracketedPaste = append(h.bracketedPaste, enabled)
}

func (h *fakeHost) EnableAlternateScrolling(enabled bool) {
	h.altScrolling = append(h.altScrolling, enabled)
}

func (h *fakeHost) SessionAttributeChanged(id int, text string) {
	h.attrChanges = append(h.attrChanges, struct {
		id   int
		text string
	}{id, text})
}

func (h *fakeHost) SessionAttributeRequest(id int, terminator rune) {
	h.attrRequests = append(h.attrRequests, struct {
		id         int
		terminator rune
	}{id, terminator})
}

func (h *fakeHost) FlowControlKeyPressed(enabled bool) {
	h.flowControl = append(h.flowControl, enabled)
}

func (h *fakeHost) HyperlinkBegin(uri string) { h.hyperlinks = append(h.hyperlinks, uri) }
func (h *fakeHost) HyperlinkChar(r rune)      { h.hyperChars = append(h.hyperChars, r) }
func (h *fakeHost) HyperlinkEnd()             { h.hyperEnds++ }

func (h *fakeHost) AlternateScreenChanged(enabled bool) {
	h.altScreen = append(h.altScreen, enabled)
}

// lastSent returns the bytes of the most recent SendData call, or nil.
func (h *fakeHost) lastSent() []byte {
	if len(h.sent) == 0 {
		return nil
	}
	return h.sent[len(h.sent)-1]
}

// fakeTimer is the §9 "injected trait object" for the 20ms OSC coalescer:
// Arm just remembers the callback so a test can Fire it deterministically
// instead of sleeping.
type fakeTimer struct {
	fn func()
}

func (t *fakeTimer) Arm(fn func()) { t.fn = fn }
func (t *fakeTimer) Cancel()       { t.fn = nil }
func (t *fakeTimer) fire() {
	if t.fn != nil {
		fn := t.fn
		t.fn = nil
		fn()
	}
}

func newTestEmulator(cols, rows int) (*Emulator, *fakeHost) {
	h := &fakeHost{}
	e := NewEmulator(cols, rows, h)
	return e, h
}

// Scenario 1 (§8): "\x1B[31mA\x1B[0mB" on a cleared screen produces a red
// 'A' followed by a default-rendition 'B'.
func TestScenarioSGRThenChar(t *testing.T) {
	e, _ := newTestEmulator(80, 24)
	e.Feed([]rune("\x1B[31mA\x1B[0mB"))

	fb := e.screens[0]
	cellA := fb.row(0).At(0)
	if cellA.Rune() != 'A' {
		t.Fatalf("expect cell 0 rune 'A', got %q", cellA.Rune())
	}
	if idx := cellA.Renditions().fgColor.Index(); idx != int(ColorRed&^ColorValid) {
		t.Errorf("expect fg color index %d, got %d", ColorRed&^ColorValid, idx)
	}

	cellB := fb.row(0).At(1)
	if cellB.Rune() != 'B' {
		t.Fatalf("expect cell 1 rune 'B', got %q", cellB.Rune())
	}
	if cellB.Renditions() != (Renditions{}) {
		t.Errorf("expect cell 1 rendition reset to default, got %+v", cellB.Renditions())
	}
}

// Scenario 2 (§8): "\x1B[8;24;80t" requests a resize and sets the image
// size without sending anything back to the child.
func TestScenarioWindowOpResize(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.Feed([]rune("\x1B[8;24;80t"))

	if h.resizeCols != 80 || h.resizeRows != 24 {
		t.Errorf("expect ImageResizeRequest(80,24), got (%d,%d)", h.resizeCols, h.resizeRows)
	}
	if len(h.sent) != 0 {
		t.Errorf("expect no bytes sent to child, got %v", h.sent)
	}
}

// Scenario 3 (§8): "\x1B[18t" on a 24x80 screen replies exactly
// "\x1B[8;24;80t".
func TestScenarioWindowSizeQuery(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.Feed([]rune("\x1B[18t"))

	want := "\x1B[8;24;80t"
	if got := string(h.lastSent()); got != want {
		t.Errorf("expect reply %q, got %q", want, got)
	}
}

// Scenario 4 (§8): an OSC 0 attribute update fires exactly once, after the
// coalescing timer is fired.
func TestScenarioOSCCoalescing(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	timer := &fakeTimer{}
	e.SetTimer(timer)

	e.Feed([]rune("\x1B]0;hello\x07"))
	if len(h.attrChanges) != 0 {
		t.Fatalf("expect no attribute change before the timer fires, got %v", h.attrChanges)
	}

	timer.fire()
	if len(h.attrChanges) != 1 {
		t.Fatalf("expect exactly one attribute change, got %d", len(h.attrChanges))
	}
	if h.attrChanges[0].id != 0 || h.attrChanges[0].text != "hello" {
		t.Errorf("expect (0,%q), got (%d,%q)", "hello", h.attrChanges[0].id, h.attrChanges[0].text)
	}
}

// Scenario 5 (§8): an OSC 8 hyperlink delivers begin/chars/end to the host.
func TestScenarioHyperlinkExtraction(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.Feed([]rune("\x1B]8;;https://example.com\x1B\\link\x1B]8;;\x1B\\"))

	if len(h.hyperlinks) != 1 || h.hyperlinks[0] != "https://example.com" {
		t.Fatalf("expect HyperlinkBegin(https://example.com), got %v", h.hyperlinks)
	}
	if string(h.hyperChars) != "link" {
		t.Errorf("expect hyperlink chars %q, got %q", "link", string(h.hyperChars))
	}
	if h.hyperEnds != 1 {
		t.Errorf("expect exactly one HyperlinkEnd, got %d", h.hyperEnds)
	}
}

// Scenario 7 (§8): entering and leaving the alternate screen (CSI ? 1049 h/l)
// round-trips the cursor through save/restore across the switch.
func TestScenarioAlternateScreen(t *testing.T) {
	e, h := newTestEmulator(80, 24)
	e.Feed([]rune("\x1B[5;10H")) // park the cursor away from origin
	e.Feed([]rune("\x1B[?1049h"))
	if e.current != 1 {
		t.Fatalf("expect alternate screen active, current=%d", e.current)
	}

	e.Feed([]rune("\x1B[?1049l"))
	if e.current != 0 {
		t.Fatalf("expect primary screen restored, current=%d", e.current)
	}
	row, col := e.screens[0].CursorPosition()
	if row != 4 || col != 9 {
		t.Errorf("expect cursor restored to (4,9), got (%d,%d)", row, col)
	}

	if want := []bool{true, false}; !equalBools(h.altScreen, want) {
		t.Errorf("expect host notified of both switches %v, got %v", want, h.altScreen)
	}
}

func equalBools(got, want []bool) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// Scenario 8 (§8): "\x1B(0" designates DEC graphics on G0, then "a" is
// translated through the line-drawing table to U+2592.
func TestScenarioDECGraphicsTranslation(t *testing.T) {
	e, _ := newTestEmulator(80, 24)
	e.Feed([]rune("\x1B(0"))
	e.Feed([]rune("a"))

	got := e.screens[0].row(0).At(0).Rune()
	if got != 0x2592 {
		t.Errorf("expect U+2592, got %U", got)
	}
}

func TestEmulatorResetPreservesAllow132AndMouse1007(t *testing.T) {
	e, _ := newTestEmulator(80, 24)
	e.modes.Set(ModeAllow132Columns, e)
	e.modes.Set(ModeMouse1007, e)
	e.modes.Set(ModeBracketedPaste, e)

	e.Reset()

	if !e.modes.Get(ModeAllow132Columns) {
		t.Error("expect Allow132Columns preserved across reset")
	}
	if !e.modes.Get(ModeMouse1007) {
		t.Error("expect Mouse1007 preserved across reset")
	}
	if e.modes.Get(ModeBracketedPaste) {
		t.Error("expect BracketedPaste cleared across reset")
	}
	if !e.modes.Get(ModeAnsi) {
		t.Error("expect Ansi set after reset")
	}
}

// Idempotence (§8): feeding "\x1B[0m" twice produces the same rendition
// state as feeding it once.
func TestSGRResetIdempotent(t *testing.T) {
	e, _ := newTestEmulator(80, 24)
	e.Feed([]rune("\x1B[31;1m"))
	e.Feed([]rune("\x1B[0m"))
	once := e.screens[0].rendition

	e.Feed([]rune("\x1B[0m"))
	twice := e.screens[0].rendition

	if once != twice {
		t.Errorf("expect idempotent reset, got %+v vs %+v", once, twice)
	}
}
