// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Dispatch implements §4.2: map a Token to a Screen call, a mode change,
// a device-report emission, or a core self-mutation. The switch lists
// every Kind directly, with no registry lookup (§9); the Go compiler does
// not report a missing case, so a Kind added to token.go without a case
// here is ignored.
func (e *Emulator) Dispatch(t Token) {
	switch t.Kind {
	case Chr:
		e.dispatchChr(t)
	case Ctl:
		e.dispatchCtl(t)
	case Esc:
		e.dispatchEsc(t)
	case EscCs:
		e.dispatchEscCs(t)
	case EscDe:
		e.dispatchEscDe(t)
	case CsiPs:
		e.dispatchCsiPs(t)
	case CsiPn:
		e.dispatchCsiPn(t)
	case CsiPr:
		e.dispatchCsiPr(t)
	case CsiPe:
		e.dispatchCsiPe(t)
	case CsiSp:
		e.dispatchCsiSpace(t.Ch, 0)
	case CsiPsp:
		e.dispatchCsiSpace(t.Ch, t.Arg)
	case CsiPq:
		e.dispatchCsiPq(t)
	case CsiPg:
		e.dispatchCsiPg(t)
	case Vt52:
		e.dispatchVt52(t)
	}
}

// defaultTo1 implements the §8 boundary rule: an omitted (zero) parameter
// defaults to 1 for motion commands.
func defaultTo1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (e *Emulator) dispatchChr(t Token) {
	r := e.charsets.current().applyCharset(t.Ch)
	e.currentScreen().DisplayCharacter(r)
	if e.urlMode && e.host != nil {
		e.host.HyperlinkChar(t.Ch)
	}
}

func (e *Emulator) dispatchCtl(t Token) {
	s := e.currentScreen()
	switch t.Ch {
	case 0x07: // BEL
		if e.host != nil {
			e.host.Bell()
		}
	case 0x08: // BS
		s.Backspace()
	case 0x09: // HT
		s.Tab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		if e.modes.Get(ModeNewLine) {
			s.NewLine()
		} else {
			s.Index()
		}
	case 0x0D: // CR
		s.ToStartOfLine()
	case 0x0E: // SO: shift to G1
		e.charsets.useCharset(1)
	case 0x0F: // SI: shift to G0
		e.charsets.useCharset(0)
	}
}

func (e *Emulator) dispatchEsc(t Token) {
	s := e.currentScreen()
	switch t.Ch {
	case '7': // DECSC
		s.SaveCursor()
		e.charsets.current().save()
	case '8': // DECRC
		s.RestoreCursor()
		e.charsets.current().restore()
	case 'c': // RIS full reset
		e.Reset()
	case 'D': // IND
		s.Index()
	case 'M': // RI
		s.ReverseIndex()
	case 'E': // NEL
		s.NextLine()
	case 'H': // HTS
		s.ChangeTabStop(true)
	case 'Z': // DECID
		e.reportDA1()
	case '=': // DECKPAM
		e.modes.Set(ModeAppKeyPad, e)
	case '>': // DECKPNM
		e.modes.Reset(ModeAppKeyPad, e)
	case 'n': // LS2
		e.charsets.useCharset(2)
	case 'o': // LS3
		e.charsets.useCharset(3)
	}
}

func (e *Emulator) dispatchEscCs(t Token) {
	intermediate := byte(t.Arg)
	if intermediate == '%' {
		switch t.Ch {
		case 'G':
			e.codec = utf8Codec{}
		case '@':
			e.codec = localeCodec{}
		}
		return
	}
	if slot, ok := slotFor(intermediate); ok {
		e.charsets.setCharset(slot, byte(t.Ch))
	}
}

func slotFor(intermediate byte) (int, bool) {
	switch intermediate {
	case '(':
		return 0, true
	case ')':
		return 1, true
	case '*':
		return 2, true
	case '+':
		return 3, true
	}
	return 0, false
}

func (e *Emulator) dispatchEscDe(t Token) {
	s := e.currentScreen()
	switch t.Ch {
	case '3':
		s.SetLineProperty(LineDoubleHeightTop, true)
	case '4':
		s.SetLineProperty(LineDoubleHeightBottom, true)
	case '5':
		s.SetLineProperty(LineDoubleWidth, false)
		s.SetLineProperty(LineDoubleHeightTop, false)
		s.SetLineProperty(LineDoubleHeightBottom, false)
	case '6':
		s.SetLineProperty(LineDoubleWidth, true)
	case '8': // DECALN
		s.HelpAlign()
	}
}

// dispatchCsiPn handles every CPN-class final (§4.1): the large family of
// CSI sequences carrying up to two numeric parameters.
func (e *Emulator) dispatchCsiPn(t Token) {
	s := e.currentScreen()
	switch t.Ch {
	case '@':
		s.InsertChars(defaultTo1(t.Arg))
	case 'A':
		s.CursorUp(defaultTo1(t.Arg))
	case 'B':
		s.CursorDown(defaultTo1(t.Arg))
	case 'C':
		s.CursorRight(defaultTo1(t.Arg))
	case 'D':
		s.CursorLeft(defaultTo1(t.Arg))
	case 'E':
		for i := 0; i < defaultTo1(t.Arg); i++ {
			s.NextLine()
		}
	case 'F':
		s.ToStartOfLine()
		s.CursorUp(defaultTo1(t.Arg))
	case 'G':
		s.SetCursorX(defaultTo1(t.Arg) - 1)
	case 'H', 'f':
		s.SetCursorYX(defaultTo1(t.Arg)-1, defaultTo1(t.Arg2)-1)
	case 'I':
		s.Tab(defaultTo1(t.Arg))
	case 'L':
		s.InsertLines(defaultTo1(t.Arg))
	case 'M':
		s.DeleteLines(defaultTo1(t.Arg))
	case 'P':
		s.DeleteChars(defaultTo1(t.Arg))
	case 'S':
		s.ScrollUp(defaultTo1(t.Arg))
	case 'T':
		s.ScrollDown(defaultTo1(t.Arg))
	case 'X':
		s.EraseChars(defaultTo1(t.Arg))
	case 'Z':
		s.Backtab(defaultTo1(t.Arg))
	case 'b':
		s.RepeatChars(defaultTo1(t.Arg))
	case 'c':
		e.reportDA1()
	case 'd':
		s.SetCursorY(defaultTo1(t.Arg) - 1)
	case 'r':
		top, bottom := t.Arg-1, t.Arg2-1
		if t.Arg == 0 {
			s.SetDefaultMargins()
		} else {
			s.SetMargins(top, bottom)
		}
	case 'y':
		if len(t.Args) >= 5 {
			rows, cols := s.Size()
			r := NewRect(t.Args[1], t.Args[2], t.Args[3], t.Args[4], rows, cols)
			e.reportChecksum(t.Args[0], []int{r.Top, r.Left, r.Bottom, r.Right})
		}
	}
}

func (e *Emulator) dispatchCsiPs(t Token) {
	s := e.currentScreen()
	switch t.Ch {
	case 'J':
		switch t.Arg {
		case 0:
			s.ClearToEndOfScreen()
		case 1:
			s.ClearToBeginOfScreen()
		case 2, 3:
			s.ClearEntireScreen()
		}
	case 'K':
		switch t.Arg {
		case 0:
			s.ClearToEndOfLine()
		case 1:
			s.ClearToBeginOfLine()
		case 2:
			s.ClearEntireLine()
		}
	case 'h': // SM (ANSI, non-private)
		e.setAnsiMode(t.Arg, true)
	case 'l': // RM
		e.setAnsiMode(t.Arg, false)
	case 'm':
		e.dispatchSGRParam(t)
	case 'n':
		switch t.Arg {
		case 5:
			e.reportDSR()
		case 6:
			e.reportCPR()
		}
	case 'g': // TBC tab clear
		switch t.Arg {
		case 0:
			s.ChangeTabStop(false)
		case 3:
			s.ClearTabStops()
		}
	case 't':
		e.dispatchWindowOp(t)
	case 'x':
		e.reportTerminalParams()
	}
}

func (e *Emulator) setAnsiMode(arg int, value bool) {
	if arg == 20 { // LNM
		if value {
			e.modes.Set(ModeNewLine, e)
		} else {
			e.modes.Reset(ModeNewLine, e)
		}
	}
}

func (e *Emulator) dispatchWindowOp(t Token) {
	switch t.Arg {
	case 18:
		e.reportWindowSize()
	case 8:
		if len(t.Args) >= 3 {
			rows, cols := t.Args[1], t.Args[2]
			if e.host != nil {
				e.host.ImageResizeRequest(cols, rows)
			}
			e.currentScreen().SetImageSize(rows, cols)
		}
	}
}

// dispatchSGRParam handles one already-unbundled SGR parameter (§4.2): the
// tokenizer has already collapsed RGB/256-color sub-sequences into a
// single call carrying Arg2 as the color-space tag.
func (e *Emulator) dispatchSGRParam(t Token) {
	s := e.currentScreen()
	switch t.Arg {
	case 38:
		e.setSGRColor(s.SetForeColor, t)
		return
	case 48:
		e.setSGRColor(s.SetBackColor, t)
		return
	}

	switch {
	case t.Arg == 0:
		s.SetDefaultRendition()
	case t.Arg >= 1 && t.Arg <= 9:
		s.SetRendition(charAttribute(t.Arg))
	case t.Arg == 53:
		s.SetRendition(Overline)
	case t.Arg >= 21 && t.Arg <= 29:
		if t.Arg != 26 {
			s.ResetRendition(charAttribute(t.Arg - 20))
		}
	case t.Arg == 55:
		s.ResetRendition(Overline)
	case t.Arg >= 30 && t.Arg <= 37:
		s.SetForeColor(ColorSpaceIndexed, t.Arg-30)
	case t.Arg >= 40 && t.Arg <= 47:
		s.SetBackColor(ColorSpaceIndexed, t.Arg-40)
	case t.Arg == 39:
		s.SetForeColor(ColorSpaceDefault, 0)
	case t.Arg == 49:
		s.SetBackColor(ColorSpaceDefault, 0)
	case t.Arg >= 90 && t.Arg <= 97:
		s.SetForeColor(ColorSpaceIndexed, t.Arg-90+8)
	case t.Arg >= 100 && t.Arg <= 107:
		s.SetBackColor(ColorSpaceIndexed, t.Arg-100+8)
	}
}

func (e *Emulator) setSGRColor(set func(space ColorSpace, value int), t Token) {
	switch ColorSpace(t.Arg2) {
	case ColorSpaceRGB:
		if len(t.Args) >= 3 {
			set(ColorSpaceRGB, t.Args[0]<<16|t.Args[1]<<8|t.Args[2])
		}
	case ColorSpace256:
		if len(t.Args) >= 1 {
			set(ColorSpace256, t.Args[0])
		}
	}
}

func (e *Emulator) dispatchCsiPr(t Token) {
	if t.Arg == 1048 {
		e.cursorOnlySave(t.Ch == 'h')
		return
	}
	if t.Arg == 1049 {
		e.dispatch1049(t.Ch == 'h')
		return
	}
	if t.Arg == 2 { // DECANM: ANSI/VT52 mode toggle
		e.ansiMode = t.Ch == 'h'
		e.tokenizer.SetAnsiMode(e.ansiMode)
		if e.ansiMode {
			e.modes.Set(ModeAnsi, e)
		} else {
			e.modes.Reset(ModeAnsi, e)
		}
		return
	}
	m, ok := privateMode(t.Arg)
	if !ok {
		return
	}
	if t.Ch == 'h' {
		e.modes.Set(m, e)
	} else {
		e.modes.Reset(m, e)
	}
}

func (e *Emulator) cursorOnlySave(save bool) {
	s := e.currentScreen()
	if save {
		s.SaveCursor()
	} else {
		s.RestoreCursor()
	}
}

func (e *Emulator) dispatch1049(set bool) {
	if set {
		e.currentScreen().SaveCursor()
		e.modes.Set(ModeAppScreen, e)
	} else {
		e.modes.Reset(ModeAppScreen, e)
		e.currentScreen().RestoreCursor()
	}
}

func privateMode(n int) (Mode, bool) {
	switch n {
	case 1:
		return ModeAppCuKeys, true
	case 3:
		return ModeCol132, true
	case 5:
		return ModeReverseVideo, true
	case 6:
		return ModeOrigin, true
	case 7:
		return ModeWrap, true
	case 25:
		return ModeCursor, true
	case 1000:
		return ModeMouse1000, true
	case 1001:
		return ModeMouse1001, true
	case 1002:
		return ModeMouse1002, true
	case 1003:
		return ModeMouse1003, true
	case 1005:
		return ModeMouse1005, true
	case 1006:
		return ModeMouse1006, true
	case 1007:
		return ModeMouse1007, true
	case 1015:
		return ModeMouse1015, true
	case 2004:
		return ModeBracketedPaste, true
	case 1004:
		return ModeReportFocusEvents, true
	}
	return 0, false
}

func (e *Emulator) dispatchCsiPe(t Token) {
	if t.Ch == 'p' { // DECSTR soft reset
		e.Reset()
	}
}

func (e *Emulator) dispatchCsiSpace(final rune, arg int) {
	if final != 'q' {
		return
	}
	style := CursorStyleFromParam(arg)
	if fb, ok := e.currentScreen().(*Framebuffer); ok {
		fb.SetCursorStyle(style)
	}
	if e.host != nil {
		e.host.SetCursorStyleRequest(style, style == CursorStyleBlockBlink || style == CursorStyleUnderlineBlink || style == CursorStyleBarBlink)
	}
}

func (e *Emulator) dispatchCsiPq(t Token) {
	if t.Ch == 'c' {
		e.reportDA3()
	}
}

func (e *Emulator) dispatchCsiPg(t Token) {
	if t.Ch == 'c' {
		e.reportDA2()
	}
}

func (e *Emulator) dispatchVt52(t Token) {
	s := e.currentScreen()
	switch t.Ch {
	case 'A':
		s.CursorUp(1)
	case 'B':
		s.CursorDown(1)
	case 'C':
		s.CursorRight(1)
	case 'D':
		s.CursorLeft(1)
	case 'H':
		s.SetCursorYX(0, 0)
	case 'I':
		s.ReverseIndex()
	case 'J':
		s.ClearToEndOfScreen()
	case 'K':
		s.ClearToEndOfLine()
	case 'Y':
		s.SetCursorYX(t.Arg-32, t.Arg2-32)
	case 'Z':
		e.reportDA1()
	case '<':
		e.ansiMode = true
		e.tokenizer.SetAnsiMode(true)
	}
}
