// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Charset designators for the four G0-G3 slots (§3 CharsetState).
const (
	CharsetASCII   byte = 'B' // US-ASCII
	CharsetDECLine byte = '0' // DEC special graphics / line drawing
	CharsetUKPound byte = 'A' // UK national
)

// decGraphics is the fixed 32-entry DEC special-graphics substitution
// table, indexed by c-0x5F for 0x5F<=c<=0x7E. Grounded byte-for-byte on
// Konsole's vt100_graphics[32] (the original this spec was distilled
// from); aprilsh's own handler.go table disagrees on some entries and is
// treated as the less authoritative of the two per this repo's rule of
// following original_source on exact constants.
var decGraphics = [32]rune{
	0x0020, 0x25C6, 0x2592, 0x2409, 0x240c, 0x240d, 0x240a, 0x00b0,
	0x00b1, 0x2424, 0x240b, 0x2518, 0x2510, 0x250c, 0x2514, 0x253c,
	0xF800, 0xF801, 0x2500, 0xF803, 0xF804, 0x251c, 0x2524, 0x2534,
	0x252c, 0x2502, 0x2264, 0x2265, 0x03C0, 0x2260, 0x00A3, 0x00b7,
}

// CharsetState is one screen's G0-G3 designation state (§3: "two copies:
// one per screen index in {0, 1}").
type CharsetState struct {
	slots        [4]byte
	cur          int
	graphic      bool
	pound        bool
	savedGraphic bool
	savedPound   bool
}

func newCharsetState() CharsetState {
	cs := CharsetState{}
	cs.resetCharset()
	return cs
}

func (cs *CharsetState) resetCharset() {
	cs.slots = [4]byte{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII}
	cs.cur = 0
	cs.graphic = false
	cs.pound = false
}

// applyCharset translates c through the active slot, per §4.4. DEC
// graphics substitutes box-drawing glyphs for 0x5F-0x7E; UK pound
// substitutes only '#'.
func (cs *CharsetState) applyCharset(c rune) rune {
	if cs.graphic && c >= 0x5F && c <= 0x7E {
		return decGraphics[c-0x5F]
	}
	if cs.pound && c == '#' {
		return 0x00A3
	}
	return c
}

func (cs *CharsetState) use(slot int) {
	cs.cur = slot
	d := cs.slots[slot]
	cs.graphic = d == CharsetDECLine
	cs.pound = d == CharsetUKPound
}

func (cs *CharsetState) designate(slot int, designator byte) {
	cs.slots[slot] = designator
	if slot == cs.cur {
		cs.use(slot)
	}
}

func (cs *CharsetState) save() {
	cs.savedGraphic = cs.graphic
	cs.savedPound = cs.pound
}

func (cs *CharsetState) restore() {
	cs.graphic = cs.savedGraphic
	cs.pound = cs.savedPound
}

// charsets holds both screens' charset state (§9: "model as
// charset: [CharsetState; 2], indexed by current_screen_index" rather
// than the source's pointer-aliasing trick).
type charsets struct {
	state       [2]CharsetState
	screenIndex int
}

func newCharsets() charsets {
	return charsets{state: [2]CharsetState{newCharsetState(), newCharsetState()}}
}

func (c *charsets) current() *CharsetState {
	return &c.state[c.screenIndex]
}

// setCharset designates slot n on BOTH screens (§4.4: "applies on both screens").
func (c *charsets) setCharset(n int, designator byte) {
	c.state[0].designate(n, designator)
	c.state[1].designate(n, designator)
}

// useCharset activates slot n on the current screen's state only.
func (c *charsets) useCharset(n int) {
	c.current().use(n)
}
