// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "strconv"

// Timer abstracts the 20ms OSC coalescing single-shot (§3 PendingAttributes,
// §9 "abstract the 20ms timer as an injected trait object so tests can
// advance time deterministically"). Arm replaces any previously armed
// callback; Cancel is a no-op if nothing is armed.
type Timer interface {
	Arm(fn func())
	Cancel()
}

// pendingAttributes is the ordered Pa->Pv map of §3, flushed to the host
// through flush() in attribute-id insertion order (§5 ordering guarantee).
type pendingAttributes struct {
	order []int
	value map[int]string
}

func newPendingAttributes() *pendingAttributes {
	return &pendingAttributes{value: make(map[int]string)}
}

func (p *pendingAttributes) set(id int, v string) {
	if _, ok := p.value[id]; !ok {
		p.order = append(p.order, id)
	}
	p.value[id] = v
}

func (p *pendingAttributes) flush(emit func(id int, v string)) {
	for _, id := range p.order {
		emit(id, p.value[id])
	}
	p.order = p.order[:0]
	p.value = make(map[int]string)
}

// attrProfileChange is the xterm OSC attribute id that carries
// "CursorShape=" among other profile-change payloads (§4.8).
const attrProfileChange = 50

// attrHyperlink is the OSC 8 hyperlink attribute id.
const attrHyperlink = 8

// handleOSC implements §4.8: split Pa;Pv, special-case "?" queries, OSC 8,
// and ProfileChange/CursorShape, otherwise enqueue into the pending map and
// (re)arm the coalescing timer.
func (e *Emulator) handleOSC(body string, terminator rune) {
	pa, pv, ok := splitOSC(body)
	if !ok {
		e.ReportDecodingError([]rune(body))
		return
	}

	if pa == attrHyperlink {
		e.handleHyperlinkOSC(pv)
		return
	}

	if pv == "?" {
		if e.host != nil {
			e.host.SessionAttributeRequest(pa, terminator)
		}
		return
	}

	if pa == attrProfileChange {
		const prefix = "CursorShape="
		if len(pv) > len(prefix) && pv[:len(prefix)] == prefix {
			ps, err := strconv.Atoi(pv[len(prefix):])
			if err == nil && e.host != nil {
				e.host.SetCursorStyleRequest(CursorStyleFromParam(ps), false)
			}
			return
		}
	}

	e.pending.set(pa, pv)
	if e.timer != nil {
		e.timer.Arm(e.flushPending)
	} else {
		e.flushPending()
	}
}

func (e *Emulator) flushPending() {
	e.pending.flush(func(id int, v string) {
		if e.host != nil {
			e.host.SessionAttributeChanged(id, v)
		}
	})
}

// handleHyperlinkOSC implements OSC 8's "<params>;<uri>" body (the leading
// id-part is stripped before the URI payload reaches the extractor, per
// §4.8): an empty uri closes the currently open link, a nonempty one opens
// a new one and toggles url-input mode so subsequent Chr tokens are also
// forwarded to the host's URL extractor until the next OSC 8.
func (e *Emulator) handleHyperlinkOSC(pv string) {
	params, uri, _ := splitOSC8(pv)

	if e.urlMode && e.host != nil {
		e.host.HyperlinkEnd()
	}
	e.urlMode = uri != ""

	e.currentScreen().SetHyperlink(uri, params)

	if e.urlMode && e.host != nil {
		e.host.HyperlinkBegin(uri)
	}
}

// splitOSC splits "Pa;Pv" on the first ';'; Pv may itself contain ';'.
func splitOSC(body string) (pa int, pv string, ok bool) {
	i := indexByte(body, ';')
	if i < 0 {
		n, err := strconv.Atoi(body)
		if err != nil {
			return 0, "", false
		}
		return n, "", true
	}
	n, err := strconv.Atoi(body[:i])
	if err != nil {
		return 0, "", false
	}
	return n, body[i+1:], true
}

// splitOSC8 splits OSC 8's "params;uri" body.
func splitOSC8(pv string) (params, uri string, ok bool) {
	i := indexByte(pv, ';')
	if i < 0 {
		return "", pv, true
	}
	return pv[:i], pv[i+1:], true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
