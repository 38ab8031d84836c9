// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "golang.org/x/exp/slices"

// Hyperlink is one OSC 8 anchor (§4.8): the URI and optional id parameter
// an active run of cells carries, plus the parsed params string xterm
// accepts (e.g. "id=xyz123").
type Hyperlink struct {
	URI    string
	ID     string
	Params string
}

// hyperlinkTable interns hyperlinks so every Cell only needs to carry a
// small index rather than a copy of the URI string; grounded on how
// aprilsh's Framebuffer interns window/icon titles as single shared
// strings rather than per-cell copies, generalized here to a dedup table
// since a single screen can have many distinct links active at once.
// slices.IndexFunc (golang.org/x/exp/slices, SPEC_FULL §11.3) does the
// dedup lookup.
type hyperlinkTable struct {
	links []Hyperlink
}

// noLinkIndex marks a cell or screen with no active link; intern returns it
// for an empty uri, and get reports false for it.
const noLinkIndex = -1

func newHyperlinkTable() *hyperlinkTable {
	return &hyperlinkTable{}
}

// intern returns the index of an existing identical link, or appends and
// returns a new one. An empty uri closes the current link (§ supplemented
// per SPEC_FULL §12.4: "OSC 8 with an empty URL ends the current link
// without opening a new one") and reports noLinkIndex.
func (t *hyperlinkTable) intern(uri, params string) int {
	if uri == "" {
		return noLinkIndex
	}
	id := parseLinkID(params)
	idx := slices.IndexFunc(t.links, func(h Hyperlink) bool {
		return h.URI == uri && h.ID == id
	})
	if idx >= 0 {
		return idx
	}
	t.links = append(t.links, Hyperlink{URI: uri, ID: id, Params: params})
	return len(t.links) - 1
}

func (t *hyperlinkTable) get(idx int) (Hyperlink, bool) {
	if idx < 0 || idx >= len(t.links) {
		return Hyperlink{}, false
	}
	return t.links[idx], true
}

// parseLinkID extracts the "id=" key from an OSC 8 params string, which
// may carry other xterm-defined keys separated by ':' (only id is
// meaningful for dedup/highlighting purposes here).
func parseLinkID(params string) string {
	for _, kv := range splitColon(params) {
		if len(kv) > 3 && kv[:3] == "id=" {
			return kv[3:]
		}
	}
	return ""
}

func splitColon(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
