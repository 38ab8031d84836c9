// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package keytab builds a terminal.BindingTable from a terminfo database,
// so a host can wire real keyboard capability strings into the core's
// Keyboard Encoder (vtcore/terminal) without the core itself ever knowing
// terminfo exists.
package keytab

import (
	"fmt"
	"os"

	"github.com/ericwq/terminfo"
	_ "github.com/ericwq/terminfo/base"

	"github.com/wqhelper/vtcore/terminal"
	"github.com/wqhelper/vtcore/util"
)

// entry holds the literal text a key sends, optionally split between
// normal (ANSI) and application cursor-key mode — the only place the two
// forms genuinely differ in practice (arrow keys under DECCKM).
type entry struct {
	normal string
	app    string // used when set and ModeAppCuKeys (stateMask bit 4) is on
}

// appCuKeysBit mirrors terminal's stateMask bit 4 (Emulator.stateMask,
// ModeAppCuKeys) without importing an internal constant for it.
const appCuKeysBit = 4

// Table is a terminfo-backed terminal.BindingTable (§4.5's "external" key
// binding table).
type Table struct {
	entries map[string]entry
}

// capability names follow ncurses/infocmp conventions; capByName maps each
// one to its field of github.com/ericwq/terminfo's Terminfo.
var capKeys = map[string]string{
	"Up":        "kcuu1",
	"Down":      "kcud1",
	"Right":     "kcuf1",
	"Left":      "kcub1",
	"Home":      "khome",
	"End":       "kend",
	"PageUp":    "kpp",
	"PageDown":  "knp",
	"Insert":    "kich1",
	"Delete":    "kdch1",
	"Backspace": "kbs",
	"BackTab":   "kcbt",
	"F1":        "kf1",
	"F2":        "kf2",
	"F3":        "kf3",
	"F4":        "kf4",
	"F5":        "kf5",
	"F6":        "kf6",
	"F7":        "kf7",
	"F8":        "kf8",
	"F9":        "kf9",
	"F10":       "kf10",
	"F11":       "kf11",
	"F12":       "kf12",
}

// ansiArrows is the hardcoded CSI fallback for cursor keys outside
// application mode: terminfo's kcuuN strings are the DECCKM/application
// sequences (e.g. xterm's kcuu1 is "\EOA"), and there is no companion
// "ansi mode" capability to look up, so the plain CSI form is used when
// ModeAppCuKeys is off.
var ansiArrows = map[string]string{
	"Up":    "\x1B[A",
	"Down":  "\x1B[B",
	"Right": "\x1B[C",
	"Left":  "\x1B[D",
}

// NewTable queries the terminfo database for $TERM via the
// github.com/ericwq/terminfo package and builds a Table from whatever capabilities it
// reports, logging (not failing) on any capability it cannot resolve.
func NewTable() *Table {
	ti, err := terminfo.LookupTerminfo(os.Getenv("TERM"))
	if err != nil {
		util.Logger.Warn("keytab: terminfo lookup failed", "term", os.Getenv("TERM"), "err", err)
		ti = &terminfo.Terminfo{}
	}
	return newTableFrom(func(capName string) (string, bool) {
		s, ok := capByName(ti, capName)
		return s, ok && s != ""
	})
}

// capByName maps the ncurses/infocmp capability names used in capKeys to
// the corresponding field on terminfo.Terminfo, since that package exposes
// capabilities as named struct fields rather than a name-keyed lookup.
func capByName(ti *terminfo.Terminfo, capName string) (string, bool) {
	switch capName {
	case "kcuu1":
		return ti.KeyUp, true
	case "kcud1":
		return ti.KeyDown, true
	case "kcuf1":
		return ti.KeyRight, true
	case "kcub1":
		return ti.KeyLeft, true
	case "khome":
		return ti.KeyHome, true
	case "kend":
		return ti.KeyEnd, true
	case "kpp":
		return ti.KeyPgUp, true
	case "knp":
		return ti.KeyPgDn, true
	case "kich1":
		return ti.KeyInsert, true
	case "kdch1":
		return ti.KeyDelete, true
	case "kbs":
		return ti.KeyBackspace, true
	case "kcbt":
		return ti.KeyBacktab, true
	case "kf1":
		return ti.KeyF1, true
	case "kf2":
		return ti.KeyF2, true
	case "kf3":
		return ti.KeyF3, true
	case "kf4":
		return ti.KeyF4, true
	case "kf5":
		return ti.KeyF5, true
	case "kf6":
		return ti.KeyF6, true
	case "kf7":
		return ti.KeyF7, true
	case "kf8":
		return ti.KeyF8, true
	case "kf9":
		return ti.KeyF9, true
	case "kf10":
		return ti.KeyF10, true
	case "kf11":
		return ti.KeyF11, true
	case "kf12":
		return ti.KeyF12, true
	default:
		return "", false
	}
}

func newTableFrom(lookup func(capName string) (string, bool)) *Table {
	t := &Table{entries: make(map[string]entry)}
	for key, capName := range capKeys {
		s, ok := lookup(capName)
		if !ok || s == "" {
			util.Logger.Warn("keytab: capability not found", "key", key, "cap", capName)
			continue
		}
		e := entry{normal: s}
		if app, isArrow := ansiArrows[key]; isArrow {
			e.app = s
			e.normal = app
		}
		t.entries[key] = e
	}
	return t
}

// Lookup implements terminal.BindingTable.
func (t *Table) Lookup(key string, mods terminal.Modifiers, stateMask int) (terminal.Binding, bool) {
	e, ok := t.entries[key]
	if !ok {
		return terminal.Binding{}, false
	}
	text := e.normal
	if e.app != "" && stateMask&appCuKeysBit != 0 {
		text = e.app
	}
	return terminal.Binding{Text: text}, true
}

// String reports how many capabilities this table resolved, for
// diagnostic logging at startup.
func (t *Table) String() string {
	return fmt.Sprintf("keytab.Table{%d bindings}", len(t.entries))
}
