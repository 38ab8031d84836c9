// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Mode identifies one of the ~20 boolean modes tracked by ModeRegistry
// (§3 ModeSet). Modes below modesScreenBoundary are screen-scoped: the
// spec requires them "forwarded to both screens, so that saved-mode
// restoration on a screen switch is symmetric" (§4.3) — NewLine is the
// one exception living above the boundary that is still forwarded.
type Mode int

const (
	ModeCursor Mode = iota
	ModeInsert
	ModeOrigin
	ModeWrap
	ModeReverseVideo
	modesScreenBoundary // modes before this line are screen-scoped

	ModeNewLine // forwarded to both screens despite being above the boundary
	ModeAnsi
	ModeAppCuKeys
	ModeAppKeyPad
	ModeAppScreen
	ModeMouse1000
	ModeMouse1001
	ModeMouse1002
	ModeMouse1003
	ModeMouse1005
	ModeMouse1006
	ModeMouse1007
	ModeMouse1015
	ModeCol132
	ModeAllow132Columns
	ModeBracketedPaste
	ModeReportFocusEvents // supplemented per SPEC_FULL §12.5, independent of BracketedPaste

	modeCount
)

var mouseTrackingModes = [4]Mode{ModeMouse1000, ModeMouse1001, ModeMouse1002, ModeMouse1003}
var mouseEncodingModes = [3]Mode{ModeMouse1005, ModeMouse1006, ModeMouse1015}

// Hooks receives the side effects of mode transitions that reach outside
// the mode set itself (§4.3, §6's discrete host events and the handful of
// Screen calls a mode flip triggers). An Emulator supplies the concrete
// implementation; ModeRegistry never touches Screen or the host sink
// directly so it stays independently testable.
type Hooks interface {
	MouseTrackingChanged(enabled bool)
	AlternateScrollingChanged(enabled bool)
	BracketedPasteChanged(enabled bool)
	Columns132Changed(enabled bool)
	AlternateScreenChanged(enabled bool)
	ForwardModeToScreens(m Mode, value bool)
}

// ModeRegistry tracks current and saved mode values (§3 ModeSet: "Two
// instances: current and saved").
type ModeRegistry struct {
	current [modeCount]bool
	saved   [modeCount]bool
}

// NewModeRegistry builds a registry with every mode at its power-on
// default: only Ansi is set.
func NewModeRegistry() *ModeRegistry {
	mr := &ModeRegistry{}
	mr.current[ModeAnsi] = true
	return mr
}

func (mr *ModeRegistry) Get(m Mode) bool {
	return mr.current[m]
}

// Set applies setMode(m) and its side effects (§4.3).
func (mr *ModeRegistry) Set(m Mode, h Hooks) {
	mr.transition(m, true, h)
}

// Reset applies resetMode(m) and its side effects (§4.3).
func (mr *ModeRegistry) Reset(m Mode, h Hooks) {
	mr.transition(m, false, h)
}

func (mr *ModeRegistry) transition(m Mode, value bool, h Hooks) {
	switch m {
	case ModeCol132:
		if value {
			if !mr.current[ModeAllow132Columns] {
				return // silently no-op on set when not allowed
			}
		}
		mr.current[m] = value
		if h != nil {
			h.Columns132Changed(value)
		}
		return

	case ModeMouse1000, ModeMouse1001, ModeMouse1002, ModeMouse1003:
		for _, mm := range mouseTrackingModes {
			mr.current[mm] = false
		}
		if value {
			mr.current[m] = true
		}
		if h != nil {
			h.MouseTrackingChanged(value)
		}
		return

	case ModeMouse1005, ModeMouse1006, ModeMouse1015:
		if value {
			for _, mm := range mouseEncodingModes {
				if mm != m {
					mr.current[mm] = false
				}
			}
		}
		mr.current[m] = value
		return

	case ModeMouse1007:
		mr.current[m] = value
		if h != nil {
			h.AlternateScrollingChanged(value)
		}
		return

	case ModeBracketedPaste:
		mr.current[m] = value
		if h != nil {
			h.BracketedPasteChanged(value)
		}
		return

	case ModeAppScreen:
		mr.current[m] = value
		if h != nil {
			h.AlternateScreenChanged(value)
		}
		return
	}

	mr.current[m] = value
	if (m < modesScreenBoundary || m == ModeNewLine) && h != nil {
		h.ForwardModeToScreens(m, value)
	}
}

// SaveMode copies the current value of m into the saved set.
func (mr *ModeRegistry) SaveMode(m Mode) {
	mr.saved[m] = mr.current[m]
}

// RestoreMode restores m from the saved set, re-running the same
// side-effect transition so invariants M1/M2 and host events stay
// consistent (§8: "final mode equals the saved value regardless of
// intervening set/reset except for side effects").
func (mr *ModeRegistry) RestoreMode(m Mode, h Hooks) {
	mr.transition(m, mr.saved[m], h)
}

// ResetAll restores every mode to its post-power-on default, preserving
// Allow132Columns and Mouse1007 (invariant M3), and re-sets Ansi.
func (mr *ModeRegistry) ResetAll(h Hooks) {
	allow132 := mr.current[ModeAllow132Columns]
	mouse1007 := mr.current[ModeMouse1007]

	*mr = ModeRegistry{}
	mr.current[ModeAnsi] = true
	mr.current[ModeAllow132Columns] = allow132
	mr.current[ModeMouse1007] = mouse1007
}
