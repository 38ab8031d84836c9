// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keytab

import "testing"

// fakeTerminfo stands in for a real "infocmp"-backed database so these
// tests never shell out or depend on $TERM.
func fakeTerminfo(capName string) (string, bool) {
	db := map[string]string{
		"kcuu1": "\x1BOA",
		"kcud1": "\x1BOB",
		"kbs":   "\x7F",
		"kdch1": "\x1B[3~",
		"kf1":   "\x1BOP",
	}
	v, ok := db[capName]
	return v, ok
}

func TestNewTableFromResolvesKnownCapabilities(t *testing.T) {
	tbl := newTableFrom(fakeTerminfo)

	b, ok := tbl.Lookup("Backspace", 0, 0)
	if !ok || b.Text != "\x7F" {
		t.Fatalf("expect Backspace bound to %q, got (%v,%v)", "\x7F", b, ok)
	}

	b, ok = tbl.Lookup("F1", 0, 0)
	if !ok || b.Text != "\x1BOP" {
		t.Fatalf("expect F1 bound to %q, got (%v,%v)", "\x1BOP", b, ok)
	}
}

func TestNewTableFromSkipsUnresolvedCapabilities(t *testing.T) {
	tbl := newTableFrom(fakeTerminfo)

	if _, ok := tbl.Lookup("Home", 0, 0); ok {
		t.Error("expect Home absent when khome is not in the database")
	}
}

// arrow keys use the hardcoded ANSI CSI form outside application
// cursor-key mode, and the terminfo string once ModeAppCuKeys is on.
func TestLookupArrowKeysModeSwitch(t *testing.T) {
	tbl := newTableFrom(fakeTerminfo)

	b, ok := tbl.Lookup("Up", 0, 0)
	if !ok || b.Text != "\x1B[A" {
		t.Fatalf("expect ANSI Up %q outside app mode, got (%v,%v)", "\x1B[A", b, ok)
	}

	b, ok = tbl.Lookup("Up", 0, appCuKeysBit)
	if !ok || b.Text != "\x1BOA" {
		t.Fatalf("expect application Up %q under AppCuKeys, got (%v,%v)", "\x1BOA", b, ok)
	}
}

func TestLookupUnknownKey(t *testing.T) {
	tbl := newTableFrom(fakeTerminfo)
	if _, ok := tbl.Lookup("Nonexistent", 0, 0); ok {
		t.Error("expect an unbound key to report ok=false")
	}
}
