// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"strings"
	"testing"
)

// recordingSink captures every token/OSC/error a Tokenizer produces, for
// tests that exercise the tokenizer in isolation from the dispatcher.
type recordingSink struct {
	tokens []Token
	oscs   []string
	oscTerminators []rune
	errs   [][]rune
}

func (s *recordingSink) Dispatch(t Token) { s.tokens = append(s.tokens, t) }
func (s *recordingSink) HandleOSC(pv string, terminator rune) {
	s.oscs = append(s.oscs, pv)
	s.oscTerminators = append(s.oscTerminators, terminator)
}
func (s *recordingSink) ReportDecodingError(buf []rune) {
	s.errs = append(s.errs, append([]rune(nil), buf...))
}

func TestTokenizeBasicForms(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want Token
	}{
		{"plain char", "a", Token{Kind: Chr, Ch: 'a'}},
		{"esc final", "\x1BD", Token{Kind: Esc, Ch: 'D'}},
		{"esc pound", "\x1B#8", Token{Kind: EscDe, Ch: '8'}},
		{"csi ps", "\x1B[2J", Token{Kind: CsiPs, Ch: 'J', Arg: 2}},
		{"csi pn two args", "\x1B[5;10H", Token{Kind: CsiPn, Ch: 'H', Arg: 5, Arg2: 10}},
		{"csi private", "\x1B[?25h", Token{Kind: CsiPr, Ch: 'h', Arg: 25}},
		{"csi gt (DA2)", "\x1B[>c", Token{Kind: CsiPg, Ch: 'c', Arg: 0}},
		{"csi eq (DA3)", "\x1B[=c", Token{Kind: CsiPq, Ch: 'c', Arg: 0}},
		{"csi bang (soft reset)", "\x1B[!p", Token{Kind: CsiPe, Ch: 'p'}},
	}

	for _, v := range tc {
		t.Run(v.name, func(t *testing.T) {
			sink := &recordingSink{}
			tz := NewTokenizer(sink)
			tz.Feed([]rune(v.in))

			if len(sink.tokens) != 1 {
				t.Fatalf("%s: expect exactly 1 token, got %d: %v", v.name, len(sink.tokens), sink.tokens)
			}
			got := sink.tokens[0]
			if got.Kind != v.want.Kind || got.Ch != v.want.Ch || got.Arg != v.want.Arg || got.Arg2 != v.want.Arg2 {
				t.Errorf("%s: expect %v, got %v", v.name, v.want, got)
			}
		})
	}
}

func TestTokenizeCsiSpaceIntermediate(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	tz.Feed([]rune("\x1B[2 q"))

	if len(sink.tokens) != 1 {
		t.Fatalf("expect 1 token, got %d", len(sink.tokens))
	}
	got := sink.tokens[0]
	if got.Kind != CsiPsp || got.Ch != 'q' || got.Arg != 2 {
		t.Errorf("expect CsiPsp('q',2), got %v", got)
	}
}

func TestTokenizeSGRRGBAndIndexed(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	tz.Feed([]rune("\x1B[38;2;10;20;30;1m"))

	if len(sink.tokens) != 2 {
		t.Fatalf("expect 2 SGR tokens (rgb fg + bold), got %d: %v", len(sink.tokens), sink.tokens)
	}
	rgb := sink.tokens[0]
	if rgb.Arg != 38 || ColorSpace(rgb.Arg2) != ColorSpaceRGB {
		t.Fatalf("expect fg rgb token, got %v", rgb)
	}
	if len(rgb.Args) != 3 || rgb.Args[0] != 10 || rgb.Args[1] != 20 || rgb.Args[2] != 30 {
		t.Errorf("expect rgb args [10 20 30], got %v", rgb.Args)
	}
	bold := sink.tokens[1]
	if bold.Arg != 1 {
		t.Errorf("expect trailing bold(1) token, got %v", bold)
	}
}

func TestTokenizeSGR256Color(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	tz.Feed([]rune("\x1B[48;5;200m"))

	if len(sink.tokens) != 1 {
		t.Fatalf("expect 1 token, got %d", len(sink.tokens))
	}
	got := sink.tokens[0]
	if got.Arg != 48 || ColorSpace(got.Arg2) != ColorSpace256 || len(got.Args) != 1 || got.Args[0] != 200 {
		t.Errorf("expect bg 256-color(200), got %v", got)
	}
}

func TestTokenizeOSCTerminators(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
		term rune
	}{
		{"BEL terminated", "\x1B]0;title\x07", "0;title", 0x07},
		{"ST terminated", "\x1B]0;title\x1B\\", "0;title", 0x1B},
	}

	for _, v := range tc {
		t.Run(v.name, func(t *testing.T) {
			sink := &recordingSink{}
			tz := NewTokenizer(sink)
			tz.Feed([]rune(v.in))

			if len(sink.oscs) != 1 || sink.oscs[0] != v.want {
				t.Fatalf("expect OSC body %q, got %v", v.want, sink.oscs)
			}
			if sink.oscTerminators[0] != v.term {
				t.Errorf("expect terminator %q, got %q", v.term, sink.oscTerminators[0])
			}
		})
	}
}

// §4.1/§9: an OSC terminated by "ESC <other>" (not ST) re-feeds <other> so
// it is processed as if it had arrived outside the OSC.
func TestTokenizeOSCEscOtherRefeed(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	tz.Feed([]rune("\x1B]0;title\x1BZ"))

	if len(sink.oscs) != 1 || sink.oscs[0] != "0;title" {
		t.Fatalf("expect OSC body %q, got %v", "0;title", sink.oscs)
	}
	if len(sink.tokens) != 1 || sink.tokens[0].Kind != Chr || sink.tokens[0].Ch != 'Z' {
		t.Fatalf("expect the refed 'Z' to tokenize as a plain Chr, got %v", sink.tokens)
	}
}

func TestTokenizeDCSConsumedAndIgnored(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	tz.Feed([]rune("\x1BPsomething\x1B\\A"))

	if len(sink.tokens) != 1 || sink.tokens[0].Kind != Chr || sink.tokens[0].Ch != 'A' {
		t.Fatalf("expect only the trailing 'A' to tokenize, got %v", sink.tokens)
	}
}

// §8 boundary: a parameter value beyond MaxArgument clamps rather than
// overflowing.
func TestArgumentClamping(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	tz.Feed([]rune("\x1B[99999999;5H"))

	if len(sink.tokens) != 1 {
		t.Fatalf("expect 1 token, got %d", len(sink.tokens))
	}
	got := sink.tokens[0]
	if got.Arg != MaxArgument {
		t.Errorf("expect clamped arg %d, got %d", MaxArgument, got.Arg)
	}
}

// §8 boundary: 17 ';'-separated parameters stop accumulating at
// MaxArgs-1 rather than overflowing argv.
func TestArgumentCountClamping(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	seq := "\x1B[" + strings.Repeat("1;", 17) + "m"
	tz.Feed([]rune(seq))

	// every dispatched SGR token must have come from a clamped argc.
	if len(sink.tokens) == 0 {
		t.Fatal("expect at least one SGR token")
	}
	if len(sink.tokens) > MaxArgs {
		t.Errorf("expect at most %d dispatched SGR tokens, got %d", MaxArgs, len(sink.tokens))
	}
}

// §7.3 buffer overflow: an oversized token's newest bytes overwrite the
// last slot rather than growing memory without bound, so a pathologically
// long CSI sequence still resolves to exactly one (argument-clamped)
// token and leaves the tokenizer in a clean state for what follows.
func TestBufferOverflowStillResolvesAndResets(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)

	huge := make([]rune, 0, MaxTokenLength+100)
	huge = append(huge, 0x1B, '[', '9')
	for i := 0; i < MaxTokenLength+50; i++ {
		huge = append(huge, '9')
	}
	huge = append(huge, 'X') // EraseChars, a recognized CPN final
	tz.Feed(huge)

	if len(sink.tokens) != 1 {
		t.Fatalf("expect exactly one token despite the oversized buffer, got %d", len(sink.tokens))
	}
	if sink.tokens[0].Kind != CsiPn || sink.tokens[0].Ch != 'X' || sink.tokens[0].Arg != MaxArgument {
		t.Errorf("expect CsiPn('X', %d), got %v", MaxArgument, sink.tokens[0])
	}

	// tokenizer must be reset and ready for ordinary input afterward.
	sink.tokens = nil
	tz.Feed([]rune("a"))
	if len(sink.tokens) != 1 || sink.tokens[0].Kind != Chr || sink.tokens[0].Ch != 'a' {
		t.Errorf("expect a clean Chr('a') after the overflow sequence, got %v", sink.tokens)
	}
}

func TestCANSUBAbortSequence(t *testing.T) {
	tc := []struct {
		name string
		ctl  rune
	}{
		{"CAN", 0x18},
		{"SUB", 0x1A},
	}
	for _, v := range tc {
		t.Run(v.name, func(t *testing.T) {
			sink := &recordingSink{}
			tz := NewTokenizer(sink)
			tz.Feed([]rune{0x1B, '[', '3', v.ctl})
			tz.Feed([]rune("1m"))

			// after the abort, "1m" is a fresh sequence with no CSI prefix:
			// '1' and 'm' each tokenize as plain characters.
			var chrs []rune
			for _, tok := range sink.tokens {
				if tok.Kind == Chr {
					chrs = append(chrs, tok.Ch)
				}
			}
			if string(chrs) != "1m" {
				t.Errorf("expect plain chars %q after abort, got %q", "1m", string(chrs))
			}
		})
	}
}

func TestVt52Mode(t *testing.T) {
	sink := &recordingSink{}
	tz := NewTokenizer(sink)
	tz.SetAnsiMode(false)

	tz.Feed([]rune("\x1BA"))
	if len(sink.tokens) != 1 || sink.tokens[0].Kind != Vt52 || sink.tokens[0].Ch != 'A' {
		t.Fatalf("expect Vt52('A'), got %v", sink.tokens)
	}

	sink.tokens = nil
	tz.Feed([]rune("\x1BY%9"))
	if len(sink.tokens) != 1 || sink.tokens[0].Kind != Vt52 || sink.tokens[0].Ch != 'Y' {
		t.Fatalf("expect Vt52('Y', row, col), got %v", sink.tokens)
	}
	if sink.tokens[0].Arg != int('%') || sink.tokens[0].Arg2 != int('9') {
		t.Errorf("expect row/col bytes (%d,%d), got (%d,%d)", int('%'), int('9'), sink.tokens[0].Arg, sink.tokens[0].Arg2)
	}
}
