// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "fmt"

// Kind is the closed set of token shapes the tokenizer can produce. The
// dispatcher switches over Kind rather than going through a name-keyed
// registry; the Go compiler does not check that switch for missing cases,
// so a Kind without a case there is ignored at run time.
type Kind uint8

const (
	// Chr is a single printable character as received; the dispatcher
	// passes it through the active charset filter.
	Chr Kind = iota
	// Ctl is a single C0 control character (0x00-0x1F).
	Ctl
	// Esc is ESC plus a single final byte, no intermediates.
	Esc
	// EscCs is ESC plus an SCS intermediate plus a final byte (charset
	// designation, e.g. ESC ( B).
	EscCs
	// EscDe is ESC '#' plus a final byte (DEC line-size/alignment).
	EscDe
	// CsiPs is CSI with a single numeric parameter and a final byte.
	CsiPs
	// CsiPn is CSI with up to two numeric parameters and a final byte.
	CsiPn
	// CsiPr is CSI '?' (DEC private) with one parameter and a final byte.
	CsiPr
	// CsiPe is CSI '!' with a final byte.
	CsiPe
	// CsiSp is CSI with a space intermediate and a final byte, no parameter.
	CsiSp
	// CsiPsp is CSI with a numeric parameter, a space intermediate, and a final byte.
	CsiPsp
	// CsiPq is CSI '=' (private) with one parameter and a final byte.
	CsiPq
	// CsiPg is CSI '>' (private) with one parameter and a final byte.
	CsiPg
	// Vt52 is a VT52-mode escape (Ansi mode off).
	Vt52
)

func (k Kind) String() string {
	switch k {
	case Chr:
		return "Chr"
	case Ctl:
		return "Ctl"
	case Esc:
		return "Esc"
	case EscCs:
		return "EscCs"
	case EscDe:
		return "EscDe"
	case CsiPs:
		return "CsiPs"
	case CsiPn:
		return "CsiPn"
	case CsiPr:
		return "CsiPr"
	case CsiPe:
		return "CsiPe"
	case CsiSp:
		return "CsiSp"
	case CsiPsp:
		return "CsiPsp"
	case CsiPq:
		return "CsiPq"
	case CsiPg:
		return "CsiPg"
	case Vt52:
		return "Vt52"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MaxArgs bounds the number of numeric CSI parameters retained per token
// (§3 TokenizerState.argv, "MAXARGS (e.g. 15)").
const MaxArgs = 15

// MaxArgument clamps any single numeric parameter (§3, §5, §8).
const MaxArgument = 40960

// MaxTokenLength bounds the tokenizer's code-point buffer (§3, §5).
const MaxTokenLength = 80 * 1024

// Token is the immutable value the tokenizer hands to the dispatcher.
// Ch is the final byte for escape/CSI kinds, or the character itself for
// Chr/Ctl. Arg and Arg2 carry the first two numeric parameters (CsiPn), the
// 38/48 selector and color-space tag for SGR RGB/256-color, or the row and
// column for Vt52 'Y'; Args holds the rest of a parameter vector where a
// token needs it (the window-op 't' and DECRQCRA parameters, or the
// r;g;b / palette index of an SGR color token, §4.2).
type Token struct {
	Kind Kind
	Ch   rune
	Arg  int
	Arg2 int
	Args []int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q,%d,%d,%v)", t.Kind, t.Ch, t.Arg, t.Arg2, t.Args)
}
