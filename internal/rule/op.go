package rule

import (
	"strings"
	"unicode"
)

// Kind identifies one transformation operation.
type Kind int

const (
	KindCapitalize Kind = iota // uppercase the first rune
	KindUppercase              // uppercase the whole word
	KindLowercase              // lowercase the whole word
	KindToggleCase             // swap case of every rune
	KindReverse                // reverse the word
	KindDuplicate              // append the word to itself
	KindSubstitute             // replace every From with To
	KindAppend                 // append To
	KindPrepend                // prepend To
	KindInsertAt               // insert To at position N
	KindDeleteAt               // delete the rune at position N
	KindTruncateRight          // drop N runes from the right
	KindTruncateLeft           // drop N runes from the left
	KindToggleAt               // swap case of the rune at position N
)

// maxPos is the largest encodable position or count. Positions are a
// single base-36 digit on the wire, matching hashcat rule files.
const maxPos = 35

// Op is one atomic transformation. From and To carry character
// arguments, N carries a position or count. Ops are comparable, so
// rules can be compared with slices.Equal.
type Op struct {
	Kind Kind
	From rune
	To   rune
	N    int
}

// Rule is an ordered operation sequence applied left to right.
type Rule []Op

// Simple returns an argument-free operation.
func Simple(k Kind) Op { return Op{Kind: k} }

// Substitute replaces every occurrence of from with to.
func Substitute(from, to rune) Op { return Op{Kind: KindSubstitute, From: from, To: to} }

// Append appends c to the word.
func Append(c rune) Op { return Op{Kind: KindAppend, To: c} }

// Prepend prepends c to the word.
func Prepend(c rune) Op { return Op{Kind: KindPrepend, To: c} }

// InsertAt inserts c at position n, clamped to the word length.
func InsertAt(n int, c rune) Op { return Op{Kind: KindInsertAt, To: c, N: clampPos(n)} }

// DeleteAt deletes the rune at position n, clamped to the last rune.
func DeleteAt(n int) Op { return Op{Kind: KindDeleteAt, N: clampPos(n)} }

// TruncateRight drops n runes from the end of the word.
func TruncateRight(n int) Op { return Op{Kind: KindTruncateRight, N: clampPos(n)} }

// TruncateLeft drops n runes from the start of the word.
func TruncateLeft(n int) Op { return Op{Kind: KindTruncateLeft, N: clampPos(n)} }

// ToggleAt swaps the case of the rune at position n.
func ToggleAt(n int) Op { return Op{Kind: KindToggleAt, N: clampPos(n)} }

func clampPos(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxPos {
		return maxPos
	}
	return n
}

// Apply runs the rule against input, one operation at a time. It is
// total: every operation is defined on every string, including the
// empty string, and positional operations clamp to the nearest valid
// position instead of failing.
func (r Rule) Apply(input string) string {
	s := input
	for _, op := range r {
		s = op.apply(s)
	}
	return s
}

func (op Op) apply(s string) string {
	switch op.Kind {
	case KindCapitalize:
		rs := []rune(s)
		if len(rs) == 0 {
			return s
		}
		rs[0] = unicode.ToUpper(rs[0])
		return string(rs)
	case KindUppercase:
		return strings.ToUpper(s)
	case KindLowercase:
		return strings.ToLower(s)
	case KindToggleCase:
		rs := []rune(s)
		for i, c := range rs {
			rs[i] = toggleRune(c)
		}
		return string(rs)
	case KindReverse:
		rs := []rune(s)
		for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
			rs[i], rs[j] = rs[j], rs[i]
		}
		return string(rs)
	case KindDuplicate:
		return s + s
	case KindSubstitute:
		return strings.ReplaceAll(s, string(op.From), string(op.To))
	case KindAppend:
		return s + string(op.To)
	case KindPrepend:
		return string(op.To) + s
	case KindInsertAt:
		rs := []rune(s)
		n := op.N
		if n > len(rs) {
			n = len(rs)
		}
		out := make([]rune, 0, len(rs)+1)
		out = append(out, rs[:n]...)
		out = append(out, op.To)
		out = append(out, rs[n:]...)
		return string(out)
	case KindDeleteAt:
		rs := []rune(s)
		if len(rs) == 0 {
			return s
		}
		n := op.N
		if n >= len(rs) {
			n = len(rs) - 1
		}
		return string(append(rs[:n], rs[n+1:]...))
	case KindTruncateRight:
		rs := []rune(s)
		if op.N >= len(rs) {
			return ""
		}
		return string(rs[:len(rs)-op.N])
	case KindTruncateLeft:
		rs := []rune(s)
		if op.N >= len(rs) {
			return ""
		}
		return string(rs[op.N:])
	case KindToggleAt:
		rs := []rune(s)
		if len(rs) == 0 {
			return s
		}
		n := op.N
		if n >= len(rs) {
			n = len(rs) - 1
		}
		rs[n] = toggleRune(rs[n])
		return string(rs)
	}
	return s
}

func toggleRune(c rune) rune {
	if unicode.IsUpper(c) {
		return unicode.ToLower(c)
	}
	if unicode.IsLower(c) {
		return unicode.ToUpper(c)
	}
	return c
}
