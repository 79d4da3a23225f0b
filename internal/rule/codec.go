package rule

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel decode failures, wrapped by DecodeError.
var (
	ErrUnknownToken    = errors.New("unknown rule token")
	ErrMissingArgument = errors.New("rule token missing argument")
)

// DecodeError reports where in the rule text decoding failed.
type DecodeError struct {
	Pos  int    // rune offset of the failing token
	Text string // the full rule text
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode rule %q at offset %d: %v", e.Text, e.Pos, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Wire tokens, one per operation kind. Character arguments follow the
// token directly; positions and counts are a single base-36 digit.
// The table matches hashcat rule syntax where the two overlap.
const (
	tokCapitalize    = 'c'
	tokUppercase     = 'u'
	tokLowercase     = 'l'
	tokToggleCase    = 't'
	tokReverse       = 'r'
	tokDuplicate     = 'd'
	tokSubstitute    = 's'
	tokAppend        = '$'
	tokPrepend       = '^'
	tokInsertAt      = 'i'
	tokDeleteAt      = 'o'
	tokTruncateRight = ']'
	tokTruncateLeft  = '['
	tokToggleAt      = 'T'
	tokIdentity      = ':'
)

// Encode renders the rule as wire text. Tokens concatenate with no
// separator; each is self-delimiting because its argument count is
// fixed by the leading token character. An empty rule encodes as the
// identity token.
func Encode(r Rule) string {
	if len(r) == 0 {
		return string(tokIdentity)
	}
	var b strings.Builder
	for _, op := range r {
		switch op.Kind {
		case KindCapitalize:
			b.WriteRune(tokCapitalize)
		case KindUppercase:
			b.WriteRune(tokUppercase)
		case KindLowercase:
			b.WriteRune(tokLowercase)
		case KindToggleCase:
			b.WriteRune(tokToggleCase)
		case KindReverse:
			b.WriteRune(tokReverse)
		case KindDuplicate:
			b.WriteRune(tokDuplicate)
		case KindSubstitute:
			b.WriteRune(tokSubstitute)
			b.WriteRune(op.From)
			b.WriteRune(op.To)
		case KindAppend:
			b.WriteRune(tokAppend)
			b.WriteRune(op.To)
		case KindPrepend:
			b.WriteRune(tokPrepend)
			b.WriteRune(op.To)
		case KindInsertAt:
			b.WriteRune(tokInsertAt)
			b.WriteRune(posDigit(op.N))
			b.WriteRune(op.To)
		case KindDeleteAt:
			b.WriteRune(tokDeleteAt)
			b.WriteRune(posDigit(op.N))
		case KindTruncateRight:
			b.WriteRune(tokTruncateRight)
			b.WriteRune(posDigit(op.N))
		case KindTruncateLeft:
			b.WriteRune(tokTruncateLeft)
			b.WriteRune(posDigit(op.N))
		case KindToggleAt:
			b.WriteRune(tokToggleAt)
			b.WriteRune(posDigit(op.N))
		}
	}
	return b.String()
}

// Decode parses wire text back into a rule. Tokens are consumed
// greedily by recognized prefix. The identity token contributes no
// operations and may appear anywhere.
func Decode(text string) (Rule, error) {
	rs := []rune(text)
	var r Rule
	i := 0
	for i < len(rs) {
		start := i
		tok := rs[i]
		i++
		need := func(n int) ([]rune, error) {
			if i+n > len(rs) {
				return nil, &DecodeError{Pos: start, Text: text, Err: ErrMissingArgument}
			}
			args := rs[i : i+n]
			i += n
			return args, nil
		}
		switch tok {
		case tokIdentity:
			// no-op
		case tokCapitalize:
			r = append(r, Simple(KindCapitalize))
		case tokUppercase:
			r = append(r, Simple(KindUppercase))
		case tokLowercase:
			r = append(r, Simple(KindLowercase))
		case tokToggleCase:
			r = append(r, Simple(KindToggleCase))
		case tokReverse:
			r = append(r, Simple(KindReverse))
		case tokDuplicate:
			r = append(r, Simple(KindDuplicate))
		case tokSubstitute:
			args, err := need(2)
			if err != nil {
				return nil, err
			}
			r = append(r, Substitute(args[0], args[1]))
		case tokAppend:
			args, err := need(1)
			if err != nil {
				return nil, err
			}
			r = append(r, Append(args[0]))
		case tokPrepend:
			args, err := need(1)
			if err != nil {
				return nil, err
			}
			r = append(r, Prepend(args[0]))
		case tokInsertAt:
			args, err := need(2)
			if err != nil {
				return nil, err
			}
			n, ok := digitPos(args[0])
			if !ok {
				return nil, &DecodeError{Pos: start, Text: text, Err: ErrMissingArgument}
			}
			r = append(r, InsertAt(n, args[1]))
		case tokDeleteAt:
			n, err := decodePos(text, start, need)
			if err != nil {
				return nil, err
			}
			r = append(r, DeleteAt(n))
		case tokTruncateRight:
			n, err := decodePos(text, start, need)
			if err != nil {
				return nil, err
			}
			r = append(r, TruncateRight(n))
		case tokTruncateLeft:
			n, err := decodePos(text, start, need)
			if err != nil {
				return nil, err
			}
			r = append(r, TruncateLeft(n))
		case tokToggleAt:
			n, err := decodePos(text, start, need)
			if err != nil {
				return nil, err
			}
			r = append(r, ToggleAt(n))
		default:
			return nil, &DecodeError{Pos: start, Text: text, Err: ErrUnknownToken}
		}
	}
	return r, nil
}

func decodePos(text string, start int, need func(int) ([]rune, error)) (int, error) {
	args, err := need(1)
	if err != nil {
		return 0, err
	}
	n, ok := digitPos(args[0])
	if !ok {
		return 0, &DecodeError{Pos: start, Text: text, Err: ErrMissingArgument}
	}
	return n, nil
}

// posDigit encodes n as a base-36 digit: 0-9 then A-Z.
func posDigit(n int) rune {
	if n < 10 {
		return rune('0' + n)
	}
	return rune('A' + n - 10)
}

func digitPos(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	}
	return 0, false
}
