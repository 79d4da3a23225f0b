package mask

import (
	"errors"
	"fmt"
	"math/big"
)

// Construction failures, wrapped by MaskError.
var (
	ErrEmptyCharClass    = errors.New("character class is empty")
	ErrUnknownClassToken = errors.New("unknown character class token")
)

// MaskError reports where in the pattern construction failed.
type MaskError struct {
	Pattern string
	Pos     int // rune offset of the failing segment
	Err     error
}

func (e *MaskError) Error() string {
	return fmt.Sprintf("mask %q at offset %d: %v", e.Pattern, e.Pos, e.Err)
}

func (e *MaskError) Unwrap() error { return e.Err }

// Segment is one mask position: either a literal character or a
// character class expansion.
type Segment struct {
	Chars   []rune
	Literal bool
}

// Mask is a validated, ordered sequence of segments.
type Mask struct {
	Pattern  string
	Segments []Segment
}

// Parse validates pattern into a Mask. '?X' references a built-in
// class (l u d s a h) or a custom class ('?1'..'?9', indexed into
// custom), '??' is a literal question mark, and any other character is
// a literal. Every segment must resolve to at least one character;
// validation happens here, before any generation begins.
func Parse(pattern string, custom []string) (Mask, error) {
	rs := []rune(pattern)
	m := Mask{Pattern: pattern}
	for i := 0; i < len(rs); {
		if rs[i] != '?' {
			m.Segments = append(m.Segments, Segment{Chars: []rune{rs[i]}, Literal: true})
			i++
			continue
		}
		if i+1 >= len(rs) {
			return Mask{}, &MaskError{Pattern: pattern, Pos: i, Err: ErrUnknownClassToken}
		}
		marker := rs[i+1]
		if marker == '?' {
			m.Segments = append(m.Segments, Segment{Chars: []rune{'?'}, Literal: true})
			i += 2
			continue
		}
		chars, ok := classFor(marker, custom)
		if !ok {
			return Mask{}, &MaskError{Pattern: pattern, Pos: i, Err: ErrUnknownClassToken}
		}
		if len(chars) == 0 {
			return Mask{}, &MaskError{Pattern: pattern, Pos: i, Err: ErrEmptyCharClass}
		}
		m.Segments = append(m.Segments, Segment{Chars: []rune(chars)})
		i += 2
	}
	return m, nil
}

// EstimateSize returns the exact number of words the mask expands to,
// the product of per-segment class sizes, without enumerating. Callers
// generating from untrusted masks should check this before iterating.
func EstimateSize(m Mask) *big.Int {
	size := big.NewInt(1)
	for _, seg := range m.Segments {
		size.Mul(size, big.NewInt(int64(len(seg.Chars))))
	}
	return size
}
