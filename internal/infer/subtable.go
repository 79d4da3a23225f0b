package infer

import "sort"

// SubTable maps a base character to the substitute characters commonly
// seen for it in leaked corpora. The engine consumes the table as
// opaque input; callers may override it from configuration.
type SubTable map[rune][]rune

// DefaultSubstitutions returns the classic single-character leet
// table.
func DefaultSubstitutions() SubTable {
	return SubTable{
		'a': {'@', '4'},
		'b': {'8'},
		'e': {'3'},
		'g': {'9'},
		'i': {'1', '!'},
		'l': {'1'},
		'o': {'0'},
		's': {'$', '5'},
		't': {'7', '+'},
		'z': {'2'},
	}
}

// Allows reports whether to is a known substitute for base char from.
func (t SubTable) Allows(from, to rune) bool {
	for _, c := range t[from] {
		if c == to {
			return true
		}
	}
	return false
}

// inverse builds the reverse mapping used for leet normalization. When
// one substitute serves several base characters, the lexicographically
// smallest base wins so normalization stays deterministic.
func (t SubTable) inverse() map[rune]rune {
	keys := make([]rune, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	inv := make(map[rune]rune)
	for _, from := range keys {
		for _, to := range t[from] {
			if _, ok := inv[to]; !ok {
				inv[to] = from
			}
		}
	}
	return inv
}
