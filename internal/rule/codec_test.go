package rule

import (
	"errors"
	"slices"
	"testing"
)

func TestEncode_TokenTable(t *testing.T) {
	tests := []struct {
		r    Rule
		want string
	}{
		{Rule{Simple(KindCapitalize)}, "c"},
		{Rule{Simple(KindUppercase)}, "u"},
		{Rule{Simple(KindLowercase)}, "l"},
		{Rule{Simple(KindToggleCase)}, "t"},
		{Rule{Simple(KindReverse)}, "r"},
		{Rule{Simple(KindDuplicate)}, "d"},
		{Rule{Substitute('a', '@')}, "sa@"},
		{Rule{Append('1')}, "$1"},
		{Rule{Prepend('!')}, "^!"},
		{Rule{InsertAt(3, '-')}, "i3-"},
		{Rule{DeleteAt(2)}, "o2"},
		{Rule{TruncateRight(4)}, "]4"},
		{Rule{TruncateLeft(1)}, "[1"},
		{Rule{ToggleAt(0)}, "T0"},
		{Rule{ToggleAt(12)}, "TC"},
		{Rule{}, ":"},
		{Rule{Simple(KindCapitalize), Append('1'), Append('2'), Append('3')}, "c$1$2$3"},
	}
	for _, tc := range tests {
		if got := Encode(tc.r); got != tc.want {
			t.Errorf("Encode = %q, want %q", got, tc.want)
		}
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	rules := []Rule{
		{},
		{Simple(KindCapitalize)},
		{Simple(KindUppercase), Simple(KindReverse)},
		{Substitute('a', '@'), Substitute('o', '0')},
		{Append('1'), Append('2'), Append('3')},
		{Prepend('1'), Prepend('2')},
		{InsertAt(4, '_'), DeleteAt(0)},
		{TruncateRight(3), TruncateLeft(1)},
		{ToggleAt(35)},
		{Simple(KindCapitalize), Substitute('s', '$'), Append('!'), Simple(KindDuplicate)},
		// Argument characters that collide with token characters.
		{Append('$'), Prepend('^'), Substitute('s', 's')},
	}
	for _, r := range rules {
		enc := Encode(r)
		got, err := Decode(enc)
		if err != nil {
			t.Errorf("Decode(%q): %v", enc, err)
			continue
		}
		if !slices.Equal(got, r) {
			t.Errorf("Decode(Encode(%v)) = %v", r, got)
		}
	}
}

func TestDecode_IdentityAnywhere(t *testing.T) {
	r, err := Decode(":$1$2$3")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Rule{Append('1'), Append('2'), Append('3')}
	if !slices.Equal(r, want) {
		t.Errorf("got %v, want %v", r, want)
	}
}

func TestDecode_UnknownToken(t *testing.T) {
	_, err := Decode("c?x")
	if !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("want ErrUnknownToken, got %v", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatal("want *DecodeError")
	}
	if de.Pos != 1 {
		t.Errorf("Pos = %d, want 1", de.Pos)
	}
}

func TestDecode_MissingArgument(t *testing.T) {
	for _, text := range []string{"s", "sa", "$", "^", "i", "i3", "o", "]", "[", "T"} {
		_, err := Decode(text)
		if !errors.Is(err, ErrMissingArgument) {
			t.Errorf("Decode(%q): want ErrMissingArgument, got %v", text, err)
		}
	}
}

func TestDecode_BadPositionDigit(t *testing.T) {
	// Lowercase letters are not position digits.
	if _, err := Decode("ox"); err == nil {
		t.Error("Decode(ox) succeeded, want error")
	}
}
