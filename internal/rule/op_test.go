package rule

import "testing"

func TestApply_CaseOps(t *testing.T) {
	tests := []struct {
		name string
		r    Rule
		in   string
		want string
	}{
		{"capitalize", Rule{Simple(KindCapitalize)}, "password", "Password"},
		{"capitalize empty", Rule{Simple(KindCapitalize)}, "", ""},
		{"capitalize leaves rest", Rule{Simple(KindCapitalize)}, "pASS", "PASS"},
		{"uppercase", Rule{Simple(KindUppercase)}, "pass", "PASS"},
		{"lowercase", Rule{Simple(KindLowercase)}, "PaSs", "pass"},
		{"toggle", Rule{Simple(KindToggleCase)}, "PaSs1", "pAsS1"},
		{"toggle at", Rule{ToggleAt(0)}, "password", "Password"},
		{"toggle at clamped", Rule{ToggleAt(35)}, "abc", "abC"},
	}
	for _, tc := range tests {
		if got := tc.r.Apply(tc.in); got != tc.want {
			t.Errorf("%s: Apply(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestApply_StructuralOps(t *testing.T) {
	tests := []struct {
		name string
		r    Rule
		in   string
		want string
	}{
		{"reverse", Rule{Simple(KindReverse)}, "abc", "cba"},
		{"reverse empty", Rule{Simple(KindReverse)}, "", ""},
		{"duplicate", Rule{Simple(KindDuplicate)}, "ab", "abab"},
		{"substitute all", Rule{Substitute('a', '@')}, "banana", "b@n@n@"},
		{"substitute absent", Rule{Substitute('z', '!')}, "abc", "abc"},
		{"append", Rule{Append('1')}, "pass", "pass1"},
		{"prepend", Rule{Prepend('!')}, "pass", "!pass"},
		{"insert mid", Rule{InsertAt(2, '-')}, "abcd", "ab-cd"},
		{"insert past end clamps", Rule{InsertAt(9, 'x')}, "ab", "abx"},
		{"delete mid", Rule{DeleteAt(1)}, "abc", "ac"},
		{"delete past end clamps", Rule{DeleteAt(9)}, "abc", "ab"},
		{"delete empty", Rule{DeleteAt(0)}, "", ""},
		{"truncate right", Rule{TruncateRight(2)}, "abcde", "abc"},
		{"truncate right all", Rule{TruncateRight(9)}, "abc", ""},
		{"truncate left", Rule{TruncateLeft(2)}, "abcde", "cde"},
		{"truncate left all", Rule{TruncateLeft(9)}, "abc", ""},
	}
	for _, tc := range tests {
		if got := tc.r.Apply(tc.in); got != tc.want {
			t.Errorf("%s: Apply(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestApply_Sequence(t *testing.T) {
	// c $1 $2 $3 over "password" is the classic capitalize-and-append.
	r := Rule{Simple(KindCapitalize), Append('1'), Append('2'), Append('3')}
	if got := r.Apply("password"); got != "Password123" {
		t.Errorf("got %q, want %q", got, "Password123")
	}
}

func TestApply_EmptyRule(t *testing.T) {
	if got := (Rule{}).Apply("word"); got != "word" {
		t.Errorf("empty rule changed input: %q", got)
	}
}

func TestApply_Unicode(t *testing.T) {
	r := Rule{Simple(KindReverse)}
	if got := r.Apply("héllo"); got != "olléh" {
		t.Errorf("rune handling broken: %q", got)
	}
}

func TestConstructors_ClampPositions(t *testing.T) {
	if op := DeleteAt(99); op.N != 35 {
		t.Errorf("DeleteAt(99).N = %d, want 35", op.N)
	}
	if op := InsertAt(-3, 'x'); op.N != 0 {
		t.Errorf("InsertAt(-3).N = %d, want 0", op.N)
	}
}
