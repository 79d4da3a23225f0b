package mask

import (
	"math/big"
	"testing"
)

func collect(c *Cursor) []string {
	var out []string
	for {
		w, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, w)
	}
}

func TestCursor_OdometerOrder(t *testing.T) {
	m, err := Parse("?1?2", []string{"ab", "01"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := collect(NewCursor(m))
	want := []string{"a0", "a1", "b0", "b1"}
	if len(got) != len(want) {
		t.Fatalf("count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCursor_Restartable(t *testing.T) {
	m, _ := Parse("?d?d", nil)
	c := NewCursor(m)
	first := collect(c)
	c.Reset()
	second := collect(c)
	if len(first) != 100 || len(second) != 100 {
		t.Fatalf("counts = %d, %d, want 100", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sequence diverges at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestCursor_MatchesEstimate_NoDuplicates(t *testing.T) {
	m, err := Parse("?l?l?d?d", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	seen := make(map[string]bool)
	c := NewCursor(m)
	for {
		w, ok := c.Next()
		if !ok {
			break
		}
		if seen[w] {
			t.Fatalf("duplicate output %q", w)
		}
		seen[w] = true
	}
	if want := EstimateSize(m); big.NewInt(int64(len(seen))).Cmp(want) != 0 {
		t.Errorf("count = %d, want %v", len(seen), want)
	}
	if len(seen) != 67600 {
		t.Errorf("count = %d, want 67600", len(seen))
	}
}

func TestCursor_Seek(t *testing.T) {
	m, _ := Parse("?1?2", []string{"ab", "01"})
	c := NewCursor(m)
	c.Seek(2)
	w, ok := c.Next()
	if !ok || w != "b0" {
		t.Errorf("Seek(2).Next = %q, %v; want b0", w, ok)
	}

	c.Seek(4)
	if _, ok := c.Next(); ok {
		t.Error("Seek past end still emits")
	}
}

func TestCursor_ShardsCoverWholeSpace(t *testing.T) {
	m, _ := Parse("?d?d", nil)
	full := collect(NewCursor(m))

	var sharded []string
	for start := uint64(0); start < 100; start += 25 {
		c := NewCursor(m)
		c.Seek(start)
		for i := 0; i < 25; i++ {
			w, ok := c.Next()
			if !ok {
				break
			}
			sharded = append(sharded, w)
		}
	}
	if len(sharded) != len(full) {
		t.Fatalf("sharded count = %d, want %d", len(sharded), len(full))
	}
	for i := range full {
		if sharded[i] != full[i] {
			t.Fatalf("shard order diverges at %d", i)
		}
	}
}

func TestGenerate_Limit(t *testing.T) {
	m, _ := Parse("?d?d?d", nil)
	if got := Generate(m, 7); len(got) != 7 {
		t.Errorf("limited count = %d, want 7", len(got))
	}
	if got := Generate(m, -1); len(got) != 1000 {
		t.Errorf("full count = %d, want 1000", len(got))
	}
	if got := Generate(m, 0); len(got) != 0 {
		t.Errorf("zero limit count = %d, want 0", len(got))
	}
}

func TestGenerate_AllLiterals(t *testing.T) {
	m, _ := Parse("abc", nil)
	got := Generate(m, -1)
	if len(got) != 1 || got[0] != "abc" {
		t.Errorf("got %v, want [abc]", got)
	}
}

func TestHybridCursor(t *testing.T) {
	m, _ := Parse("?1", []string{"12"})
	h := NewHybridCursor([]string{"admin", "root"}, m, HybridAppend)
	var got []string
	for {
		w, ok := h.Next()
		if !ok {
			break
		}
		got = append(got, w)
	}
	want := []string{"admin1", "admin2", "root1", "root2"}
	if len(got) != len(want) {
		t.Fatalf("count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, got[i], want[i])
		}
	}

	h = NewHybridCursor([]string{"x"}, m, HybridPrepend)
	w, _ := h.Next()
	if w != "1x" {
		t.Errorf("prepend = %q, want 1x", w)
	}
}
