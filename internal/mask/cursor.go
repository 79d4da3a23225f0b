package mask

// Cursor enumerates a mask's expansion in odometer order: the
// rightmost segment advances fastest. State is one index per segment,
// so memory stays O(len(mask)) regardless of the expansion size. A
// fresh cursor (or Reset) reproduces the exact same sequence.
type Cursor struct {
	mask Mask
	idx  []int
	buf  []rune
	done bool
}

// NewCursor returns a cursor positioned before the first word.
func NewCursor(m Mask) *Cursor {
	return &Cursor{
		mask: m,
		idx:  make([]int, len(m.Segments)),
		buf:  make([]rune, len(m.Segments)),
	}
}

// Next returns the next word, or false when the expansion is
// exhausted.
func (c *Cursor) Next() (string, bool) {
	if c.done {
		return "", false
	}
	for i, seg := range c.mask.Segments {
		c.buf[i] = seg.Chars[c.idx[i]]
	}
	word := string(c.buf)
	c.advance()
	return word, true
}

// advance increments the index vector, rightmost position first.
func (c *Cursor) advance() {
	if len(c.idx) == 0 {
		c.done = true
		return
	}
	for i := len(c.idx) - 1; i >= 0; i-- {
		c.idx[i]++
		if c.idx[i] < len(c.mask.Segments[i].Chars) {
			return
		}
		c.idx[i] = 0
	}
	c.done = true
}

// Reset rewinds the cursor to the first word.
func (c *Cursor) Reset() {
	for i := range c.idx {
		c.idx[i] = 0
	}
	c.done = false
}

// Seek positions the cursor at absolute index n in odometer order, so
// parallel workers can each own a contiguous index range. Seeking at
// or past the expansion size leaves the cursor exhausted.
func (c *Cursor) Seek(n uint64) {
	c.Reset()
	for i := len(c.idx) - 1; i >= 0; i-- {
		base := uint64(len(c.mask.Segments[i].Chars))
		c.idx[i] = int(n % base)
		n /= base
	}
	if n > 0 {
		c.done = true
	}
}

// Generate collects the expansion into a slice. A non-negative limit
// caps the number of emitted words and is checked before each
// emission; a negative limit means no cap. Prefer a Cursor for large
// masks; Generate materializes its output.
func Generate(m Mask, limit int) []string {
	var out []string
	c := NewCursor(m)
	for {
		if limit >= 0 && len(out) >= limit {
			return out
		}
		word, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, word)
	}
}

// HybridPosition selects where mask expansions attach to a base word.
type HybridPosition int

const (
	HybridAppend HybridPosition = iota
	HybridPrepend
)

// HybridCursor combines base words with a mask expansion, emitting
// word+expansion (or expansion+word) lazily, one base word at a time.
type HybridCursor struct {
	words    []string
	mask     Mask
	position HybridPosition
	wi       int
	inner    *Cursor
}

// NewHybridCursor returns a cursor over the hybrid space.
func NewHybridCursor(words []string, m Mask, position HybridPosition) *HybridCursor {
	return &HybridCursor{words: words, mask: m, position: position, inner: NewCursor(m)}
}

// Next returns the next hybrid candidate, or false when done.
func (h *HybridCursor) Next() (string, bool) {
	for h.wi < len(h.words) {
		part, ok := h.inner.Next()
		if !ok {
			h.wi++
			h.inner.Reset()
			continue
		}
		if h.position == HybridPrepend {
			return part + h.words[h.wi], true
		}
		return h.words[h.wi] + part, true
	}
	return "", false
}
