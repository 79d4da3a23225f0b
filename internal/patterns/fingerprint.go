package patterns

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint identifies a corpus by content: the hex sha256 of its
// newline-joined passwords. The same corpus always maps to the same
// cache file, regardless of where or when it was analyzed.
func Fingerprint(corpus []string) string {
	h := sha256.New()
	for _, pw := range corpus {
		h.Write([]byte(pw))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// combineFingerprints derives a fingerprint for a merged cache. XOR of
// the digest bytes keeps the combination commutative and associative,
// so any merge order over the same corpora lands on the same identity.
func combineFingerprints(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	ab, errA := hex.DecodeString(a)
	bb, errB := hex.DecodeString(b)
	if errA != nil || errB != nil || len(ab) != len(bb) {
		// Non-digest fingerprints still combine order-independently.
		if b < a {
			a, b = b, a
		}
		sum := sha256.Sum256(fmt.Appendf(nil, "%s+%s", a, b))
		return hex.EncodeToString(sum[:])
	}
	out := make([]byte, len(ab))
	for i := range ab {
		out[i] = ab[i] ^ bb[i]
	}
	return hex.EncodeToString(out)
}
