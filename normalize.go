package otp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizer projects arbitrary text onto an alphabet. The projection is
// deterministic and idempotent: case is folded to upper, accented letters
// are reduced to their base letter, and anything the alphabet does not
// contain is dropped while the relative order of the rest is preserved.
//
// A rune that is already an alphabet member is kept as-is before any
// decomposition runs, which is what keeps Ñ intact while ó collapses to O.
type Normalizer struct {
	alphabet *Alphabet
}

// NewNormalizer returns a normalizer bound to the given alphabet.
func NewNormalizer(alphabet *Alphabet) *Normalizer {
	return &Normalizer{alphabet: alphabet}
}

// Normalize returns the projection of raw onto the alphabet. The result
// may be empty; an empty result is valid output, and callers that need a
// non-empty value must check for it themselves.
func (n *Normalizer) Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range strings.ToUpper(raw) {
		if n.alphabet.Contains(r) {
			b.WriteRune(r)
			continue
		}
		// Decompose and keep only base characters that land in the
		// alphabet; combining marks (category Mn) are stripped.
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			if n.alphabet.Contains(d) {
				b.WriteRune(d)
			}
		}
	}

	return b.String()
}
