package otp

import (
	"crypto/rand"
	"fmt"
	"io"
)

// PadGenerator produces single-use pads: sequences of indices drawn from a
// cryptographically secure source, one per message symbol.
//
// Each random byte is reduced into [0, M) by remainder. When M does not
// divide 256 evenly this leaves a small statistical bias toward the low
// indices; callers wanting strict uniformity need rejection sampling.
//
// Nothing here tracks pad reuse. A pad must never be used twice, and that
// discipline is entirely on the caller.
type PadGenerator struct {
	alphabet *Alphabet
	source   io.Reader
}

// NewPadGenerator returns a generator bound to the alphabet, reading from
// crypto/rand. A nil source selects crypto/rand; tests inject failing or
// deterministic readers through it.
func NewPadGenerator(alphabet *Alphabet, source io.Reader) *PadGenerator {
	if source == nil {
		source = rand.Reader
	}
	return &PadGenerator{alphabet: alphabet, source: source}
}

// Generate returns a pad of exactly length values, each in [0, M). If the
// random source cannot be read the call fails with ErrRandomnessUnavailable;
// there is never a fallback to a weaker source.
func (g *PadGenerator) Generate(length int) ([]int, error) {
	if length < 0 {
		return nil, fmt.Errorf("pad length cannot be negative: %d", length)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}

	m := g.alphabet.Size()
	pad := make([]int, length)
	for i, b := range buf {
		pad[i] = int(b) % m
	}
	return pad, nil
}
