package otp

import (
	"fmt"
)

// DefaultSymbols is the fixed symbol set the cipher operates over: the
// uppercase Latin letters with Ñ after N, the decimal digits, the space,
// and a small set of punctuation. Everything is printable and within easy
// reach of a person transcribing a pad by hand; there are no control
// characters and no case variants.
const DefaultSymbols = "ABCDEFGHIJKLMNÑOPQRSTUVWXYZ0123456789 .,;:!?()-_'\""

// Alphabet is an ordered, duplicate-free set of symbols. It defines the
// modulus for every cipher operation and the total bidirectional mapping
// between symbols and their positions.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet from the given symbol string. It fails if
// any rune repeats: the symbol-to-index mapping must be injective, and a
// duplicate would silently corrupt every decode that touches it.
func NewAlphabet(symbols string) (*Alphabet, error) {
	runes := []rune(symbols)
	if len(runes) == 0 {
		return nil, fmt.Errorf("alphabet cannot be empty")
	}

	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, seen := index[r]; seen {
			return nil, fmt.Errorf("%w: %q at position %d", ErrDuplicateSymbol, r, i)
		}
		index[r] = i
	}

	return &Alphabet{symbols: runes, index: index}, nil
}

// DefaultAlphabet returns the fixed alphabet used throughout the system.
// The symbol set is a compile-time constant; construction cannot fail.
func DefaultAlphabet() *Alphabet {
	a, err := NewAlphabet(DefaultSymbols)
	if err != nil {
		panic(fmt.Sprintf("default alphabet is invalid: %v", err))
	}
	return a
}

// Size returns the number of symbols, the modulus M.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// SymbolAt returns the symbol at position i. i must be in [0, Size).
func (a *Alphabet) SymbolAt(i int) rune {
	return a.symbols[i]
}

// IndexOf returns the position of r and whether r belongs to the alphabet.
func (a *Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Contains reports whether r is a member of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// String returns the symbol set in order.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

// ToIndices maps normalized text to its index sequence. Every rune of text
// must belong to the alphabet; text produced by Normalizer.Normalize always
// satisfies this.
func (a *Alphabet) ToIndices(text string) ([]int, error) {
	runes := []rune(text)
	seq := make([]int, len(runes))
	for i, r := range runes {
		idx, ok := a.index[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrSymbolNotInAlphabet, r, i)
		}
		seq[i] = idx
	}
	return seq, nil
}

// FromIndices maps an index sequence back to text. Every value must be in
// [0, Size); sequences produced by the cipher engine always are.
func (a *Alphabet) FromIndices(seq []int) (string, error) {
	runes := make([]rune, len(seq))
	for i, v := range seq {
		if v < 0 || v >= len(a.symbols) {
			return "", fmt.Errorf("index %d at position %d out of range [0, %d)", v, i, len(a.symbols))
		}
		runes[i] = a.symbols[v]
	}
	return string(runes), nil
}
