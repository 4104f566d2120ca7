package otp

import (
	"errors"
	"testing"
)

func TestAlphabetAll(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*testing.T)
	}{
		{"DefaultAlphabetInvariants", TestDefaultAlphabetInvariants},
		{"DuplicateSymbolRejected", TestDuplicateSymbolRejected},
		{"EmptyAlphabetRejected", TestEmptyAlphabetRejected},
		{"IndexRoundTrip", TestIndexRoundTrip},
		{"CodecRoundTrip", TestCodecRoundTrip},
		{"CodecRejectsForeignSymbols", TestCodecRejectsForeignSymbols},
		{"CodecRejectsOutOfRangeIndices", TestCodecRejectsOutOfRangeIndices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t)
		})
	}
}

func TestDefaultAlphabetInvariants(t *testing.T) {
	a := DefaultAlphabet()

	if a.Size() != len([]rune(DefaultSymbols)) {
		t.Errorf("Size() = %d, want %d", a.Size(), len([]rune(DefaultSymbols)))
	}

	seen := make(map[rune]bool)
	for i := 0; i < a.Size(); i++ {
		r := a.SymbolAt(i)
		if seen[r] {
			t.Errorf("duplicate symbol %q at position %d", r, i)
		}
		seen[r] = true
	}

	// The extra letter and the scenario-relevant symbols must be members
	for _, r := range "Ñ !0Z" {
		if !a.Contains(r) {
			t.Errorf("alphabet is missing %q", r)
		}
	}
}

func TestDuplicateSymbolRejected(t *testing.T) {
	_, err := NewAlphabet("ABCA")
	if err == nil {
		t.Fatal("expected error for duplicate symbol")
	}
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected ErrDuplicateSymbol, got %v", err)
	}
}

func TestEmptyAlphabetRejected(t *testing.T) {
	if _, err := NewAlphabet(""); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}

func TestIndexRoundTrip(t *testing.T) {
	a := DefaultAlphabet()

	for i := 0; i < a.Size(); i++ {
		r := a.SymbolAt(i)
		idx, ok := a.IndexOf(r)
		if !ok {
			t.Fatalf("IndexOf(%q) reported missing symbol", r)
		}
		if idx != i {
			t.Errorf("IndexOf(SymbolAt(%d)) = %d", i, idx)
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	a := DefaultAlphabet()

	for _, text := range []string{"", "HOLA MUNDO", "CANCION NIÑO 123 !", DefaultSymbols} {
		seq, err := a.ToIndices(text)
		if err != nil {
			t.Fatalf("ToIndices(%q) failed: %v", text, err)
		}
		if len(seq) != len([]rune(text)) {
			t.Errorf("ToIndices(%q) length = %d, want %d", text, len(seq), len([]rune(text)))
		}

		back, err := a.FromIndices(seq)
		if err != nil {
			t.Fatalf("FromIndices failed: %v", err)
		}
		if back != text {
			t.Errorf("round trip of %q produced %q", text, back)
		}
	}
}

func TestCodecRejectsForeignSymbols(t *testing.T) {
	a := DefaultAlphabet()

	_, err := a.ToIndices("HOLA~")
	if err == nil {
		t.Fatal("expected error for symbol outside the alphabet")
	}
	if !errors.Is(err, ErrSymbolNotInAlphabet) {
		t.Errorf("expected ErrSymbolNotInAlphabet, got %v", err)
	}
}

func TestCodecRejectsOutOfRangeIndices(t *testing.T) {
	a := DefaultAlphabet()

	for _, seq := range [][]int{{-1}, {a.Size()}, {0, 1, a.Size() + 7}} {
		if _, err := a.FromIndices(seq); err == nil {
			t.Errorf("expected error for out-of-range sequence %v", seq)
		}
	}
}
