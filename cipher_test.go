package otp

import (
	"errors"
	mrand "math/rand"
	"testing"
)

func TestCipherAll(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*testing.T)
	}{
		{"EncodeDecodeRoundTrip", TestEncodeDecodeRoundTrip},
		{"EncodeLengthPreserved", TestEncodeLengthPreserved},
		{"DecodeNeverNegative", TestDecodeNeverNegative},
		{"LengthMismatchReported", TestLengthMismatchReported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := DefaultAlphabet()
	engine := NewEngine(a)
	rng := mrand.New(mrand.NewSource(42))

	for trial := 0; trial < 100; trial++ {
		length := rng.Intn(64)
		message := make([]int, length)
		pad := make([]int, length)
		for i := 0; i < length; i++ {
			message[i] = rng.Intn(a.Size())
			pad[i] = rng.Intn(a.Size())
		}

		cipher, err := engine.Encode(message, pad)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		decoded, err := engine.Decode(cipher, pad)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		for i := range message {
			if decoded[i] != message[i] {
				t.Fatalf("trial %d: decode(encode(m, p), p) != m at %d: got %d, want %d",
					trial, i, decoded[i], message[i])
			}
		}
	}
}

func TestEncodeLengthPreserved(t *testing.T) {
	engine := NewEngine(DefaultAlphabet())

	for _, length := range []int{0, 1, 10, 255} {
		message := make([]int, length)
		pad := make([]int, length)

		cipher, err := engine.Encode(message, pad)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if len(cipher) != length {
			t.Errorf("Encode length = %d, want %d", len(cipher), length)
		}

		decoded, err := engine.Decode(cipher, pad)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if len(decoded) != length {
			t.Errorf("Decode length = %d, want %d", len(decoded), length)
		}
	}
}

// Exercises every (cipher, pad) value pair so the subtraction goes negative
// before the +M correction; no result may fall outside [0, M).
func TestDecodeNeverNegative(t *testing.T) {
	a := DefaultAlphabet()
	engine := NewEngine(a)

	for c := 0; c < a.Size(); c++ {
		for p := 0; p < a.Size(); p++ {
			decoded, err := engine.Decode([]int{c}, []int{p})
			if err != nil {
				t.Fatalf("Decode(%d, %d) failed: %v", c, p, err)
			}
			if decoded[0] < 0 || decoded[0] >= a.Size() {
				t.Fatalf("Decode(%d, %d) = %d, outside [0, %d)", c, p, decoded[0], a.Size())
			}

			cipher, err := engine.Encode(decoded, []int{p})
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if cipher[0] != c {
				t.Fatalf("encode(decode(%d, %d), %d) = %d", c, p, p, cipher[0])
			}
		}
	}
}

func TestLengthMismatchReported(t *testing.T) {
	engine := NewEngine(DefaultAlphabet())

	_, err := engine.Decode(make([]int, 5), make([]int, 10))
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	var mismatch *LengthMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *LengthMismatchError, got %T", err)
	}
	if mismatch.TextLen != 5 || mismatch.PadLen != 10 {
		t.Errorf("reported lengths = (%d, %d), want (5, 10)", mismatch.TextLen, mismatch.PadLen)
	}

	if _, err = engine.Encode(make([]int, 3), make([]int, 4)); err == nil {
		t.Error("expected length mismatch error from Encode")
	}
}
