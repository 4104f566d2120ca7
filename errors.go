package otp

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrEmptyInput is returned when a normalized message, pad or ciphertext
	// came out empty but the operation needs a non-empty value.
	ErrEmptyInput = errors.New("input is empty after normalization")

	// ErrInvalidTransition is returned when a session operation is requested
	// in a state that does not permit it.
	ErrInvalidTransition = errors.New("operation not allowed in current state")

	// ErrRandomnessUnavailable is returned when the secure random source
	// cannot be read. There is no fallback: pad generation fails outright.
	ErrRandomnessUnavailable = errors.New("secure random source unavailable")

	// ErrDuplicateSymbol is returned by NewAlphabet when the symbol set
	// contains a repeated rune.
	ErrDuplicateSymbol = errors.New("alphabet contains duplicate symbol")

	// ErrSymbolNotInAlphabet is returned when a rune outside the alphabet
	// reaches the index codec. Callers should only pass normalized text.
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
)

// LengthMismatchError reports an operation that required equal-length
// operands but received different lengths. Both lengths are carried so the
// caller can produce a usable diagnostic.
type LengthMismatchError struct {
	TextLen int // message or ciphertext length
	PadLen  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: text is %d symbols, pad is %d symbols", e.TextLen, e.PadLen)
}

// Is makes errors.Is(err, ErrLengthMismatch) work for wrapped instances.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// ErrLengthMismatch is the sentinel matched by all LengthMismatchError values.
var ErrLengthMismatch = errors.New("pad and text lengths differ")

// TransitionError wraps ErrInvalidTransition with the state and the
// operation that was refused.
type TransitionError struct {
	State State
	Op    string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while session is %s", e.Op, e.State)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
