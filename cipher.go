package otp

// Engine performs the modular one-time-pad arithmetic over index sequences.
// It is pure and stateless: both operations take their operands whole,
// require equal lengths, and own no data across calls.
type Engine struct {
	alphabet *Alphabet
}

// NewEngine returns an engine operating over the given alphabet.
func NewEngine(alphabet *Alphabet) *Engine {
	return &Engine{alphabet: alphabet}
}

// Encode combines message and pad elementwise: (message[i] + pad[i]) mod M.
// The result has the same length as the inputs. A length mismatch returns
// a LengthMismatchError carrying both lengths.
func (e *Engine) Encode(message, pad []int) ([]int, error) {
	if len(message) != len(pad) {
		return nil, &LengthMismatchError{TextLen: len(message), PadLen: len(pad)}
	}

	m := e.alphabet.Size()
	cipher := make([]int, len(message))
	for i := range message {
		cipher[i] = (message[i] + pad[i]) % m
	}
	return cipher, nil
}

// Decode reverses Encode: (cipher[i] - pad[i] + M) mod M. The +M before
// the modulus keeps every result non-negative, since % follows the sign of
// the dividend; decode(encode(m, p), p) == m holds exactly.
func (e *Engine) Decode(cipher, pad []int) ([]int, error) {
	if len(cipher) != len(pad) {
		return nil, &LengthMismatchError{TextLen: len(cipher), PadLen: len(pad)}
	}

	m := e.alphabet.Size()
	message := make([]int, len(cipher))
	for i := range cipher {
		message[i] = (cipher[i] - pad[i] + m) % m
	}
	return message, nil
}
