package otp

import (
	"fmt"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/pgagudelom/otp-secret-messages/audit"
	"github.com/pgagudelom/otp-secret-messages/internal/mem"
)

// SecretLifetime is how long a recovered plaintext stays readable before
// the session erases it, in seconds. Fixed at compile time; input data
// cannot extend it, only an explicit Clear cuts it short.
const SecretLifetime = 300

// Initialize memguard before any session handles plaintext
func init() {
	memguard.CatchInterrupt()
}

// State identifies where a session is in the encrypt or decrypt flow.
type State int

const (
	StateIdle State = iota
	StateAwaitingPad
	StatePadAccepted
	StateDecryptedActive
	StateMessageEntry
	StateEncrypted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPad:
		return "awaiting-pad"
	case StatePadAccepted:
		return "pad-accepted"
	case StateDecryptedActive:
		return "decrypted-active"
	case StateMessageEntry:
		return "message-entry"
	case StateEncrypted:
		return "encrypted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session owns the lifecycle of a single encrypt or decrypt exchange: the
// pad being entered, the ciphertext, and, after a successful decrypt, the
// recovered plaintext together with the countdown that forces its erasure.
//
// It is the only stateful component in the package. Every mutating call is
// serialized under an internal mutex; a Clear or mode change synchronously
// cancels the pending countdown tick so a stale tick can never fire against
// an already-reset session. The recovered plaintext lives in a memguard
// enclave and is only decrypted into working memory while a caller reads it.
type Session struct {
	mu sync.Mutex

	alphabet   *Alphabet
	normalizer *Normalizer
	engine     *Engine
	pads       *PadGenerator

	clk   clock.Clock
	audit audit.Logger

	state      State
	padText    string
	pad        []int
	cipherText string
	message    string
	plaintext  *memguard.Enclave
	remaining  int

	// countdown bookkeeping: gen invalidates callbacks scheduled before
	// the most recent reset, timer is the pending 1-second tick
	gen   uint64
	timer *clock.Timer

	protection mem.ProtectionLevel
}

// NewSession creates a session over the default alphabet, configured by
// opts. Memory locking is attempted best-effort; the session works either
// way and records the achieved protection level in the audit log.
func NewSession(opts Options) *Session {
	auditLogger := opts.Audit
	if auditLogger == nil {
		auditLogger = audit.NewNoOpLogger()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	alphabet := DefaultAlphabet()
	s := &Session{
		alphabet:   alphabet,
		normalizer: NewNormalizer(alphabet),
		engine:     NewEngine(alphabet),
		pads:       NewPadGenerator(alphabet, opts.Rand),
		clk:        clk,
		audit:      auditLogger,
		state:      StateIdle,
	}

	// Best-effort: keep pad and plaintext pages out of swap
	level, err := mem.Lock()
	if err != nil {
		level = mem.ProtectionNone
	}
	s.protection = level

	s.logAudit(s.newRequestID(), "session_created", nil, map[string]interface{}{
		"alphabet_size":     alphabet.Size(),
		"secret_lifetime_s": SecretLifetime,
		"memory_protection": int(level),
	})

	return s
}

// ChooseDecryptMode puts the session into the decrypt flow, waiting for a
// pad. Selecting a mode from any non-idle state force-resets the session
// first: everything held is erased and any countdown is cancelled.
func (s *Session) ChooseDecryptMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := s.newRequestID()
	from := s.state
	s.resetLocked()
	s.state = StateAwaitingPad

	s.logAudit(requestID, "decrypt_mode_selected", nil, map[string]interface{}{
		"previous_state": from.String(),
	})
}

// ChooseEncryptMode puts the session into the encrypt flow, waiting for a
// message. Like ChooseDecryptMode it force-resets whatever was held.
func (s *Session) ChooseEncryptMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := s.newRequestID()
	from := s.state
	s.resetLocked()
	s.state = StateMessageEntry

	s.logAudit(requestID, "encrypt_mode_selected", nil, map[string]interface{}{
		"previous_state": from.String(),
	})
}

// AcceptPad normalizes and stores the pad for the decrypt flow. It fails
// with ErrEmptyInput when nothing of the pad survives normalization, and
// with ErrInvalidTransition outside the AwaitingPad state. A failed call
// leaves the session exactly as it was.
func (s *Session) AcceptPad(padText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := s.newRequestID()

	if s.state != StateAwaitingPad {
		err := &TransitionError{State: s.state, Op: "accept pad"}
		s.logAudit(requestID, "accept_pad", err, nil)
		return err
	}

	normalized := s.normalizer.Normalize(padText)
	if normalized == "" {
		s.logAudit(requestID, "accept_pad", ErrEmptyInput, nil)
		return fmt.Errorf("pad: %w", ErrEmptyInput)
	}

	pad, err := s.alphabet.ToIndices(normalized)
	if err != nil {
		// Normalize output is always alphabet-clean; this is unreachable
		// unless the alphabet and normalizer disagree.
		s.logAudit(requestID, "accept_pad", err, nil)
		return err
	}

	s.padText = normalized
	s.pad = pad
	s.state = StatePadAccepted

	s.logAudit(requestID, "accept_pad", nil, map[string]interface{}{
		"pad_length": len(pad),
	})
	return nil
}

// Decrypt decodes the ciphertext against the accepted pad and, on success,
// installs the plaintext with a fresh SecretLifetime countdown. It returns
// the recovered plaintext; collaborators can also read it later through
// Plaintext until the countdown or a Clear erases it.
//
// Failures leave the prior state fully intact: ErrEmptyInput when the
// normalized ciphertext is empty, a LengthMismatchError when its length
// differs from the pad's, ErrInvalidTransition before a pad was accepted.
func (s *Session) Decrypt(cipherText string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := s.newRequestID()

	if s.state != StatePadAccepted {
		err := &TransitionError{State: s.state, Op: "decrypt"}
		s.logAudit(requestID, "decrypt", err, nil)
		return "", err
	}

	normalized := s.normalizer.Normalize(cipherText)
	if normalized == "" {
		s.logAudit(requestID, "decrypt", ErrEmptyInput, nil)
		return "", fmt.Errorf("ciphertext: %w", ErrEmptyInput)
	}

	cipher, err := s.alphabet.ToIndices(normalized)
	if err != nil {
		s.logAudit(requestID, "decrypt", err, nil)
		return "", err
	}

	decoded, err := s.engine.Decode(cipher, s.pad)
	if err != nil {
		s.logAudit(requestID, "decrypt", err, map[string]interface{}{
			"cipher_length": len(cipher),
			"pad_length":    len(s.pad),
		})
		return "", err
	}

	plaintext, err := s.alphabet.FromIndices(decoded)
	if err != nil {
		s.logAudit(requestID, "decrypt", err, nil)
		return "", err
	}

	s.cipherText = normalized
	s.plaintext = memguard.NewEnclave([]byte(plaintext))
	s.remaining = SecretLifetime
	s.state = StateDecryptedActive
	s.armTickLocked()

	s.logAudit(requestID, "decrypt", nil, map[string]interface{}{
		"cipher_length":    len(cipher),
		"ttl_seconds":      s.remaining,
		"plaintext_length": len(decoded),
	})
	return plaintext, nil
}

// Encrypt normalizes the message, generates a matching-length pad from the
// secure random source, and encodes. On success the session exposes both
// the pad and the ciphertext for display or export. It fails with
// ErrEmptyInput when the normalized message is empty, ErrInvalidTransition
// outside the MessageEntry state, and ErrRandomnessUnavailable when the
// random source cannot be read. A weaker source is never substituted.
func (s *Session) Encrypt(messageText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := s.newRequestID()

	if s.state != StateMessageEntry {
		err := &TransitionError{State: s.state, Op: "encrypt"}
		s.logAudit(requestID, "encrypt", err, nil)
		return err
	}

	normalized := s.normalizer.Normalize(messageText)
	if normalized == "" {
		s.logAudit(requestID, "encrypt", ErrEmptyInput, nil)
		return fmt.Errorf("message: %w", ErrEmptyInput)
	}

	message, err := s.alphabet.ToIndices(normalized)
	if err != nil {
		s.logAudit(requestID, "encrypt", err, nil)
		return err
	}

	pad, err := s.pads.Generate(len(message))
	if err != nil {
		s.logAudit(requestID, "encrypt", err, map[string]interface{}{
			"message_length": len(message),
		})
		return err
	}

	cipher, err := s.engine.Encode(message, pad)
	if err != nil {
		s.logAudit(requestID, "encrypt", err, nil)
		return err
	}

	padText, err := s.alphabet.FromIndices(pad)
	if err != nil {
		s.logAudit(requestID, "encrypt", err, nil)
		return err
	}
	cipherText, err := s.alphabet.FromIndices(cipher)
	if err != nil {
		s.logAudit(requestID, "encrypt", err, nil)
		return err
	}

	s.message = normalized
	s.pad = pad
	s.padText = padText
	s.cipherText = cipherText
	s.state = StateEncrypted

	s.logAudit(requestID, "encrypt", nil, map[string]interface{}{
		"message_length": len(message),
	})
	return nil
}

// Clear returns the session to idle from any state. Everything held is
// erased and the pending countdown tick, if any, is cancelled before Clear
// returns.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	requestID := s.newRequestID()
	from := s.state
	s.resetLocked()

	s.logAudit(requestID, "session_cleared", nil, map[string]interface{}{
		"previous_state": from.String(),
	})
}

// Close clears the session and releases the audit logger. The session must
// not be used afterwards.
func (s *Session) Close() error {
	s.Clear()
	return s.audit.Close()
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pad returns the pad as displayable text: the accepted pad in the decrypt
// flow, the generated pad after Encrypt. Empty when the session holds none.
func (s *Session) Pad() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.padText
}

// Ciphertext returns the current ciphertext, or "" when none is held.
func (s *Session) Ciphertext() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cipherText
}

// Message returns the normalized message of the encrypt flow, or "".
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Plaintext returns the recovered plaintext while the countdown is still
// running. After expiry or Clear it returns "".
func (s *Session) Plaintext() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDecryptedActive || s.plaintext == nil {
		return ""
	}

	buf, err := s.plaintext.Open()
	if err != nil {
		return ""
	}
	defer buf.Destroy()
	return string(buf.Bytes())
}

// Remaining returns the seconds left before the recovered plaintext is
// erased, or 0 outside the DecryptedActive state.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDecryptedActive {
		return 0
	}
	return s.remaining
}

// armTickLocked schedules the next 1-second countdown tick. Caller holds mu.
func (s *Session) armTickLocked() {
	gen := s.gen
	s.timer = s.clk.AfterFunc(time.Second, func() {
		s.tick(gen)
	})
}

// tick decrements the countdown. A tick scheduled before the latest reset
// carries a stale generation and is ignored, even when the timer had
// already fired before Stop.
func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.state != StateDecryptedActive {
		return
	}

	s.remaining--
	if s.remaining > 0 {
		s.armTickLocked()
		return
	}

	requestID := s.newRequestID()
	s.resetLocked()
	s.logAudit(requestID, "secret_expired", nil, nil)
}

// resetLocked erases all held values, cancels any pending tick and returns
// the session to idle. Caller holds mu.
func (s *Session) resetLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.padText = ""
	s.pad = nil
	s.cipherText = ""
	s.message = ""
	s.plaintext = nil
	s.remaining = 0
	s.state = StateIdle
}

func (s *Session) logAudit(requestID, action string, err error, metadata map[string]interface{}) {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	metadata["request_id"] = requestID
	metadata["state"] = s.state.String()

	success := err == nil
	if err != nil {
		metadata["error"] = err.Error()
	}

	// Audit failures never block a cipher operation
	_ = s.audit.Log(action, success, metadata)
}

func (s *Session) newRequestID() string {
	return uuid.NewString()
}
