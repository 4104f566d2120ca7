package otp

import (
	"io"

	"github.com/benbjohnson/clock"

	"github.com/pgagudelom/otp-secret-messages/audit"
)

// Options configures a Session. The cipher itself has no configuration
// surface: the alphabet and the secret lifetime are compile-time constants.
// What Options controls is the session's environment: where audit events
// go, which clock drives the countdown, and which reader supplies random
// pad material.
type Options struct {
	// Audit receives an event for every session transition. Nil selects
	// the no-op logger; audit failures never block an operation.
	Audit audit.Logger

	// Clock drives the 1-second countdown of a recovered plaintext. Nil
	// selects the wall clock. Tests install a mock to step time.
	Clock clock.Clock

	// Rand supplies pad material. Nil selects crypto/rand. Anything else
	// must itself be cryptographically secure: the session never falls
	// back when this reader fails, it surfaces ErrRandomnessUnavailable.
	Rand io.Reader
}
