package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDuration  = errors.New("session duration must be positive")
	ErrSessionNotIdle   = errors.New("a session is already in progress")
	ErrNoSession        = errors.New("no session in progress")
	ErrUnknownCue       = errors.New("unknown cue kind")
	ErrChimeNotFound    = errors.New("chime plugin not found")
	ErrChimeDisabled    = errors.New("chime plugin is disabled")
	ErrChecksumMismatch = errors.New("chime plugin checksum mismatch")
	ErrChimeTimeout     = errors.New("chime plugin timeout")
)
