package domain

import (
	"time"

	apperrors "zazen/internal/platform/errors"
)

// Cue names shared with the session module's wire-level cue identifiers.
const (
	CueNameSessionStart = "session_start"
	CueNameSessionEnd   = "session_end"
	CueNameHalfway      = "halfway"
	CueNameEveryMinute  = "every_minute"
)

// Settings holds the persisted user preferences. The engine reads them
// once at session start; they are never mutated mid-session.
type Settings struct {
	DefaultDuration time.Duration
	CueSessionStart bool
	CueSessionEnd   bool
	CueHalfway      bool
	CueEveryMinute  bool
	// Chime names the preferred chime plugin; empty selects the
	// builtin terminal bell.
	Chime string
}

func Defaults() Settings {
	return Settings{
		DefaultDuration: 10 * time.Minute,
		CueSessionStart: true,
		CueSessionEnd:   true,
	}
}

func (s Settings) Validate() error {
	if s.DefaultDuration <= 0 {
		return apperrors.ErrInvalidDuration
	}
	return nil
}

// EnabledCues lists the enabled cue names in evaluation order.
func (s Settings) EnabledCues() []string {
	cues := make([]string, 0, 4)
	if s.CueSessionStart {
		cues = append(cues, CueNameSessionStart)
	}
	if s.CueHalfway {
		cues = append(cues, CueNameHalfway)
	}
	if s.CueEveryMinute {
		cues = append(cues, CueNameEveryMinute)
	}
	if s.CueSessionEnd {
		cues = append(cues, CueNameSessionEnd)
	}
	return cues
}
