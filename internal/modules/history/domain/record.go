package domain

import (
	"time"

	apperrors "zazen/internal/platform/errors"
)

// Record is one completed or manually finished sitting. The journal
// note is the source of truth; the sqlite index is a rebuildable
// projection of these.
type Record struct {
	ID        string
	StartedAt time.Time
	Meditated time.Duration
	Planned   time.Duration
	Completed bool
}

func (r Record) Validate() error {
	if r.ID == "" || r.StartedAt.IsZero() {
		return apperrors.ErrInvalidInput
	}
	if r.Meditated <= 0 || r.Planned <= 0 {
		return apperrors.ErrInvalidDuration
	}
	return nil
}

// DaySummary aggregates the sittings of one calendar day.
type DaySummary struct {
	Day       time.Time
	Sessions  int
	Meditated time.Duration
}
