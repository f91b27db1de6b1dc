package domain

import (
	"time"

	apperrors "zazen/internal/platform/errors"
)

// Status is the timer's lifecycle state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// Cue identifies a milestone notification.
type Cue string

const (
	CueSessionStart Cue = "session_start"
	CueSessionEnd   Cue = "session_end"
	CueHalfway      Cue = "halfway"
	CueEveryMinute  Cue = "every_minute"
)

func (c Cue) Validate() error {
	switch c {
	case CueSessionStart, CueSessionEnd, CueHalfway, CueEveryMinute:
		return nil
	default:
		return apperrors.ErrUnknownCue
	}
}

// CueSet is the immutable per-session selection of enabled cues.
type CueSet map[Cue]struct{}

func NewCueSet(cues ...Cue) CueSet {
	set := make(CueSet, len(cues))
	for _, cue := range cues {
		set[cue] = struct{}{}
	}
	return set
}

func (s CueSet) Has(cue Cue) bool {
	_, ok := s[cue]
	return ok
}

// Config is fixed for the lifetime of a session.
type Config struct {
	Total time.Duration
	Cues  CueSet
}

func (c Config) Validate() error {
	if c.Total <= 0 {
		return apperrors.ErrInvalidDuration
	}
	return nil
}

// Snapshot is an immutable view of timer progress. Observers render
// snapshots; they never read timer fields.
type Snapshot struct {
	Status    Status
	Total     time.Duration
	Elapsed   time.Duration
	Remaining time.Duration
	Progress  float64
}

// Record is emitted once per transition to Finished. Meditated is the
// time actually spent, which manual finish may cut short of Planned.
type Record struct {
	StartedAt time.Time
	Meditated time.Duration
	Planned   time.Duration
	Completed bool
}

// Timer is the session state machine. It is pure: every method is a
// transition over in-process data driven by an explicit now, and side
// effects (playing cues, persisting records) are the caller's job.
// Callers serialize access; Timer itself holds no lock.
type Timer struct {
	config         Config
	status         Status
	startedAt      time.Time
	pausedAt       time.Time
	pauseOffset    time.Duration
	halfwayFired   bool
	lastMinuteMark int
	finalElapsed   time.Duration
}

func NewTimer() *Timer {
	return &Timer{status: StatusIdle}
}

// Start transitions Idle to Running. Any other status is a no-op that
// returns the current snapshot unchanged. An invalid config rejects
// without touching state.
func (t *Timer) Start(config Config, now time.Time) (Snapshot, []Cue, error) {
	if err := config.Validate(); err != nil {
		return t.snapshotAt(now), nil, err
	}
	if t.status != StatusIdle {
		return t.snapshotAt(now), nil, nil
	}
	t.config = config
	t.status = StatusRunning
	t.startedAt = now
	t.pausedAt = time.Time{}
	t.pauseOffset = 0
	t.halfwayFired = false
	t.lastMinuteMark = 0
	t.finalElapsed = 0

	var cues []Cue
	if config.Cues.Has(CueSessionStart) {
		cues = append(cues, CueSessionStart)
	}
	return t.snapshotAt(now), cues, nil
}

// Pause freezes elapsed-time accounting. No-op unless Running.
func (t *Timer) Pause(now time.Time) Snapshot {
	if t.status != StatusRunning {
		return t.snapshotAt(now)
	}
	t.status = StatusPaused
	t.pausedAt = now
	return t.snapshotAt(now)
}

// Resume grows the pause offset by exactly the wall-clock pause span
// and returns to Running. No-op unless Paused.
func (t *Timer) Resume(now time.Time) Snapshot {
	if t.status != StatusPaused {
		return t.snapshotAt(now)
	}
	if span := now.Sub(t.pausedAt); span > 0 {
		t.pauseOffset += span
	}
	t.status = StatusRunning
	t.pausedAt = time.Time{}
	return t.snapshotAt(now)
}

// Recompute re-derives remaining time from the wall clock and collects
// every cue due at now. It is idempotent for a given now and is the
// only transition that can reach Finished on its own: when remaining
// hits zero the session finishes, fires SessionEnd at most once, and
// yields the completed record. Elapsed time never comes from
// accumulated ticks, so a recompute after a long suspension both
// corrects drift and detects a completion that happened mid-suspension.
func (t *Timer) Recompute(now time.Time) (Snapshot, []Cue, *Record) {
	if t.status != StatusRunning {
		return t.snapshotAt(now), nil, nil
	}

	elapsed := t.elapsedAt(now)
	remaining := t.config.Total - elapsed
	if remaining < 0 {
		remaining = 0
	}

	var cues []Cue
	if t.config.Cues.Has(CueHalfway) && !t.halfwayFired && remaining > 0 && elapsed*2 >= t.config.Total {
		t.halfwayFired = true
		cues = append(cues, CueHalfway)
	}
	if t.config.Cues.Has(CueEveryMinute) && remaining > 0 {
		mark := int(elapsed / time.Second)
		if mark > 0 && mark%60 == 0 && mark != t.lastMinuteMark {
			t.lastMinuteMark = mark
			cues = append(cues, CueEveryMinute)
		}
	}
	if remaining <= 0 {
		if t.config.Cues.Has(CueSessionEnd) {
			cues = append(cues, CueSessionEnd)
		}
		record := t.complete(t.config.Total)
		return t.snapshotAt(now), cues, record
	}
	return t.snapshotAt(now), cues, nil
}

// Finish ends the session early on user request. Allowed from Running
// and Paused; it emits a record for the time actually meditated and
// fires no cue. No-op in any other status, including repeat calls.
func (t *Timer) Finish(now time.Time) (Snapshot, *Record) {
	if t.status != StatusRunning && t.status != StatusPaused {
		return t.snapshotAt(now), nil
	}
	meditated := t.elapsedAt(now)
	if meditated > t.config.Total {
		meditated = t.config.Total
	}
	record := t.complete(meditated)
	return t.snapshotAt(now), record
}

// Reset re-arms a Finished timer for a new session. No-op otherwise;
// in particular a live session must be finished before it can reset.
func (t *Timer) Reset() Snapshot {
	if t.status != StatusFinished {
		return t.snapshotAt(time.Time{})
	}
	*t = Timer{status: StatusIdle}
	return t.snapshotAt(time.Time{})
}

// Snapshot reports current progress without advancing the machine.
func (t *Timer) Snapshot(now time.Time) Snapshot {
	return t.snapshotAt(now)
}

func (t *Timer) complete(meditated time.Duration) *Record {
	t.status = StatusFinished
	t.finalElapsed = meditated
	t.pausedAt = time.Time{}
	t.pauseOffset = 0
	if meditated <= 0 {
		return nil
	}
	return &Record{
		StartedAt: t.startedAt,
		Meditated: meditated,
		Planned:   t.config.Total,
		Completed: meditated >= t.config.Total,
	}
}

// elapsedAt implements the wall-clock-delta formula. While Paused the
// result freezes at the instant the pause began.
func (t *Timer) elapsedAt(now time.Time) time.Duration {
	if t.startedAt.IsZero() {
		return 0
	}
	base := now
	if t.status == StatusPaused {
		base = t.pausedAt
	}
	elapsed := base.Sub(t.startedAt) - t.pauseOffset
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (t *Timer) snapshotAt(now time.Time) Snapshot {
	switch t.status {
	case StatusIdle:
		return Snapshot{Status: StatusIdle}
	case StatusFinished:
		remaining := t.config.Total - t.finalElapsed
		if remaining < 0 {
			remaining = 0
		}
		return Snapshot{
			Status:    StatusFinished,
			Total:     t.config.Total,
			Elapsed:   t.finalElapsed,
			Remaining: remaining,
			Progress:  progress(t.finalElapsed, t.config.Total),
		}
	default:
		elapsed := t.elapsedAt(now)
		if elapsed > t.config.Total {
			elapsed = t.config.Total
		}
		return Snapshot{
			Status:    t.status,
			Total:     t.config.Total,
			Elapsed:   elapsed,
			Remaining: t.config.Total - elapsed,
			Progress:  progress(elapsed, t.config.Total),
		}
	}
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
