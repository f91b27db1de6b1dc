package service

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"zazen/internal/modules/session/domain"
	sessionout "zazen/internal/modules/session/port/out"
	"zazen/internal/platform/clock"
	apperrors "zazen/internal/platform/errors"
)

// Engine is the single owner of session state. Every transition runs
// under one mutex, so user commands and periodic recomputes are
// serialized no matter which goroutine delivers them. Collaborator
// calls (chime playback, history persistence) happen on detached
// goroutines; their failures are logged and never touch timer state.
type Engine struct {
	mu       sync.Mutex
	timer    *domain.Timer
	clock    clock.Clock
	notifier sessionout.Notifier
	recorder sessionout.Recorder
	log      hclog.Logger
	subs     []chan domain.Snapshot
	inflight sync.WaitGroup
	closed   bool
}

func NewEngine(clk clock.Clock, notifier sessionout.Notifier, recorder sessionout.Recorder, log hclog.Logger) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{
		timer:    domain.NewTimer(),
		clock:    clk,
		notifier: notifier,
		recorder: recorder,
		log:      log,
	}
}

// Start begins a session. Duration and cue selection are fixed until
// the timer returns to Idle; starting over a live session is rejected
// without touching it.
func (e *Engine) Start(config domain.Config) (domain.Snapshot, error) {
	e.mu.Lock()
	now := e.clock.Now()
	if current := e.timer.Snapshot(now); current.Status != domain.StatusIdle {
		e.mu.Unlock()
		return current, apperrors.ErrSessionNotIdle
	}
	snap, cues, err := e.timer.Start(config, now)
	e.mu.Unlock()
	if err != nil {
		return snap, err
	}
	e.dispatch(cues)
	e.emit(snap)
	return snap, nil
}

func (e *Engine) Pause() domain.Snapshot {
	e.mu.Lock()
	snap := e.timer.Pause(e.clock.Now())
	e.mu.Unlock()
	e.emit(snap)
	return snap
}

func (e *Engine) Resume() domain.Snapshot {
	e.mu.Lock()
	snap := e.timer.Resume(e.clock.Now())
	e.mu.Unlock()
	e.emit(snap)
	return snap
}

// Recompute re-derives progress at now and performs the side effects
// the transition demands. Safe to call from both the periodic ticker
// and a resume-from-background signal; a duplicate pass for the same
// instant is harmless.
func (e *Engine) Recompute(now time.Time) domain.Snapshot {
	e.mu.Lock()
	snap, cues, record := e.timer.Recompute(now)
	e.mu.Unlock()
	e.dispatch(cues)
	if record != nil {
		e.record(*record)
	}
	e.emit(snap)
	return snap
}

// OnBecameActive is the host's resume-from-suspension signal: an
// immediate forced recompute.
func (e *Engine) OnBecameActive(now time.Time) domain.Snapshot {
	return e.Recompute(now)
}

// Finish ends the session on user request, recording partial progress.
func (e *Engine) Finish() domain.Snapshot {
	e.mu.Lock()
	snap, record := e.timer.Finish(e.clock.Now())
	e.mu.Unlock()
	if record != nil {
		e.record(*record)
	}
	e.emit(snap)
	return snap
}

func (e *Engine) Reset() domain.Snapshot {
	e.mu.Lock()
	snap := e.timer.Reset()
	e.mu.Unlock()
	e.emit(snap)
	return snap
}

func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timer.Snapshot(e.clock.Now())
}

// Subscribe registers an observer channel for snapshots emitted after
// every transition. Slow observers drop updates rather than stall the
// engine.
func (e *Engine) Subscribe(buffer int) <-chan domain.Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan domain.Snapshot, buffer)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

// Close waits for in-flight collaborator calls and closes observer
// channels. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	subs := e.subs
	e.subs = nil
	e.mu.Unlock()

	e.inflight.Wait()
	for _, ch := range subs {
		close(ch)
	}
}

func (e *Engine) dispatch(cues []domain.Cue) {
	if e.notifier == nil || len(cues) == 0 {
		return
	}
	for _, cue := range cues {
		cue := cue
		e.inflight.Add(1)
		go func() {
			defer e.inflight.Done()
			if err := e.notifier.PlayCue(context.Background(), cue); err != nil {
				e.log.Warn("cue playback failed", "cue", cue, "error", err)
			}
		}()
	}
}

func (e *Engine) record(record domain.Record) {
	if e.recorder == nil {
		return
	}
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		if err := e.recorder.Record(context.Background(), record); err != nil {
			e.log.Error("session record persistence failed", "error", err)
		}
	}()
}

func (e *Engine) emit(snap domain.Snapshot) {
	e.mu.Lock()
	subs := append([]chan domain.Snapshot(nil), e.subs...)
	e.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
