package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"zazen/internal/modules/session/domain"
	"zazen/internal/modules/session/service"
	"zazen/internal/platform/clock"
	apperrors "zazen/internal/platform/errors"
)

var t0 = time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	ticker *fakeTicker
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func (c *fakeClock) NewTicker(time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticker = &fakeTicker{ch: make(chan time.Time)}
	return c.ticker
}

// Ticker blocks until the runner under test has acquired its ticker.
func (c *fakeClock) Ticker() *fakeTicker {
	for {
		c.mu.Lock()
		ticker := c.ticker
		c.mu.Unlock()
		if ticker != nil {
			return ticker
		}
		time.Sleep(time.Millisecond)
	}
}

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeNotifier struct {
	mu   sync.Mutex
	cues []domain.Cue
	err  error
}

func (n *fakeNotifier) PlayCue(_ context.Context, cue domain.Cue) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cues = append(n.cues, cue)
	return n.err
}

func (n *fakeNotifier) Played() []domain.Cue {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Cue(nil), n.cues...)
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []domain.Record
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, record domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return r.err
}

func (r *fakeRecorder) Saved() []domain.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Record(nil), r.records...)
}

func countCue(cues []domain.Cue, want domain.Cue) int {
	n := 0
	for _, c := range cues {
		if c == want {
			n++
		}
	}
	return n
}

func TestEngineFullSessionDispatchesCuesAndRecord(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	notifier := &fakeNotifier{}
	recorder := &fakeRecorder{}
	engine := service.NewEngine(clk, notifier, recorder, nil)

	config := domain.Config{
		Total: 600 * time.Second,
		Cues:  domain.NewCueSet(domain.CueSessionStart, domain.CueHalfway, domain.CueSessionEnd),
	}
	if _, err := engine.Start(config); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := engine.Recompute(clk.Advance(300 * time.Second))
	if snap.Status != domain.StatusRunning || snap.Remaining != 300*time.Second {
		t.Fatalf("midpoint snapshot: %+v", snap)
	}
	snap = engine.Recompute(clk.Advance(300 * time.Second))
	if snap.Status != domain.StatusFinished || snap.Remaining != 0 {
		t.Fatalf("completion snapshot: %+v", snap)
	}
	engine.Close()

	played := notifier.Played()
	for _, cue := range []domain.Cue{domain.CueSessionStart, domain.CueHalfway, domain.CueSessionEnd} {
		if countCue(played, cue) != 1 {
			t.Fatalf("expected %s exactly once, got %v", cue, played)
		}
	}
	saved := recorder.Saved()
	if len(saved) != 1 || saved[0].Meditated != 600*time.Second || !saved[0].Completed {
		t.Fatalf("expected one completed 600s record, got %+v", saved)
	}
	if saved[0].StartedAt != t0 {
		t.Fatalf("record start time: got %v want %v", saved[0].StartedAt, t0)
	}
}

func TestEngineStartWhileRunningIsRejected(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	engine := service.NewEngine(clk, nil, nil, nil)
	if _, err := engine.Start(domain.Config{Total: time.Minute}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := engine.Start(domain.Config{Total: time.Hour}); !errors.Is(err, apperrors.ErrSessionNotIdle) {
		t.Fatalf("expected session-not-idle rejection, got %v", err)
	}
	if snap := engine.Snapshot(); snap.Total != time.Minute {
		t.Fatalf("rejected start must not reconfigure, got %+v", snap)
	}
	engine.Close()
}

func TestEngineCollaboratorFailuresDoNotAffectState(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	notifier := &fakeNotifier{err: errors.New("no audio device")}
	recorder := &fakeRecorder{err: errors.New("disk full")}
	engine := service.NewEngine(clk, notifier, recorder, nil)

	if _, err := engine.Start(domain.Config{Total: 10 * time.Second, Cues: domain.NewCueSet(domain.CueSessionStart, domain.CueSessionEnd)}); err != nil {
		t.Fatalf("start must succeed despite failing collaborators: %v", err)
	}
	snap := engine.Recompute(clk.Advance(10 * time.Second))
	if snap.Status != domain.StatusFinished {
		t.Fatalf("completion must proceed despite failing collaborators, got %+v", snap)
	}
	engine.Close()
}

func TestEnginePauseResumeFinishLifecycle(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	recorder := &fakeRecorder{}
	engine := service.NewEngine(clk, nil, recorder, nil)

	if _, err := engine.Start(domain.Config{Total: 120 * time.Second}); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(30 * time.Second)
	if snap := engine.Pause(); snap.Status != domain.StatusPaused {
		t.Fatalf("pause: %+v", snap)
	}
	clk.Advance(50 * time.Second)
	if snap := engine.Resume(); snap.Status != domain.StatusRunning {
		t.Fatalf("resume: %+v", snap)
	}
	snap := engine.Recompute(clk.Advance(50 * time.Second))
	if snap.Elapsed != 80*time.Second || snap.Remaining != 40*time.Second {
		t.Fatalf("pause span must be excluded, got %+v", snap)
	}

	if snap := engine.Finish(); snap.Status != domain.StatusFinished {
		t.Fatalf("finish: %+v", snap)
	}
	if snap := engine.Reset(); snap.Status != domain.StatusIdle {
		t.Fatalf("reset: %+v", snap)
	}
	engine.Close()

	saved := recorder.Saved()
	if len(saved) != 1 || saved[0].Meditated != 80*time.Second || saved[0].Completed {
		t.Fatalf("expected one partial 80s record, got %+v", saved)
	}
}

func TestEngineOnBecameActiveFinishesSuspendedSessionOnce(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	notifier := &fakeNotifier{}
	recorder := &fakeRecorder{}
	engine := service.NewEngine(clk, notifier, recorder, nil)

	if _, err := engine.Start(domain.Config{Total: 10 * time.Second, Cues: domain.NewCueSet(domain.CueSessionEnd)}); err != nil {
		t.Fatalf("start: %v", err)
	}
	now := clk.Advance(15 * time.Second)
	if snap := engine.OnBecameActive(now); snap.Status != domain.StatusFinished {
		t.Fatalf("resume signal must detect completion, got %+v", snap)
	}
	// Ticker and resume signal coalescing: a second pass for the same
	// instant changes nothing.
	engine.Recompute(now)
	engine.Close()

	if n := countCue(notifier.Played(), domain.CueSessionEnd); n != 1 {
		t.Fatalf("session end cue fired %d times", n)
	}
	if len(recorder.Saved()) != 1 {
		t.Fatalf("expected a single record, got %+v", recorder.Saved())
	}
}

func TestEngineSubscribeObservesTransitions(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	engine := service.NewEngine(clk, nil, nil, nil)
	updates := engine.Subscribe(8)

	if _, err := engine.Start(domain.Config{Total: time.Minute}); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.Recompute(clk.Advance(time.Minute))
	engine.Close()

	var last domain.Snapshot
	count := 0
	for snap := range updates {
		last = snap
		count++
	}
	if count < 2 {
		t.Fatalf("expected at least start and completion snapshots, got %d", count)
	}
	if last.Status != domain.StatusFinished {
		t.Fatalf("last observed snapshot should be finished, got %+v", last)
	}
}

func TestRunnerDrivesSessionToCompletionAndReleasesTicker(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	engine := service.NewEngine(clk, nil, nil, nil)
	if _, err := engine.Start(domain.Config{Total: 2 * time.Second}); err != nil {
		t.Fatalf("start: %v", err)
	}

	runner := service.NewRunner(engine, clk, time.Second)
	done := make(chan error, 1)
	go func() { done <- runner.Run(context.Background()) }()

	ticker := clk.Ticker()
	ticker.ch <- clk.Advance(time.Second)
	ticker.ch <- clk.Advance(time.Second)

	if err := <-done; err != nil {
		t.Fatalf("runner: %v", err)
	}
	if !ticker.Stopped() {
		t.Fatalf("runner must release the scheduling handle on exit")
	}
	if snap := engine.Snapshot(); snap.Status != domain.StatusFinished {
		t.Fatalf("expected finished session, got %+v", snap)
	}
	engine.Close()
}

func TestRunnerStopsOnCancellation(t *testing.T) {
	t.Parallel()
	clk := newFakeClock(t0)
	engine := service.NewEngine(clk, nil, nil, nil)
	if _, err := engine.Start(domain.Config{Total: time.Hour}); err != nil {
		t.Fatalf("start: %v", err)
	}

	runner := service.NewRunner(engine, clk, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	ticker := clk.Ticker()
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if !ticker.Stopped() {
		t.Fatalf("cancelled runner must still release its ticker")
	}
	engine.Close()
}
