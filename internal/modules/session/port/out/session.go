package out

import (
	"context"

	"zazen/internal/modules/session/domain"
)

// Notifier plays an audible cue. Invocations are fire-and-forget:
// the engine never blocks on, or reacts to, playback failures.
type Notifier interface {
	PlayCue(ctx context.Context, cue domain.Cue) error
}

// Recorder persists a completed session record.
type Recorder interface {
	Record(ctx context.Context, record domain.Record) error
}
