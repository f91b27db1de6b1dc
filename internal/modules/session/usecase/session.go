package usecase

import (
	"context"
	"time"

	"zazen/internal/modules/session/domain"
	"zazen/internal/modules/session/dto"
	sessionin "zazen/internal/modules/session/port/in"
	"zazen/internal/modules/session/service"
	settingsin "zazen/internal/modules/settings/port/in"
	apperrors "zazen/internal/platform/errors"
)

// Interactor resolves start parameters against the persisted settings
// and translates engine snapshots into transport-friendly output.
type Interactor struct {
	engine   *service.Engine
	settings settingsin.Usecase
}

func NewInteractor(engine *service.Engine, settings settingsin.Usecase) sessionin.Usecase {
	return &Interactor{engine: engine, settings: settings}
}

// Start begins a session. A zero duration falls back to the configured
// default; a nil cue list falls back to the cues enabled in settings.
func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error) {
	seconds := input.DurationSeconds
	cueNames := input.Cues
	if seconds == 0 || cueNames == nil {
		stored, err := i.settings.Get(ctx)
		if err != nil {
			return dto.StateOutput{}, err
		}
		if seconds == 0 {
			seconds = stored.DefaultDurationSeconds
		}
		if cueNames == nil {
			cueNames = stored.EnabledCues
		}
	}
	if seconds <= 0 {
		return dto.StateOutput{}, apperrors.ErrInvalidDuration
	}

	cues := make([]domain.Cue, 0, len(cueNames))
	for _, name := range cueNames {
		cue := domain.Cue(name)
		if err := cue.Validate(); err != nil {
			return dto.StateOutput{}, err
		}
		cues = append(cues, cue)
	}

	snap, err := i.engine.Start(domain.Config{
		Total: time.Duration(seconds) * time.Second,
		Cues:  domain.NewCueSet(cues...),
	})
	if err != nil {
		return toOutput(snap), err
	}
	return toOutput(snap), nil
}

func (i *Interactor) Pause(context.Context) dto.StateOutput {
	return toOutput(i.engine.Pause())
}

func (i *Interactor) Resume(context.Context) dto.StateOutput {
	return toOutput(i.engine.Resume())
}

func (i *Interactor) Finish(context.Context) dto.StateOutput {
	return toOutput(i.engine.Finish())
}

func (i *Interactor) Reset(context.Context) dto.StateOutput {
	return toOutput(i.engine.Reset())
}

func (i *Interactor) Recompute(_ context.Context, now time.Time) dto.StateOutput {
	return toOutput(i.engine.Recompute(now))
}

func (i *Interactor) OnBecameActive(_ context.Context, now time.Time) dto.StateOutput {
	return toOutput(i.engine.OnBecameActive(now))
}

func (i *Interactor) State(context.Context) dto.StateOutput {
	return toOutput(i.engine.Snapshot())
}

func toOutput(snap domain.Snapshot) dto.StateOutput {
	return dto.StateOutput{
		Status:           string(snap.Status),
		TotalSeconds:     int(snap.Total / time.Second),
		ElapsedSeconds:   int(snap.Elapsed / time.Second),
		RemainingSeconds: int(snap.Remaining / time.Second),
		Progress:         snap.Progress,
	}
}
