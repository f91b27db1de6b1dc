package in

import (
	"context"
	"time"

	"zazen/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error)
	Pause(ctx context.Context) dto.StateOutput
	Resume(ctx context.Context) dto.StateOutput
	Finish(ctx context.Context) dto.StateOutput
	Reset(ctx context.Context) dto.StateOutput
	Recompute(ctx context.Context, now time.Time) dto.StateOutput
	OnBecameActive(ctx context.Context, now time.Time) dto.StateOutput
	State(ctx context.Context) dto.StateOutput
}
