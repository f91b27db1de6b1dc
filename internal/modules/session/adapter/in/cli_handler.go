package in

import (
	"context"

	sessiondto "zazen/internal/modules/session/dto"
	sessionin "zazen/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, durationSeconds int, cues []string) (sessiondto.StateOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{DurationSeconds: durationSeconds, Cues: cues})
}

func (h CLIHandler) Finish(ctx context.Context) sessiondto.StateOutput {
	return h.usecase.Finish(ctx)
}

func (h CLIHandler) State(ctx context.Context) sessiondto.StateOutput {
	return h.usecase.State(ctx)
}
