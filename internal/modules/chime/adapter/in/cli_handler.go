package in

import (
	"context"

	chimedto "zazen/internal/modules/chime/dto"
	chimein "zazen/internal/modules/chime/port/in"
)

type CLIHandler struct {
	usecase chimein.Usecase
}

func NewCLIHandler(usecase chimein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]chimedto.ChimeInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]chimedto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Test(ctx context.Context, chime, cue string) error {
	return h.usecase.Play(ctx, chimedto.PlayInput{Chime: chime, Cue: cue})
}
