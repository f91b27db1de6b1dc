package usecase

import (
	"context"

	"zazen/internal/modules/chime/dto"
	chimein "zazen/internal/modules/chime/port/in"
	"zazen/internal/modules/chime/service"
)

type Interactor struct {
	svc *service.ChimeService
}

func NewInteractor(svc *service.ChimeService) chimein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ChimeInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Play(ctx context.Context, input dto.PlayInput) error {
	return i.svc.Play(ctx, input.Chime, input.Cue)
}
