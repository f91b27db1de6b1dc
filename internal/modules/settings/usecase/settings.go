package usecase

import (
	"context"

	"zazen/internal/modules/settings/domain"
	"zazen/internal/modules/settings/dto"
	settingsin "zazen/internal/modules/settings/port/in"
	"zazen/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.Output, error) {
	settings, err := i.svc.Get(ctx)
	if err != nil {
		return dto.Output{}, err
	}
	return toOutput(settings), nil
}

func (i *Interactor) Set(ctx context.Context, input dto.UpdateInput) (dto.Output, error) {
	settings, err := i.svc.Update(ctx, input)
	if err != nil {
		return dto.Output{}, err
	}
	return toOutput(settings), nil
}

func toOutput(settings domain.Settings) dto.Output {
	return dto.Output{
		DefaultDurationSeconds: int(settings.DefaultDuration.Seconds()),
		CueSessionStart:        settings.CueSessionStart,
		CueSessionEnd:          settings.CueSessionEnd,
		CueHalfway:             settings.CueHalfway,
		CueEveryMinute:         settings.CueEveryMinute,
		Chime:                  settings.Chime,
		EnabledCues:            settings.EnabledCues(),
	}
}
