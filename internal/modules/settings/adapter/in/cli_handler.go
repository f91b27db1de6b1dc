package in

import (
	"context"

	settingsdto "zazen/internal/modules/settings/dto"
	settingsin "zazen/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (settingsdto.Output, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Set(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.Output, error) {
	return h.usecase.Set(ctx, input)
}
