package in

import (
	"context"

	historydto "zazen/internal/modules/history/dto"
	historyin "zazen/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, limit int) ([]historydto.RecordOutput, error) {
	return h.usecase.List(ctx, limit)
}

func (h CLIHandler) Today(ctx context.Context) (historydto.DaySummaryOutput, error) {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
