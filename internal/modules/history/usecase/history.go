package usecase

import (
	"context"
	"time"

	"zazen/internal/modules/history/domain"
	"zazen/internal/modules/history/dto"
	historyin "zazen/internal/modules/history/port/in"
	"zazen/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error) {
	record, path, err := i.svc.Record(ctx, domain.Record{
		StartedAt: input.StartedAt,
		Meditated: time.Duration(input.MeditatedSeconds) * time.Second,
		Planned:   time.Duration(input.PlannedSeconds) * time.Second,
		Completed: input.Completed,
	})
	if err != nil {
		return dto.RecordOutput{}, err
	}
	output := toOutput(record)
	output.NotePath = path
	return output, nil
}

func (i *Interactor) List(ctx context.Context, limit int) ([]dto.RecordOutput, error) {
	records, err := i.svc.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		out = append(out, toOutput(record))
	}
	return out, nil
}

func (i *Interactor) Today(ctx context.Context) (dto.DaySummaryOutput, error) {
	summary, err := i.svc.Today(ctx)
	if err != nil {
		return dto.DaySummaryOutput{}, err
	}
	return dto.DaySummaryOutput{
		Day:              summary.Day,
		Sessions:         summary.Sessions,
		MeditatedSeconds: int(summary.Meditated / time.Second),
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(record domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		ID:               record.ID,
		StartedAt:        record.StartedAt,
		MeditatedSeconds: int(record.Meditated / time.Second),
		PlannedSeconds:   int(record.Planned / time.Second),
		Completed:        record.Completed,
	}
}
