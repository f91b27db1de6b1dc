package in

import (
	"context"

	"zazen/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.RecordOutput, error)
	List(ctx context.Context, limit int) ([]dto.RecordOutput, error)
	Today(ctx context.Context) (dto.DaySummaryOutput, error)
	Reindex(ctx context.Context) error
}
