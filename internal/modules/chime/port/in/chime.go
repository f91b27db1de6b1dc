package in

import (
	"context"

	"zazen/internal/modules/chime/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ChimeInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Play(ctx context.Context, input dto.PlayInput) error
}
