package in

import (
	"context"

	"zazen/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.Output, error)
	Set(ctx context.Context, input dto.UpdateInput) (dto.Output, error)
}
