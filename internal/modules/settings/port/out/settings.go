package out

import (
	"context"

	"zazen/internal/modules/settings/domain"
)

type Store interface {
	// Load returns defaults when no settings file exists yet.
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
