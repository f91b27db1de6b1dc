package out

import (
	"context"

	"zazen/internal/modules/chime/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host launches a chime plugin binary for the duration of one call.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Play(ctx context.Context, manifest domain.Manifest, cue string) error
}

// Bell is the builtin fallback used when no chime plugin is selected.
type Bell interface {
	Ring(ctx context.Context, cue string) error
}
