package out

import (
	"context"
	"time"

	"zazen/internal/modules/history/domain"
)

// JournalStore persists record notes to the journal directory. Notes
// are the durable source of truth.
type JournalStore interface {
	Save(ctx context.Context, record domain.Record) (string, error)
	List(ctx context.Context) ([]domain.Record, error)
}

// IndexProjector maintains the queryable projection of the journal.
type IndexProjector interface {
	Upsert(ctx context.Context, record domain.Record) error
	Reset(ctx context.Context) error
	List(ctx context.Context, limit int) ([]domain.Record, error)
	SumDay(ctx context.Context, day time.Time) (domain.DaySummary, error)
}
