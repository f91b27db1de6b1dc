package service

import (
	"context"

	"zazen/internal/modules/history/domain"
	historyout "zazen/internal/modules/history/port/out"
	"zazen/internal/platform/clock"
	"zazen/internal/platform/id"
)

type HistoryService struct {
	journal historyout.JournalStore
	index   historyout.IndexProjector
	clock   clock.Clock
	idgen   id.Generator
}

func NewHistoryService(journal historyout.JournalStore, index historyout.IndexProjector, clk clock.Clock, idgen id.Generator) *HistoryService {
	return &HistoryService{journal: journal, index: index, clock: clk, idgen: idgen}
}

// Record writes the journal note first, then projects it into the
// index. A record that reaches the journal survives an index failure;
// the next reindex picks it up.
func (s *HistoryService) Record(ctx context.Context, record domain.Record) (domain.Record, string, error) {
	if record.ID == "" {
		record.ID = s.idgen.New()
	}
	if err := record.Validate(); err != nil {
		return domain.Record{}, "", err
	}
	path, err := s.journal.Save(ctx, record)
	if err != nil {
		return domain.Record{}, "", err
	}
	if err := s.index.Upsert(ctx, record); err != nil {
		return domain.Record{}, "", err
	}
	return record, path, nil
}

func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Record, error) {
	return s.index.List(ctx, limit)
}

func (s *HistoryService) Today(ctx context.Context) (domain.DaySummary, error) {
	return s.index.SumDay(ctx, s.clock.Now())
}

// Reindex rebuilds the index projection from journal notes.
func (s *HistoryService) Reindex(ctx context.Context) error {
	if err := s.index.Reset(ctx); err != nil {
		return err
	}
	records, err := s.journal.List(ctx)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := s.index.Upsert(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
