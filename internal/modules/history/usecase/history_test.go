package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"zazen/internal/modules/history/domain"
	"zazen/internal/modules/history/dto"
	"zazen/internal/modules/history/service"
	"zazen/internal/platform/clock"
	apperrors "zazen/internal/platform/errors"
)

type fakeJournal struct {
	records []domain.Record
	saveErr error
	listErr error
}

func (f *fakeJournal) Save(_ context.Context, record domain.Record) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.records = append(f.records, record)
	return "/journal/" + record.ID + ".md", nil
}

func (f *fakeJournal) List(context.Context) ([]domain.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

type fakeIndex struct {
	records   map[string]domain.Record
	resets    int
	upsertErr error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{records: map[string]domain.Record{}}
}

func (f *fakeIndex) Upsert(_ context.Context, record domain.Record) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeIndex) Reset(context.Context) error {
	f.resets++
	f.records = map[string]domain.Record{}
	return nil
}

func (f *fakeIndex) List(_ context.Context, limit int) ([]domain.Record, error) {
	out := make([]domain.Record, 0, len(f.records))
	for _, record := range f.records {
		out = append(out, record)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeIndex) SumDay(_ context.Context, day time.Time) (domain.DaySummary, error) {
	summary := domain.DaySummary{Day: day}
	for _, record := range f.records {
		if record.StartedAt.Format("2006-01-02") == day.Format("2006-01-02") {
			summary.Sessions++
			summary.Meditated += record.Meditated
		}
	}
	return summary, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) NewTicker(time.Duration) clock.Ticker { panic("not used") }

type fixedID struct{ value string }

func (g fixedID) New() string { return g.value }

var noon = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func newHistory(journal *fakeJournal, index *fakeIndex) *Interactor {
	svc := service.NewHistoryService(journal, index, fixedClock{now: noon}, fixedID{value: "abc123"})
	return NewInteractor(svc).(*Interactor)
}

func TestRecordAssignsIDAndWritesBothStores(t *testing.T) {
	t.Parallel()

	journal := &fakeJournal{}
	index := newFakeIndex()
	interactor := newHistory(journal, index)

	output, err := interactor.Record(context.Background(), dto.RecordInput{
		StartedAt:        noon,
		MeditatedSeconds: 600,
		PlannedSeconds:   600,
		Completed:        true,
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if output.ID != "abc123" {
		t.Errorf("ID = %q, want generated abc123", output.ID)
	}
	if output.NotePath == "" {
		t.Error("NotePath should point at the journal note")
	}
	if len(journal.records) != 1 {
		t.Fatalf("journal has %d records, want 1", len(journal.records))
	}
	if _, ok := index.records["abc123"]; !ok {
		t.Error("index should contain the new record")
	}
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	interactor := newHistory(&fakeJournal{}, newFakeIndex())

	_, err := interactor.Record(context.Background(), dto.RecordInput{
		StartedAt:        noon,
		MeditatedSeconds: 0,
		PlannedSeconds:   600,
	})
	if !errors.Is(err, apperrors.ErrInvalidDuration) {
		t.Fatalf("Record() error = %v, want ErrInvalidDuration", err)
	}

	_, err = interactor.Record(context.Background(), dto.RecordInput{
		MeditatedSeconds: 60,
		PlannedSeconds:   600,
	})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("Record() with zero StartedAt error = %v, want ErrInvalidInput", err)
	}
}

func TestRecordStopsWhenJournalFails(t *testing.T) {
	t.Parallel()

	journal := &fakeJournal{saveErr: errors.New("disk full")}
	index := newFakeIndex()
	interactor := newHistory(journal, index)

	_, err := interactor.Record(context.Background(), dto.RecordInput{
		StartedAt:        noon,
		MeditatedSeconds: 60,
		PlannedSeconds:   60,
	})
	if err == nil {
		t.Fatal("Record() should surface the journal failure")
	}
	if len(index.records) != 0 {
		t.Error("index must not be written when the journal save fails")
	}
}

func TestTodaySumsOnlyMatchingDay(t *testing.T) {
	t.Parallel()

	journal := &fakeJournal{}
	index := newFakeIndex()
	index.records["a"] = domain.Record{ID: "a", StartedAt: noon, Meditated: 10 * time.Minute}
	index.records["b"] = domain.Record{ID: "b", StartedAt: noon.Add(2 * time.Hour), Meditated: 5 * time.Minute}
	index.records["c"] = domain.Record{ID: "c", StartedAt: noon.AddDate(0, 0, -1), Meditated: 30 * time.Minute}
	interactor := newHistory(journal, index)

	summary, err := interactor.Today(context.Background())
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if summary.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", summary.Sessions)
	}
	if summary.MeditatedSeconds != 15*60 {
		t.Errorf("MeditatedSeconds = %d, want 900", summary.MeditatedSeconds)
	}
}

func TestReindexRebuildsFromJournal(t *testing.T) {
	t.Parallel()

	journal := &fakeJournal{records: []domain.Record{
		{ID: "x", StartedAt: noon, Meditated: time.Minute, Planned: time.Minute, Completed: true},
		{ID: "y", StartedAt: noon.Add(time.Hour), Meditated: 2 * time.Minute, Planned: 5 * time.Minute},
	}}
	index := newFakeIndex()
	index.records["stale"] = domain.Record{ID: "stale"}
	interactor := newHistory(journal, index)

	if err := interactor.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex() error = %v", err)
	}
	if index.resets != 1 {
		t.Errorf("index resets = %d, want 1", index.resets)
	}
	if len(index.records) != 2 {
		t.Fatalf("index has %d records after reindex, want 2", len(index.records))
	}
	if _, ok := index.records["stale"]; ok {
		t.Error("stale record should be gone after reindex")
	}
}
