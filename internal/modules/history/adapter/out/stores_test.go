package out

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"zazen/internal/modules/history/domain"
)

var sat = time.Date(2026, time.March, 14, 7, 30, 0, 0, time.UTC)

func sampleRecord(id string, startedAt time.Time) domain.Record {
	return domain.Record{
		ID:        id,
		StartedAt: startedAt,
		Meditated: 10 * time.Minute,
		Planned:   10 * time.Minute,
		Completed: true,
	}
}

func TestJournalStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewJournalStore(t.TempDir())
	ctx := context.Background()

	path, err := store.Save(ctx, sampleRecord("deadbeefcafe", sat))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Ext(path) != ".md" {
		t.Errorf("note path = %q, want a markdown file", path)
	}
	if _, err := store.Save(ctx, sampleRecord("feedface0000", sat.Add(12*time.Hour))); err != nil {
		t.Fatalf("Save() second error = %v", err)
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List() returned %d records, want 2", len(records))
	}
	first := records[0]
	if first.ID != "deadbeefcafe" {
		t.Errorf("ID = %q, want deadbeefcafe", first.ID)
	}
	if !first.StartedAt.Equal(sat) {
		t.Errorf("StartedAt = %v, want %v", first.StartedAt, sat)
	}
	if first.Meditated != 10*time.Minute || !first.Completed {
		t.Errorf("record fields not preserved: %+v", first)
	}
}

func TestJournalStoreListOnEmptyDirectory(t *testing.T) {
	t.Parallel()

	store := NewJournalStore(filepath.Join(t.TempDir(), "missing"))
	records, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() on missing dir error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List() returned %d records, want 0", len(records))
	}
}

func TestSQLiteIndexListAndSumDay(t *testing.T) {
	t.Parallel()

	index, err := NewSQLiteIndex(filepath.Join(t.TempDir(), "zazen.db"))
	if err != nil {
		t.Fatalf("NewSQLiteIndex() error = %v", err)
	}
	ctx := context.Background()

	if err := index.Upsert(ctx, sampleRecord("one", sat)); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := index.Upsert(ctx, sampleRecord("two", sat.Add(time.Hour))); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := index.Upsert(ctx, sampleRecord("old", sat.AddDate(0, 0, -3))); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	records, err := index.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List(2) returned %d records, want 2", len(records))
	}
	if records[0].ID != "two" {
		t.Errorf("newest first: got %q, want two", records[0].ID)
	}

	summary, err := index.SumDay(ctx, sat)
	if err != nil {
		t.Fatalf("SumDay() error = %v", err)
	}
	if summary.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", summary.Sessions)
	}
	if summary.Meditated != 20*time.Minute {
		t.Errorf("Meditated = %v, want 20m", summary.Meditated)
	}
}

func TestSQLiteIndexUpsertReplacesExistingRow(t *testing.T) {
	t.Parallel()

	index, err := NewSQLiteIndex(filepath.Join(t.TempDir(), "zazen.db"))
	if err != nil {
		t.Fatalf("NewSQLiteIndex() error = %v", err)
	}
	ctx := context.Background()

	record := sampleRecord("one", sat)
	if err := index.Upsert(ctx, record); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	record.Meditated = 5 * time.Minute
	record.Completed = false
	if err := index.Upsert(ctx, record); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}

	records, err := index.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(records))
	}
	if records[0].Meditated != 5*time.Minute || records[0].Completed {
		t.Errorf("upsert did not replace fields: %+v", records[0])
	}
}
