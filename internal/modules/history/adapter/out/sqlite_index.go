package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zazen/internal/modules/history/domain"
	historyout "zazen/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteIndex struct {
	db *sql.DB
}

func NewSQLiteIndex(dbPath string) (historyout.IndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *SQLiteIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sittings (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  day TEXT NOT NULL,
  meditated_seconds INTEGER NOT NULL,
  planned_seconds INTEGER NOT NULL,
  completed INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sittings_day ON sittings(day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sittings table: %w", err)
	}
	return nil
}

func (s *SQLiteIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sittings`); err != nil {
		return fmt.Errorf("reset sittings: %w", err)
	}
	return nil
}

func (s *SQLiteIndex) Upsert(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sittings (id, started_at, day, meditated_seconds, planned_seconds, completed)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  started_at=excluded.started_at,
  day=excluded.day,
  meditated_seconds=excluded.meditated_seconds,
  planned_seconds=excluded.planned_seconds,
  completed=excluded.completed;
`
	completed := 0
	if record.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.StartedAt.Format(timeLayout),
		record.StartedAt.Format("2006-01-02"),
		int(record.Meditated/time.Second),
		int(record.Planned/time.Second),
		completed,
	)
	if err != nil {
		return fmt.Errorf("upsert sitting: %w", err)
	}
	return nil
}

func (s *SQLiteIndex) List(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT id, started_at, meditated_seconds, planned_seconds, completed
FROM sittings
ORDER BY started_at DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sittings: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			record    domain.Record
			startedAt string
			meditated int
			planned   int
			completed int
		)
		if err := rows.Scan(&record.ID, &startedAt, &meditated, &planned, &completed); err != nil {
			return nil, fmt.Errorf("scan sitting: %w", err)
		}
		parsed, parseErr := time.Parse(timeLayout, startedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse started_at: %w", parseErr)
		}
		record.StartedAt = parsed
		record.Meditated = time.Duration(meditated) * time.Second
		record.Planned = time.Duration(planned) * time.Second
		record.Completed = completed != 0
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteIndex) SumDay(ctx context.Context, day time.Time) (domain.DaySummary, error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(meditated_seconds), 0)
FROM sittings
WHERE day = ?;
`
	var (
		count   int
		seconds int
	)
	row := s.db.QueryRowContext(ctx, query, day.Format("2006-01-02"))
	if err := row.Scan(&count, &seconds); err != nil {
		return domain.DaySummary{}, fmt.Errorf("sum day: %w", err)
	}
	return domain.DaySummary{
		Day:       time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		Sessions:  count,
		Meditated: time.Duration(seconds) * time.Second,
	}, nil
}
