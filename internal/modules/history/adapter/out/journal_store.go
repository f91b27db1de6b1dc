package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"zazen/internal/modules/history/domain"
	historyout "zazen/internal/modules/history/port/out"
	"zazen/internal/platform/note"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type frontmatter struct {
	ID               string `yaml:"id"`
	StartedAt        string `yaml:"started_at"`
	MeditatedSeconds int    `yaml:"meditated_seconds"`
	PlannedSeconds   int    `yaml:"planned_seconds"`
	Completed        bool   `yaml:"completed"`
}

// JournalStore keeps one markdown note per sitting under
// journal/YYYY/MM/DD/. The frontmatter carries the machine-readable
// record; the body is free for the user to annotate.
type JournalStore struct {
	journalPath string
}

func NewJournalStore(journalPath string) historyout.JournalStore {
	return &JournalStore{journalPath: journalPath}
}

func (s *JournalStore) Save(_ context.Context, record domain.Record) (string, error) {
	date := record.StartedAt
	dir := filepath.Join(s.journalPath, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	shortID := record.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", date.Format("150405"), shortID))

	meta := frontmatter{
		ID:               record.ID,
		StartedAt:        record.StartedAt.Format(timeLayout),
		MeditatedSeconds: int(record.Meditated / time.Second),
		PlannedSeconds:   int(record.Planned / time.Second),
		Completed:        record.Completed,
	}
	status := "ended early"
	if record.Completed {
		status = "completed"
	}
	body := fmt.Sprintf("# Sitting %s\n\n- Sat for %s of a planned %s (%s)\n\n## Notes\n",
		date.Format("2006-01-02 15:04"), record.Meditated, record.Planned, status)
	rendered, err := note.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

func (s *JournalStore) List(_ context.Context) ([]domain.Record, error) {
	var paths []string
	err := filepath.WalkDir(s.journalPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("walk journal: %w", err)
	}
	sort.Strings(paths)

	records := make([]domain.Record, 0, len(paths))
	for _, path := range paths {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read journal note: %w", readErr)
		}
		var meta frontmatter
		if _, splitErr := note.Split(string(content), &meta); splitErr != nil {
			return nil, fmt.Errorf("parse journal note %s: %w", path, splitErr)
		}
		startedAt, parseErr := time.Parse(timeLayout, meta.StartedAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse started_at in %s: %w", path, parseErr)
		}
		records = append(records, domain.Record{
			ID:        meta.ID,
			StartedAt: startedAt,
			Meditated: time.Duration(meta.MeditatedSeconds) * time.Second,
			Planned:   time.Duration(meta.PlannedSeconds) * time.Second,
			Completed: meta.Completed,
		})
	}
	return records, nil
}
