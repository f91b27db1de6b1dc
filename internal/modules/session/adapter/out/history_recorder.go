package out

import (
	"context"
	"time"

	historydto "zazen/internal/modules/history/dto"
	historyin "zazen/internal/modules/history/port/in"
	"zazen/internal/modules/session/domain"
	sessionout "zazen/internal/modules/session/port/out"
)

// HistoryRecorder persists finished sessions through the history module.
type HistoryRecorder struct {
	history historyin.Usecase
}

func NewHistoryRecorder(history historyin.Usecase) sessionout.Recorder {
	return &HistoryRecorder{history: history}
}

func (r *HistoryRecorder) Record(ctx context.Context, record domain.Record) error {
	_, err := r.history.Record(ctx, historydto.RecordInput{
		StartedAt:        record.StartedAt,
		MeditatedSeconds: int(record.Meditated / time.Second),
		PlannedSeconds:   int(record.Planned / time.Second),
		Completed:        record.Completed,
	})
	return err
}
