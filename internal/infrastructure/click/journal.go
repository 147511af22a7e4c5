package click

import (
	"context"
	"fmt"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/ports"
)

const refreshesTable = "default.material_refreshes"

var _ ports.ISweepJournal = (*JournalWriter)(nil)

// JournalWriter пишет итоги прохода по ключам в ClickHouse: сколько пересчитывали, сколько пропускали, где падало.
type JournalWriter struct {
	db *Client
}

// NewJournalWriter создаёт писатель журнала.
func NewJournalWriter(db *Client) *JournalWriter {
	return &JournalWriter{db: db}
}

// EnsureTable создаёт таблицу журнала, если её ещё нет. Вызови один раз при старте приложения.
func (w *JournalWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key String,
			outcome LowCardinality(String),
			duration_ms Float64,
			error String,
			created_at DateTime64(3)
		) ENGINE = MergeTree()
		ORDER BY (key, created_at)
		PARTITION BY toYYYYMM(created_at)`,
		refreshesTable,
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteRefresh реализует ports.ISweepJournal: одна строка на ключ за проход.
func (w *JournalWriter) WriteRefresh(ctx context.Context, ev domain.RefreshEvent) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (key, outcome, duration_ms, error, created_at) VALUES (?, ?, ?, ?, ?)",
		refreshesTable,
	)
	ms := float64(ev.Duration.Microseconds()) / 1000
	_, err := w.db.DB().ExecContext(ctx, query, ev.Key, string(ev.Outcome), ms, ev.Error, ev.At)
	if err != nil {
		return fmt.Errorf("insert refresh: %w", err)
	}
	return nil
}
