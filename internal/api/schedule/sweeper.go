// Package schedule — периодический запуск прохода по материалам.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/holmes-app/materialgirl/internal/ports"
)

// Config — настройки расписания. Переменные: MATERIALGIRL_SWEEP_INTERVAL, MATERIALGIRL_SWEEP_PURGE_INTERVAL.
type Config struct {
	Interval      time.Duration `envconfig:"INTERVAL" default:"5s"`
	PurgeInterval time.Duration `envconfig:"PURGE_INTERVAL" default:"1m"`
}

// Sweeper вызывает Run оркестратора раз в Interval и чистит хранилище раз в PurgeInterval.
type Sweeper struct {
	ctl    ports.IMaterialControl
	purger ports.IPurger
	cfg    Config
	log    *slog.Logger
}

// NewSweeper создаёт планировщик. purger может быть nil: хранилище чистит себя само.
func NewSweeper(cfg Config, ctl ports.IMaterialControl, purger ports.IPurger, log *slog.Logger) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &Sweeper{ctl: ctl, purger: purger, cfg: cfg, log: log}
}

// Run делает первый проход сразу, дальше по тикеру. Блокируется до отмены ctx.
func (s *Sweeper) Run(ctx context.Context) error {
	s.sweep(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	var purge <-chan time.Time
	if s.purger != nil && s.cfg.PurgeInterval > 0 {
		purgeTicker := time.NewTicker(s.cfg.PurgeInterval)
		defer purgeTicker.Stop()
		purge = purgeTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		case <-purge:
			s.purge(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	start := time.Now()
	if err := s.ctl.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Warn("sweep finished with errors", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	s.log.Debug("sweep finished", "duration_ms", time.Since(start).Milliseconds())
}

func (s *Sweeper) purge(ctx context.Context) {
	n, err := s.purger.Purge(ctx)
	if err != nil {
		s.log.Warn("purge failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Info("purged retained records", "count", n)
	}
}
