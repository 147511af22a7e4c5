package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	apihttp "github.com/holmes-app/materialgirl/internal/api/http"
	"github.com/holmes-app/materialgirl/internal/api/http/controllers/materials"
	"github.com/holmes-app/materialgirl/internal/api/http/controllers/system"
	"github.com/holmes-app/materialgirl/internal/api/schedule"
	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/infrastructure/click"
	"github.com/holmes-app/materialgirl/internal/infrastructure/kafka"
	"github.com/holmes-app/materialgirl/internal/infrastructure/upstream"
	"github.com/holmes-app/materialgirl/internal/pkg/logger"
	"github.com/holmes-app/materialgirl/internal/usecase/materializer"
)

// App — приложение, хранит только конфиг.
type App struct {
	cfg Config
}

// New создаёт приложение с конфигом (хранилище подключается в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run подключает хранилище, регистрирует материалы из файла и запускает планировщик, консьюмер команд
// и HTTP-сервер. Блокируется до SIGINT/SIGTERM.
func (a *App) Run() error {
	log := logger.NewWithLevel(a.cfg.LogLevel, a.cfg.LogFile)
	slog.SetDefault(log)

	sources, err := LoadMaterials(a.cfg.MaterialsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openStorage(ctx, a.cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	opts := []materializer.Option{materializer.WithComputeOnMiss(a.cfg.ComputeOnMiss)}
	if a.cfg.ClickHouseEnabled {
		ch, err := click.New(&a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		defer ch.Close()
		journal := click.NewJournalWriter(ch)
		if err := journal.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse table: %w", err)
		}
		opts = append(opts, materializer.WithJournal(journal))
	}

	m, err := buildMaterializer(be, sources, upstream.New(&a.cfg.Upstream, nil, log), log, opts...)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	sweeper := schedule.NewSweeper(a.cfg.Sweep, m, be.purger, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("sweeper stopped", "error", err)
		}
	}()

	if a.cfg.KafkaEnabled {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, m, log)
		defer consumer.Close()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("kafka consumer stopped", "error", err)
			}
		}()
	}

	srv := apihttp.NewServer(a.cfg.Server, log)
	srv.AddController(
		system.New(be.pinger, log),
		materials.New(m, log))

	slog.Info("application started",
		"http", a.cfg.Server.Addr(),
		"storage", a.cfg.StorageDriver,
		"materials", len(sources),
		"kafka", a.cfg.KafkaEnabled,
		"clickhouse", a.cfg.ClickHouseEnabled)

	err = srv.Start(ctx)
	stop()
	wg.Wait()
	return err
}

// buildMaterializer создаёт оркестратор снимков и регистрирует по материалу на источник.
func buildMaterializer(be *backend, sources []domain.Source, fetcher *upstream.Fetcher, log *slog.Logger, opts ...materializer.Option) (*materializer.Materializer[domain.Snapshot], error) {
	m := materializer.New[domain.Snapshot](be.storage, log, opts...)
	for _, src := range sources {
		if err := m.AddMaterial(src.Key, fetcher.Producer(src), src.Options()...); err != nil {
			return nil, fmt.Errorf("material %q: %w", src.Key, err)
		}
	}
	return m, nil
}
