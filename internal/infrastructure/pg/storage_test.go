package pg

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes-app/materialgirl/internal/pkg/codec"
	"github.com/holmes-app/materialgirl/internal/pkg/testutil"
	"github.com/holmes-app/materialgirl/internal/ports"
	"github.com/holmes-app/materialgirl/internal/ports/storagetest"
)

// pgContainer — контейнер PostgreSQL, поднимается один раз для всех тестов пакета.
var pgContainer *testutil.PostgresContainer

func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() {
		var err error
		pgContainer, err = testutil.Start(testutil.NewPostgresContainer)
		if err != nil {
			log.Printf("pg: контейнер не поднят, интеграционные тесты будут пропущены: %v", err)
			pgContainer = nil
		}
	}

	code := m.Run()

	if pgContainer != nil {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			log.Printf("pg: ошибка остановки контейнера: %v", err)
		}
	}
	os.Exit(code)
}

// newTestLogger создаёт логгер для тестов.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupDB подключается к тестовой БД, применяет миграции и очищает таблицу.
func setupDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
	if pgContainer == nil {
		t.Skip("Docker недоступен")
	}

	db, err := New(&Config{
		Host:     pgContainer.Host,
		Port:     pgContainer.Port,
		User:     pgContainer.User,
		Password: pgContainer.Password,
		DBName:   pgContainer.DBName,
		SSLMode:  "disable",
	})
	require.NoError(t, err, "не удалось подключиться к PostgreSQL")

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db), "не удалось применить миграции")
	_, err = db.ExecContext(ctx, "TRUNCATE TABLE materials")
	require.NoError(t, err, "не удалось очистить таблицу")

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// fakeClock — управляемые часы для проверок сроков хранения.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestStorage_Contract(t *testing.T) {
	cfg := storagetest.DefaultConfig()
	cfg.LockLease = false
	storagetest.Run(t, func(t *testing.T) ports.IStorage[[]byte] {
		return NewStorage[[]byte](setupDB(t), codec.Msgpack{}, newTestLogger())
	}, cfg)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))
}

func TestStorage_LockAcrossInstances(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	first := NewStorage[string](db, nil, newTestLogger())
	second := NewStorage[string](db, nil, newTestLogger())

	lock, err := first.AcquireLock(ctx, "test", 0)
	require.NoError(t, err)
	require.NotNil(t, lock)

	other, err := second.AcquireLock(ctx, "test", 0)
	require.NoError(t, err)
	assert.Nil(t, other, "advisory-блокировка видна из другой сессии")

	require.NoError(t, first.ReleaseLock(ctx, lock))

	other, err = second.AcquireLock(ctx, "test", 0)
	require.NoError(t, err)
	require.NotNil(t, other)
	require.NoError(t, second.ReleaseLock(ctx, other))
}

func TestStorage_ReleaseForeignLock(t *testing.T) {
	s := NewStorage[string](nil, nil, newTestLogger())
	err := s.ReleaseLock(context.Background(), nil)
	assert.Error(t, err)
}

func TestStorage_RetentionAndPurge(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	s := NewStorage[string](db, codec.JSON{}, newTestLogger(), WithClock(clock.Now))

	require.NoError(t, s.Store(ctx, "short", "a", time.Second, 0))
	require.NoError(t, s.Store(ctx, "grace", "b", time.Second, time.Minute))
	require.NoError(t, s.Store(ctx, "forever", "c", 0, 0))

	clock.Advance(2 * time.Second)

	_, found, err := s.Retrieve(ctx, "short")
	require.NoError(t, err)
	assert.False(t, found)

	value, found, err := s.Retrieve(ctx, "grace")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", value)

	expired, err := s.IsExpired(ctx, "grace", time.Second)
	require.NoError(t, err)
	assert.True(t, expired)

	purged, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged, "удаляется только строка с истёкшим сроком хранения")

	clock.Advance(24 * time.Hour)
	value, found, err = s.Retrieve(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, found, "нулевой срок хранения — бессрочно")
	assert.Equal(t, "c", value)
}

func TestStorage_Ping(t *testing.T) {
	db := setupDB(t)
	s := NewStorage[string](db, nil, newTestLogger())
	assert.NoError(t, s.Ping(context.Background()))
}
