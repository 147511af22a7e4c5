package mongo

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/holmes-app/materialgirl/internal/pkg/codec"
	"github.com/holmes-app/materialgirl/internal/pkg/testutil"
	"github.com/holmes-app/materialgirl/internal/ports"
	"github.com/holmes-app/materialgirl/internal/ports/storagetest"
)

// mongoContainer — контейнер MongoDB, поднимается один раз для всех тестов пакета.
var mongoContainer *testutil.MongoContainer

func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() {
		var err error
		mongoContainer, err = testutil.Start(testutil.NewMongoContainer)
		if err != nil {
			log.Printf("mongo: контейнер не поднят, интеграционные тесты будут пропущены: %v", err)
			mongoContainer = nil
		}
	}

	code := m.Run()

	if mongoContainer != nil {
		if err := mongoContainer.Terminate(context.Background()); err != nil {
			log.Printf("mongo: ошибка остановки контейнера: %v", err)
		}
	}
	os.Exit(code)
}

// newTestLogger создаёт логгер для тестов.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupClient подключается к тестовому MongoDB, очищает базу и создаёт индексы.
func setupClient(t *testing.T) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
	if mongoContainer == nil {
		t.Skip("Docker недоступен")
	}

	ctx := context.Background()
	client, err := New(ctx, &Config{
		URI:            mongoContainer.URI(),
		Database:       "materialgirl_test",
		Collection:     "materials",
		LockCollection: "material_locks",
	})
	require.NoError(t, err, "не удалось подключиться к MongoDB")

	require.NoError(t, client.DB().Drop(ctx), "не удалось очистить базу")
	require.NoError(t, client.EnsureIndexes(ctx), "не удалось создать индексы")

	t.Cleanup(func() {
		client.Close(context.Background())
	})
	return client
}

func TestStorage_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) ports.IStorage[[]byte] {
		return NewStorage[[]byte](setupClient(t), codec.Msgpack{}, newTestLogger())
	}, storagetest.DefaultConfig())
}

func TestStorage_Documents(t *testing.T) {
	client := setupClient(t)
	s := NewStorage[string](client, codec.JSON{}, newTestLogger())
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "test", "woot", 10*time.Second, time.Minute))
	require.NoError(t, s.Store(ctx, "forever", "woot", 0, 0))
	require.NoError(t, s.Expire(ctx, "test"))

	var doc materialDoc
	require.NoError(t, client.Coll().FindOne(ctx, bson.M{"_id": "test"}).Decode(&doc))
	assert.Equal(t, `"woot"`, string(doc.Value), "значение закодировано кодеком хранилища")
	assert.True(t, doc.Expired)
	require.NotNil(t, doc.RetainUntil)
	assert.WithinDuration(t, doc.StoredAt.Add(time.Minute), *doc.RetainUntil, time.Millisecond, "срок хранения = max(expiration, grace)")

	doc = materialDoc{}
	require.NoError(t, client.Coll().FindOne(ctx, bson.M{"_id": "forever"}).Decode(&doc))
	assert.Nil(t, doc.RetainUntil, "нулевой срок хранения — без TTL")
}

func TestStorage_ZeroTimeoutLockIsNotTakenOver(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()
	clock := time.Now()
	s := NewStorage[string](client, nil, newTestLogger(), WithClock(func() time.Time { return clock }))

	lock, err := s.AcquireLock(ctx, "test", 0)
	require.NoError(t, err)
	require.NotNil(t, lock)

	clock = clock.Add(24 * time.Hour)
	other, err := s.AcquireLock(ctx, "test", time.Second)
	require.NoError(t, err)
	assert.Nil(t, other, "блокировка без аренды держится до освобождения")

	require.NoError(t, s.ReleaseLock(ctx, lock))
}

func TestStorage_IndexesAreIdempotent(t *testing.T) {
	client := setupClient(t)
	assert.NoError(t, client.EnsureIndexes(context.Background()))
}
