// Package storagetest — набор проверок контракта ports.IStorage, общий для всех хранилищ.
//
// Хранилище вызывает Run из своего _test.go:
//
//	storagetest.Run(t, func(t *testing.T) ports.IStorage[[]byte] { return memory.New[[]byte]() }, storagetest.DefaultConfig())
package storagetest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes-app/materialgirl/internal/ports"
)

// Factory создаёт хранилище для одного подтеста.
type Factory func(t *testing.T) ports.IStorage[[]byte]

// Config — возможности хранилища, от которых зависят проверки.
type Config struct {
	// LockLease — timeout в AcquireLock ограничивает срок жизни блокировки.
	LockLease bool
	// Tick — базовый интервал для проверок со сроками.
	Tick time.Duration
}

// DefaultConfig — хранилище с арендой блокировок и миллисекундной точностью сроков.
func DefaultConfig() Config {
	return Config{LockLease: true, Tick: 50 * time.Millisecond}
}

// Run прогоняет все проверки контракта.
func Run(t *testing.T, newStorage Factory, cfg Config) {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultConfig().Tick
	}
	t.Run("StoreAndRetrieve", func(t *testing.T) { testStoreAndRetrieve(t, newStorage(t)) })
	t.Run("RetrieveMissing", func(t *testing.T) { testRetrieveMissing(t, newStorage(t)) })
	t.Run("StoreNoValue", func(t *testing.T) { testStoreNoValue(t, newStorage(t)) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, newStorage(t)) })
	t.Run("ExpirationRemovesValue", func(t *testing.T) { testExpirationRemovesValue(t, newStorage(t), cfg) })
	t.Run("GracePeriodKeepsValue", func(t *testing.T) { testGracePeriodKeepsValue(t, newStorage(t), cfg) })
	t.Run("IsExpired", func(t *testing.T) { testIsExpired(t, newStorage(t), cfg) })
	t.Run("ExpireKeepsValue", func(t *testing.T) { testExpireKeepsValue(t, newStorage(t)) })
	t.Run("ExpireMissing", func(t *testing.T) { testExpireMissing(t, newStorage(t)) })
	t.Run("LockIsExclusive", func(t *testing.T) { testLockIsExclusive(t, newStorage(t)) })
	t.Run("LockPerKey", func(t *testing.T) { testLockPerKey(t, newStorage(t)) })
	t.Run("ReleaseTwice", func(t *testing.T) { testReleaseTwice(t, newStorage(t)) })
	if cfg.LockLease {
		t.Run("LockLease", func(t *testing.T) { testLockLease(t, newStorage(t), cfg) })
	}
}

// keyFor даёт подтесту уникальный ключ, чтобы общие хранилища не пересекались.
func keyFor(t *testing.T, suffix string) string {
	return strings.NewReplacer("/", ".", " ", "_").Replace(t.Name()) + "." + suffix
}

func testStoreAndRetrieve(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()
	key := keyFor(t, "k")

	require.NoError(t, s.Store(ctx, key, []byte("woot"), 10*time.Second, 0))

	value, found, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("woot"), value)
}

func testRetrieveMissing(t *testing.T, s ports.IStorage[[]byte]) {
	value, found, err := s.Retrieve(context.Background(), keyFor(t, "missing"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func testStoreNoValue(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()
	key := keyFor(t, "k")
	missing := keyFor(t, "missing")

	require.NoError(t, s.Store(ctx, missing, nil, 10*time.Second, 0))
	_, found, err := s.Retrieve(ctx, missing)
	require.NoError(t, err)
	assert.False(t, found, "nil не должен создавать запись")

	require.NoError(t, s.Store(ctx, key, []byte("woot"), 10*time.Second, 0))
	require.NoError(t, s.Store(ctx, key, nil, 10*time.Second, 0))
	value, found, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("woot"), value, "nil не должен затирать запись")
}

func testOverwrite(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()
	key := keyFor(t, "k")

	require.NoError(t, s.Store(ctx, key, []byte("first"), 10*time.Second, 0))
	require.NoError(t, s.Store(ctx, key, []byte("second"), 10*time.Second, 0))

	value, found, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("second"), value)
}

func testExpirationRemovesValue(t *testing.T, s ports.IStorage[[]byte], cfg Config) {
	ctx := context.Background()
	key := keyFor(t, "k")

	require.NoError(t, s.Store(ctx, key, []byte("woot"), cfg.Tick, 0))
	time.Sleep(3 * cfg.Tick)

	_, found, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.False(t, found, "значение должно пропасть после expiration")

	expired, err := s.IsExpired(ctx, key, 0)
	require.NoError(t, err)
	assert.True(t, expired)
}

func testGracePeriodKeepsValue(t *testing.T, s ports.IStorage[[]byte], cfg Config) {
	ctx := context.Background()
	key := keyFor(t, "k")

	require.NoError(t, s.Store(ctx, key, []byte("woot"), cfg.Tick, 20*cfg.Tick))
	time.Sleep(3 * cfg.Tick)

	value, found, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.True(t, found, "в grace period значение должно читаться")
	assert.Equal(t, []byte("woot"), value)

	expired, err := s.IsExpired(ctx, key, cfg.Tick)
	require.NoError(t, err)
	assert.True(t, expired, "после expiration запись устарела, хотя ещё хранится")
}

func testIsExpired(t *testing.T, s ports.IStorage[[]byte], cfg Config) {
	ctx := context.Background()
	key := keyFor(t, "k")

	expired, err := s.IsExpired(ctx, key, 10*time.Second)
	require.NoError(t, err)
	assert.True(t, expired, "отсутствующий ключ считается устаревшим")

	require.NoError(t, s.Store(ctx, key, []byte("woot"), 10*time.Second, 0))

	expired, err = s.IsExpired(ctx, key, 10*time.Second)
	require.NoError(t, err)
	assert.False(t, expired, "только что сохранённый ключ свежий")

	expired, err = s.IsExpired(ctx, key, 0)
	require.NoError(t, err)
	assert.False(t, expired)

	time.Sleep(2 * cfg.Tick)
	expired, err = s.IsExpired(ctx, key, cfg.Tick)
	require.NoError(t, err)
	assert.True(t, expired, "запись старше переданного expiration устарела")
}

func testExpireKeepsValue(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()
	key := keyFor(t, "k")

	require.NoError(t, s.Store(ctx, key, []byte("woot"), 10*time.Second, 0))
	require.NoError(t, s.Expire(ctx, key))

	expired, err := s.IsExpired(ctx, key, 0)
	require.NoError(t, err)
	assert.True(t, expired)

	value, found, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.True(t, found, "устаревшее значение должно читаться")
	assert.Equal(t, []byte("woot"), value)

	require.NoError(t, s.Expire(ctx, key), "повторный Expire не ошибка")
	value, found, err = s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("woot"), value)

	require.NoError(t, s.Store(ctx, key, []byte("fresh"), 10*time.Second, 0))
	expired, err = s.IsExpired(ctx, key, 10*time.Second)
	require.NoError(t, err)
	assert.False(t, expired, "Store снимает пометку устаревания")

	value, _, err = s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), value)
}

func testExpireMissing(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()
	key := keyFor(t, "missing")

	require.NoError(t, s.Expire(ctx, key))

	expired, err := s.IsExpired(ctx, key, 0)
	require.NoError(t, err)
	assert.True(t, expired)

	_, found, err := s.Retrieve(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func testLockIsExclusive(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()
	key := keyFor(t, "k")

	first, err := s.AcquireLock(ctx, key, 0)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, key, first.Key())

	second, err := s.AcquireLock(ctx, key, 0)
	require.NoError(t, err)
	assert.Nil(t, second, "занятая блокировка не выдаётся")

	require.NoError(t, s.ReleaseLock(ctx, first))

	third, err := s.AcquireLock(ctx, key, 0)
	require.NoError(t, err)
	require.NotNil(t, third, "после освобождения блокировку можно взять снова")
	require.NoError(t, s.ReleaseLock(ctx, third))
}

func testLockPerKey(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()

	a, err := s.AcquireLock(ctx, keyFor(t, "a"), 0)
	require.NoError(t, err)
	require.NotNil(t, a)
	b, err := s.AcquireLock(ctx, keyFor(t, "b"), 0)
	require.NoError(t, err)
	require.NotNil(t, b, "блокировки разных ключей независимы")

	require.NoError(t, s.ReleaseLock(ctx, a))
	require.NoError(t, s.ReleaseLock(ctx, b))
}

func testReleaseTwice(t *testing.T, s ports.IStorage[[]byte]) {
	ctx := context.Background()
	key := keyFor(t, "k")

	lock, err := s.AcquireLock(ctx, key, 0)
	require.NoError(t, err)
	require.NotNil(t, lock)

	require.NoError(t, s.ReleaseLock(ctx, lock))
	require.NoError(t, s.ReleaseLock(ctx, lock), "повторное освобождение не должно падать")
}

func testLockLease(t *testing.T, s ports.IStorage[[]byte], cfg Config) {
	ctx := context.Background()
	key := keyFor(t, "k")

	stale, err := s.AcquireLock(ctx, key, cfg.Tick)
	require.NoError(t, err)
	require.NotNil(t, stale)

	time.Sleep(3 * cfg.Tick)

	current, err := s.AcquireLock(ctx, key, 10*time.Second)
	require.NoError(t, err)
	require.NotNil(t, current, "истёкшую аренду можно перехватить")

	require.NoError(t, s.ReleaseLock(ctx, stale), "устаревший токен освобождается без ошибки")

	blocked, err := s.AcquireLock(ctx, key, 0)
	require.NoError(t, err)
	assert.Nil(t, blocked, "устаревший токен не снимает чужую блокировку")

	require.NoError(t, s.ReleaseLock(ctx, current))
}
