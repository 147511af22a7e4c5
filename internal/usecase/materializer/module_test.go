package materializer

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/infrastructure/memory"
)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testClock — ручные часы, общие для оркестратора и хранилища.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// counter — производитель, считающий свои вызовы.
type counter struct {
	mu    sync.Mutex
	calls int
	value string
	err   error
}

func (c *counter) produce(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.value, nil
}

func (c *counter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestAddMaterial_KeepsRegistrationOrder(t *testing.T) {
	m := New[string](memory.New[string](), newTestLogger())

	require.NoError(t, m.AddMaterial("b", (&counter{value: "1"}).produce))
	require.NoError(t, m.AddMaterial("a", (&counter{value: "2"}).produce))
	require.NoError(t, m.AddMaterial("b", (&counter{value: "3"}).produce, domain.WithExpiration(time.Minute)))

	assert.Equal(t, []string{"b", "a"}, m.Keys(), "повторная регистрация не меняет порядок")

	mat, err := m.lookup("b")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mat.Expiration, "последняя регистрация побеждает")
}

func TestAddMaterial_Defaults(t *testing.T) {
	m := New[string](memory.New[string](), newTestLogger())
	require.NoError(t, m.AddMaterial("test", (&counter{value: "woot"}).produce))

	mat, err := m.lookup("test")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, mat.Expiration)
	assert.Equal(t, time.Duration(0), mat.GracePeriod)
	assert.Equal(t, time.Duration(0), mat.LockTimeout)
}

func TestAddMaterial_Invalid(t *testing.T) {
	m := New[string](memory.New[string](), newTestLogger())

	tests := []struct {
		name     string
		key      string
		producer domain.Producer[string]
		opts     []domain.Option
	}{
		{name: "пустой ключ", key: "", producer: (&counter{}).produce},
		{name: "нет производителя", key: "k", producer: nil},
		{name: "отрицательный expiration", key: "k", producer: (&counter{}).produce, opts: []domain.Option{domain.WithExpiration(-time.Second)}},
		{name: "отрицательный grace period", key: "k", producer: (&counter{}).produce, opts: []domain.Option{domain.WithGracePeriod(-time.Second)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.AddMaterial(tt.key, tt.producer, tt.opts...)
			assert.ErrorIs(t, err, domain.ErrInvalidMaterial)
		})
	}
	assert.Empty(t, m.Keys())
}
