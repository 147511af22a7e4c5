package domain

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Политика материала по умолчанию.
const (
	DefaultExpiration  = 10 * time.Second
	DefaultGracePeriod = time.Duration(0)
	DefaultLockTimeout = time.Duration(0)
)

var (
	// ErrKeyNotFound возвращается, когда ключ не зарегистрирован через AddMaterial.
	ErrKeyNotFound = errors.New("key not found in materials")
	// ErrProducerFailed оборачивает ошибку функции-производителя.
	ErrProducerFailed = errors.New("producer failed")
	// ErrInvalidMaterial — некорректные параметры регистрации материала.
	ErrInvalidMaterial = errors.New("invalid material")
)

// KeyNotFound возвращает ошибку ErrKeyNotFound с ключом в тексте.
func KeyNotFound(key string) error {
	return fmt.Errorf("%w: %q, maybe AddMaterial was not called for this key", ErrKeyNotFound, key)
}

// Producer — дорогая функция, вычисляющая значение материала.
type Producer[V any] func(ctx context.Context) (V, error)

// Policy — временная политика материала.
type Policy struct {
	// Expiration — сколько значение считается свежим после сохранения.
	Expiration time.Duration
	// GracePeriod — сколько устаревшее значение ещё можно отдавать, пока идёт пересчёт.
	GracePeriod time.Duration
	// LockTimeout — срок аренды блокировки; семантику определяет хранилище. 0 — без аренды.
	LockTimeout time.Duration
}

// Option меняет политику при регистрации.
type Option func(*Policy)

// WithExpiration задаёт время жизни свежего значения.
func WithExpiration(d time.Duration) Option {
	return func(p *Policy) { p.Expiration = d }
}

// WithGracePeriod задаёт окно отдачи устаревшего значения.
func WithGracePeriod(d time.Duration) Option {
	return func(p *Policy) { p.GracePeriod = d }
}

// WithLockTimeout задаёт срок аренды блокировки.
func WithLockTimeout(d time.Duration) Option {
	return func(p *Policy) { p.LockTimeout = d }
}

// Material — одно именованное кэшируемое значение: производитель, политика и последнее посчитанное значение.
type Material[V any] struct {
	Key string
	Policy

	producer Producer[V]

	mu             sync.Mutex
	current        V
	hasValue       bool
	expirationDate time.Time
}

// NewMaterial создаёт материал с политикой по умолчанию, изменённой опциями.
func NewMaterial[V any](key string, producer Producer[V], opts ...Option) (*Material[V], error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidMaterial)
	}
	if producer == nil {
		return nil, fmt.Errorf("%w: nil producer for %q", ErrInvalidMaterial, key)
	}
	p := Policy{
		Expiration:  DefaultExpiration,
		GracePeriod: DefaultGracePeriod,
		LockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(&p)
	}
	if p.Expiration < 0 || p.GracePeriod < 0 || p.LockTimeout < 0 {
		return nil, fmt.Errorf("%w: negative duration for %q", ErrInvalidMaterial, key)
	}
	return &Material[V]{Key: key, Policy: p, producer: producer}, nil
}

// IsExpired — локальная проверка: значения ещё нет или now позже expirationDate.
func (m *Material[V]) IsExpired(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.hasValue || now.After(m.expirationDate)
}

// Get синхронно вызывает производителя и запоминает результат.
// При ошибке прежнее значение и expirationDate не меняются.
func (m *Material[V]) Get(ctx context.Context) (V, error) {
	v, err := m.producer(ctx)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("%w: %s: %w", ErrProducerFailed, m.Key, err)
	}
	m.mu.Lock()
	m.current = v
	m.hasValue = true
	m.mu.Unlock()
	return v, nil
}

// MarkRefreshed сдвигает expirationDate после успешного сохранения в хранилище.
func (m *Material[V]) MarkRefreshed(until time.Time) {
	m.mu.Lock()
	m.expirationDate = until
	m.mu.Unlock()
}

// Current возвращает последнее локально посчитанное значение.
func (m *Material[V]) Current() (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.hasValue
}

// ExpirationDate возвращает момент, после которого локальная копия устаревает.
func (m *Material[V]) ExpirationDate() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expirationDate
}

// IsNoValue сообщает, что v — «нет значения»: nil-интерфейс, указатель, map, slice, chan или func.
func IsNoValue[V any](v V) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
