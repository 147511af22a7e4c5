package materializer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/ports"
)

var _ ports.IMaterializer[any] = (*Materializer[any])(nil)

// Option настраивает оркестратор.
type Option func(*options)

type options struct {
	journal       ports.ISweepJournal
	now           func() time.Time
	computeOnMiss bool
}

// WithComputeOnMiss включает или выключает синхронный расчёт в Get при пустом хранилище. По умолчанию включён.
func WithComputeOnMiss(enabled bool) Option {
	return func(o *options) { o.computeOnMiss = enabled }
}

// WithJournal пишет итог обработки каждого ключа за проход в журнал.
func WithJournal(j ports.ISweepJournal) Option {
	return func(o *options) { o.journal = j }
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Materializer — реестр материалов, проход обновления и чтение по запросу.
type Materializer[V any] struct {
	storage       ports.IStorage[V]
	journal       ports.ISweepJournal
	log           *slog.Logger
	now           func() time.Time
	computeOnMiss bool

	mu        sync.RWMutex
	materials map[string]*domain.Material[V]
	order     []string
}

// New создаёт оркестратор поверх хранилища.
func New[V any](storage ports.IStorage[V], log *slog.Logger, opts ...Option) *Materializer[V] {
	o := options{now: time.Now, computeOnMiss: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Materializer[V]{
		storage:       storage,
		journal:       o.journal,
		log:           log,
		now:           o.now,
		computeOnMiss: o.computeOnMiss,
		materials:     make(map[string]*domain.Material[V]),
	}
}

// AddMaterial регистрирует материал или заменяет уже зарегистрированный (место в порядке прохода сохраняется).
func (m *Materializer[V]) AddMaterial(key string, producer domain.Producer[V], opts ...domain.Option) error {
	mat, err := domain.NewMaterial(key, producer, opts...)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.materials[key]; !ok {
		m.order = append(m.order, key)
	}
	m.materials[key] = mat
	m.log.Debug("material added", "key", key, "expiration", mat.Expiration, "grace_period", mat.GracePeriod)
	return nil
}

// Keys возвращает ключи в порядке регистрации.
func (m *Materializer[V]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, len(m.order))
	copy(keys, m.order)
	return keys
}

func (m *Materializer[V]) lookup(key string) (*domain.Material[V], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mat, ok := m.materials[key]
	if !ok {
		return nil, domain.KeyNotFound(key)
	}
	return mat, nil
}

// snapshot — материалы в порядке регистрации на момент вызова.
func (m *Materializer[V]) snapshot() []*domain.Material[V] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*domain.Material[V], 0, len(m.order))
	for _, key := range m.order {
		list = append(list, m.materials[key])
	}
	return list
}
