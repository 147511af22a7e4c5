// Package memory — хранилище материалов в памяти процесса. Блокировки локальные, для одного процесса и тестов.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/ports"
)

var (
	_ ports.IStorage[any] = (*Storage[any])(nil)
	_ ports.IPinger       = (*Storage[any])(nil)
	_ ports.IPurger       = (*Storage[any])(nil)
)

// record — сохранённое значение и его метаданные свежести.
type record[V any] struct {
	value       V
	storedAt    time.Time
	retainUntil time.Time // нулевое — хранить бессрочно
}

func (r record[V]) retained(now time.Time) bool {
	return r.retainUntil.IsZero() || now.Before(r.retainUntil)
}

type lease struct {
	token uint64
	until time.Time // нулевое — до явного освобождения
}

// Lock — токен локальной блокировки.
type Lock struct {
	key   string
	token uint64
}

// Key возвращает ключ материала, за которым закреплена блокировка.
func (l *Lock) Key() string { return l.key }

// Option настраивает хранилище.
type Option func(*config)

type config struct {
	now func() time.Time
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// Storage реализует ports.IStorage в памяти: живые и устаревшие записи в двух map под одним мьютексом.
type Storage[V any] struct {
	mu        sync.Mutex
	live      map[string]record[V]
	expired   map[string]record[V]
	locks     map[string]lease
	nextToken uint64
	now       func() time.Time
}

// New возвращает пустое хранилище.
func New[V any](opts ...Option) *Storage[V] {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Storage[V]{
		live:    make(map[string]record[V]),
		expired: make(map[string]record[V]),
		locks:   make(map[string]lease),
		now:     cfg.now,
	}
}

// Store сохраняет значение и снимает пометку устаревания.
func (s *Storage[V]) Store(ctx context.Context, key string, value V, expiration, gracePeriod time.Duration) error {
	if domain.IsNoValue(value) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := record[V]{value: value, storedAt: now}
	if retention := max(expiration, gracePeriod); retention > 0 {
		rec.retainUntil = now.Add(retention)
	}
	s.live[key] = rec
	delete(s.expired, key)
	return nil
}

// Retrieve возвращает живое значение, иначе устаревшее, если оно ещё хранится.
func (s *Storage[V]) Retrieve(ctx context.Context, key string) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if rec, ok := s.lookup(s.live, key, now); ok {
		return rec.value, true, nil
	}
	if rec, ok := s.lookup(s.expired, key, now); ok {
		return rec.value, true, nil
	}
	var zero V
	return zero, false, nil
}

// AcquireLock берёт блокировку без ожидания. timeout > 0 — срок аренды, после которого блокировку может взять другой.
func (s *Storage[V]) AcquireLock(ctx context.Context, key string, timeout time.Duration) (ports.ILock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if l, ok := s.locks[key]; ok && (l.until.IsZero() || now.Before(l.until)) {
		return nil, nil
	}
	s.nextToken++
	l := lease{token: s.nextToken}
	if timeout > 0 {
		l.until = now.Add(timeout)
	}
	s.locks[key] = l
	return &Lock{key: key, token: l.token}, nil
}

// ReleaseLock освобождает блокировку, если она всё ещё принадлежит токену.
func (s *Storage[V]) ReleaseLock(ctx context.Context, lock ports.ILock) error {
	l, ok := lock.(*Lock)
	if !ok || l == nil {
		return fmt.Errorf("memory release lock: unexpected lock type %T", lock)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.locks[l.key]; ok && cur.token == l.token {
		delete(s.locks, l.key)
	}
	return nil
}

// IsExpired — есть пометка устаревания, ключа нет или с сохранения прошло не меньше expiration.
func (s *Storage[V]) IsExpired(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, ok := s.lookup(s.expired, key, now); ok {
		return true, nil
	}
	rec, ok := s.lookup(s.live, key, now)
	if !ok {
		return true, nil
	}
	return expiration > 0 && now.Sub(rec.storedAt) >= expiration, nil
}

// Expire переносит живую запись в устаревшие, срок хранения сохраняется.
func (s *Storage[V]) Expire(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lookup(s.live, key, s.now())
	if !ok {
		return nil
	}
	s.expired[key] = rec
	delete(s.live, key)
	return nil
}

// Delete убирает ключ из обоих состояний (имитация вытеснения вне системы).
func (s *Storage[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, key)
	delete(s.expired, key)
}

// Len возвращает число ключей, которые сейчас можно прочитать.
func (s *Storage[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for key := range s.live {
		if _, ok := s.lookup(s.live, key, now); ok {
			n++
		}
	}
	for key := range s.expired {
		if _, ok := s.lookup(s.expired, key, now); ok {
			n++
		}
	}
	return n
}

// Purge удаляет записи с истёкшим сроком хранения и просроченные аренды блокировок.
func (s *Storage[V]) Purge(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int64
	for _, m := range []map[string]record[V]{s.live, s.expired} {
		for key, rec := range m {
			if !rec.retained(now) {
				delete(m, key)
				n++
			}
		}
	}
	for key, l := range s.locks {
		if !l.until.IsZero() && !now.Before(l.until) {
			delete(s.locks, key)
		}
	}
	return n, nil
}

// Ping всегда успешен.
func (s *Storage[V]) Ping(ctx context.Context) error {
	return nil
}

// lookup возвращает запись, если срок хранения не вышел; просроченную удаляет. Вызывать под s.mu.
func (s *Storage[V]) lookup(m map[string]record[V], key string, now time.Time) (record[V], bool) {
	rec, ok := m[key]
	if !ok {
		return rec, false
	}
	if !rec.retained(now) {
		delete(m, key)
		return rec, false
	}
	return rec, true
}
