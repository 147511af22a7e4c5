package pg

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/pkg/codec"
	"github.com/holmes-app/materialgirl/internal/ports"
)

var (
	_ ports.IStorage[any] = (*Storage[any])(nil)
	_ ports.IPinger       = (*Storage[any])(nil)
	_ ports.IPurger       = (*Storage[any])(nil)
)

// Lock — advisory-блокировка, держится на выделенном соединении до ReleaseLock.
type Lock struct {
	key string

	mu   sync.Mutex
	conn *sql.Conn
}

// Key возвращает ключ материала.
func (l *Lock) Key() string { return l.key }

// Option настраивает хранилище.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Storage реализует ports.IStorage поверх таблицы materials.
// Строка читается, пока retain_until в будущем (NULL — бессрочно); устаревание — флаг expired.
// Блокировка — pg_try_advisory_lock на сессии: timeout не поддерживается, она живёт до освобождения или разрыва соединения.
type Storage[V any] struct {
	db    *DB
	codec codec.Codec
	log   *slog.Logger
	now   func() time.Time
}

// NewStorage возвращает хранилище. nil-кодек — msgpack. Таблица создаётся через Migrate.
func NewStorage[V any](db *DB, c codec.Codec, log *slog.Logger, opts ...Option) *Storage[V] {
	if c == nil {
		c = codec.Msgpack{}
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Storage[V]{db: db, codec: c, log: log, now: o.now}
}

// Store делает upsert строки и снимает флаг expired.
func (s *Storage[V]) Store(ctx context.Context, key string, value V, expiration, gracePeriod time.Duration) error {
	if domain.IsNoValue(value) {
		return nil
	}
	data, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("pg encode %q: %w", key, err)
	}
	now := s.now()
	var retainUntil sql.NullTime
	if retention := max(expiration, gracePeriod); retention > 0 {
		retainUntil = sql.NullTime{Time: now.Add(retention), Valid: true}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO materials (key, value, stored_at, retain_until, expired)
		 VALUES ($1, $2, $3, $4, FALSE)
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, stored_at = EXCLUDED.stored_at,
		     retain_until = EXCLUDED.retain_until, expired = FALSE`,
		key, data, now, retainUntil)
	if err != nil {
		s.log.Debug("pg store failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Retrieve читает строку, если срок хранения ещё не вышел.
func (s *Storage[V]) Retrieve(ctx context.Context, key string) (V, bool, error) {
	var (
		zero V
		data []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM materials
		 WHERE key = $1 AND (retain_until IS NULL OR retain_until > $2)`,
		key, s.now()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		s.log.Debug("pg retrieve failed", "key", key, "error", err)
		return zero, false, err
	}
	var value V
	if err := s.codec.Unmarshal(data, &value); err != nil {
		s.log.Debug("pg decode failed", "key", key, "error", err)
		return zero, false, fmt.Errorf("pg decode %q: %w", key, err)
	}
	return value, true, nil
}

// AcquireLock берёт advisory-блокировку на отдельном соединении без ожидания.
func (s *Storage[V]) AcquireLock(ctx context.Context, key string, _ time.Duration) (ports.ILock, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.log.Debug("pg conn failed", "key", key, "error", err)
		return nil, err
	}
	var ok bool
	if err := conn.QueryRowContext(ctx, `SELECT pg_try_advisory_lock(hashtext($1))`, key).Scan(&ok); err != nil {
		conn.Close()
		s.log.Debug("pg acquire lock failed", "key", key, "error", err)
		return nil, err
	}
	if !ok {
		conn.Close()
		return nil, nil
	}
	return &Lock{key: key, conn: conn}, nil
}

// ReleaseLock снимает блокировку и возвращает соединение в пул. Повторный вызов ничего не делает.
// Если unlock не прошёл, соединение выбрасывается из пула, и блокировка уходит вместе с сессией.
func (s *Storage[V]) ReleaseLock(ctx context.Context, lock ports.ILock) error {
	l, ok := lock.(*Lock)
	if !ok || l == nil {
		return fmt.Errorf("pg release lock: unexpected lock type %T", lock)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil
	}
	conn := l.conn
	l.conn = nil

	_, err := conn.ExecContext(ctx, `SELECT pg_advisory_unlock(hashtext($1))`, l.key)
	if err != nil {
		s.log.Debug("pg release lock failed", "key", l.key, "error", err)
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	}
	if cerr := conn.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// IsExpired — строки нет, стоит флаг expired или с сохранения прошло не меньше expiration.
func (s *Storage[V]) IsExpired(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	var (
		storedAt time.Time
		expired  bool
	)
	now := s.now()
	err := s.db.QueryRowContext(ctx,
		`SELECT stored_at, expired FROM materials
		 WHERE key = $1 AND (retain_until IS NULL OR retain_until > $2)`,
		key, now).Scan(&storedAt, &expired)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		s.log.Debug("pg is expired failed", "key", key, "error", err)
		return false, err
	}
	if expired {
		return true, nil
	}
	return expiration > 0 && now.Sub(storedAt) >= expiration, nil
}

// Expire ставит флаг expired живой строке. Отсутствующий ключ — не ошибка.
func (s *Storage[V]) Expire(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE materials SET expired = TRUE
		 WHERE key = $1 AND (retain_until IS NULL OR retain_until > $2)`,
		key, s.now())
	if err != nil {
		s.log.Debug("pg expire failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Purge удаляет строки с истёкшим сроком хранения.
func (s *Storage[V]) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM materials WHERE retain_until IS NOT NULL AND retain_until <= $1`, s.now())
	if err != nil {
		s.log.Debug("pg purge failed", "error", err)
		return 0, err
	}
	return res.RowsAffected()
}

// Ping проверяет соединение с БД.
func (s *Storage[V]) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
