package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/pkg/codec"
	"github.com/holmes-app/materialgirl/internal/ports"
)

var (
	_ ports.IStorage[any] = (*Storage[any])(nil)
	_ ports.IPinger       = (*Storage[any])(nil)
)

// expireScript переименовывает ключ в устаревший, только если он существует. RENAME сохраняет TTL.
var expireScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	redis.call('RENAME', KEYS[1], KEYS[2])
	return 1
end
return 0
`)

// releaseScript удаляет блокировку, только если она всё ещё наша.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// envelope — то, что лежит под ключом: значение и момент сохранения (unix ms).
type envelope[V any] struct {
	Value    V     `msgpack:"v" json:"v"`
	StoredAt int64 `msgpack:"t" json:"t"`
}

// envelopeHeader читает только момент сохранения, значение пропускается декодером.
type envelopeHeader struct {
	StoredAt int64 `msgpack:"t" json:"t"`
}

// Lock — блокировка на ключе key+LockSuffix со случайным токеном.
type Lock struct {
	key   string
	name  string
	token string
}

// Key возвращает ключ материала.
func (l *Lock) Key() string { return l.key }

// Option настраивает хранилище.
type Option func(*layout)

type layout struct {
	expiredPrefix string
	lockSuffix    string
	now           func() time.Time
}

// WithExpiredPrefix задаёт префикс ключа, под который переименовывается устаревшее значение.
func WithExpiredPrefix(prefix string) Option {
	return func(l *layout) { l.expiredPrefix = prefix }
}

// WithLockSuffix задаёт суффикс ключа блокировки.
func WithLockSuffix(suffix string) Option {
	return func(l *layout) { l.lockSuffix = suffix }
}

// WithClock подменяет источник времени для отметки сохранения.
func WithClock(now func() time.Time) Option {
	return func(l *layout) { l.now = now }
}

// Storage реализует ports.IStorage через Redis: значение под ключом с TTL max(expiration, grace),
// устаревшее — под ExpiredPrefix+key, блокировка — SET NX под key+LockSuffix.
type Storage[V any] struct {
	cli   *Client
	codec codec.Codec
	log   *slog.Logger
	l     layout
}

// NewStorage возвращает хранилище поверх клиента. nil-кодек — msgpack.
func NewStorage[V any](cli *Client, c codec.Codec, log *slog.Logger, opts ...Option) *Storage[V] {
	if c == nil {
		c = codec.Msgpack{}
	}
	l := layout{expiredPrefix: "_expired_", lockSuffix: "_lock", now: time.Now}
	for _, opt := range opts {
		opt(&l)
	}
	return &Storage[V]{cli: cli, codec: c, log: log, l: l}
}

func (s *Storage[V]) expiredKey(key string) string { return s.l.expiredPrefix + key }

func (s *Storage[V]) lockKey(key string) string { return key + s.l.lockSuffix }

// Store записывает значение и удаляет устаревшую копию одной транзакцией.
func (s *Storage[V]) Store(ctx context.Context, key string, value V, expiration, gracePeriod time.Duration) error {
	if domain.IsNoValue(value) {
		return nil
	}
	data, err := s.codec.Marshal(envelope[V]{Value: value, StoredAt: s.l.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("redis encode %q: %w", key, err)
	}
	ttl := max(expiration, gracePeriod)
	_, err = s.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, ttl)
		pipe.Del(ctx, s.expiredKey(key))
		return nil
	})
	if err != nil {
		s.log.Debug("redis store failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Retrieve читает живой ключ, затем устаревшую копию.
func (s *Storage[V]) Retrieve(ctx context.Context, key string) (V, bool, error) {
	var zero V
	data, err := s.cli.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		data, err = s.cli.Get(ctx, s.expiredKey(key)).Bytes()
	}
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		s.log.Debug("redis retrieve failed", "key", key, "error", err)
		return zero, false, err
	}
	var env envelope[V]
	if err := s.codec.Unmarshal(data, &env); err != nil {
		s.log.Debug("redis decode failed", "key", key, "error", err)
		return zero, false, fmt.Errorf("redis decode %q: %w", key, err)
	}
	return env.Value, true, nil
}

// AcquireLock — SET NX без ожидания. timeout > 0 становится TTL блокировки, 0 — без TTL.
func (s *Storage[V]) AcquireLock(ctx context.Context, key string, timeout time.Duration) (ports.ILock, error) {
	l := &Lock{key: key, name: s.lockKey(key), token: uuid.NewString()}
	ok, err := s.cli.SetNX(ctx, l.name, l.token, timeout).Result()
	if err != nil {
		s.log.Debug("redis acquire lock failed", "key", key, "error", err)
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return l, nil
}

// ReleaseLock удаляет блокировку, если токен совпадает.
func (s *Storage[V]) ReleaseLock(ctx context.Context, lock ports.ILock) error {
	l, ok := lock.(*Lock)
	if !ok || l == nil {
		return fmt.Errorf("redis release lock: unexpected lock type %T", lock)
	}
	if err := releaseScript.Run(ctx, s.cli.Client, []string{l.name}, l.token).Err(); err != nil {
		s.log.Debug("redis release lock failed", "key", l.key, "error", err)
		return err
	}
	return nil
}

// IsExpired — есть устаревшая копия, нет живого ключа или с сохранения прошло не меньше expiration.
func (s *Storage[V]) IsExpired(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	n, err := s.cli.Exists(ctx, s.expiredKey(key)).Result()
	if err != nil {
		s.log.Debug("redis exists failed", "key", key, "error", err)
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	data, err := s.cli.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		s.log.Debug("redis get failed", "key", key, "error", err)
		return false, err
	}
	if expiration <= 0 {
		return false, nil
	}
	var h envelopeHeader
	if err := s.codec.Unmarshal(data, &h); err != nil {
		return false, fmt.Errorf("redis decode %q: %w", key, err)
	}
	age := s.l.now().Sub(time.UnixMilli(h.StoredAt))
	return age >= expiration, nil
}

// Expire переименовывает живой ключ в устаревший. Отсутствующий ключ — не ошибка.
func (s *Storage[V]) Expire(ctx context.Context, key string) error {
	if err := expireScript.Run(ctx, s.cli.Client, []string{key, s.expiredKey(key)}).Err(); err != nil {
		s.log.Debug("redis expire failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Ping проверяет соединение.
func (s *Storage[V]) Ping(ctx context.Context) error {
	return s.cli.Ping(ctx)
}
