package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/pkg/codec"
	"github.com/holmes-app/materialgirl/internal/ports"
)

var (
	_ ports.IStorage[any] = (*Storage[any])(nil)
	_ ports.IPinger       = (*Storage[any])(nil)
)

// materialDoc — документ в коллекции materials. Без retain_until — хранится бессрочно.
type materialDoc struct {
	Key         string     `bson:"_id"`
	Value       []byte     `bson:"value"`
	StoredAt    time.Time  `bson:"stored_at"`
	RetainUntil *time.Time `bson:"retain_until,omitempty"`
	Expired     bool       `bson:"expired"`
}

// lockDoc — документ в коллекции material_locks. Без expires_at — до явного освобождения.
type lockDoc struct {
	Key       string     `bson:"_id"`
	Token     string     `bson:"token"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// Lock — документ-аренда со случайным токеном.
type Lock struct {
	key   string
	token string
}

// Key возвращает ключ материала.
func (l *Lock) Key() string { return l.key }

// Option настраивает хранилище.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(o *settings) { o.now = now }
}

// Storage реализует ports.IStorage на коллекциях materials и material_locks.
// TTL-индекс убирает документы с опозданием, поэтому срок хранения проверяется и в фильтрах запросов.
type Storage[V any] struct {
	client *Client
	codec  codec.Codec
	log    *slog.Logger
	now    func() time.Time
}

// NewStorage возвращает хранилище. nil-кодек — msgpack. Индексы создаются через Client.EnsureIndexes.
func NewStorage[V any](client *Client, c codec.Codec, log *slog.Logger, opts ...Option) *Storage[V] {
	if c == nil {
		c = codec.Msgpack{}
	}
	o := settings{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Storage[V]{client: client, codec: c, log: log, now: o.now}
}

// retained — фильтр документов, срок хранения которых ещё не вышел.
func retained(key string, now time.Time) bson.M {
	return bson.M{
		"_id": key,
		"$or": bson.A{
			bson.M{"retain_until": bson.M{"$exists": false}},
			bson.M{"retain_until": bson.M{"$gt": now}},
		},
	}
}

// Store заменяет документ целиком, флаг expired сбрасывается.
func (s *Storage[V]) Store(ctx context.Context, key string, value V, expiration, gracePeriod time.Duration) error {
	if domain.IsNoValue(value) {
		return nil
	}
	data, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("mongo encode %q: %w", key, err)
	}
	now := s.now()
	doc := materialDoc{Key: key, Value: data, StoredAt: now}
	if retention := max(expiration, gracePeriod); retention > 0 {
		until := now.Add(retention)
		doc.RetainUntil = &until
	}
	_, err = s.client.Coll().ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		s.log.Debug("mongo store failed", "key", key, "error", err)
		return err
	}
	return nil
}

// find читает документ с неистёкшим сроком хранения. nil — документа нет.
func (s *Storage[V]) find(ctx context.Context, key string, now time.Time) (*materialDoc, error) {
	var doc materialDoc
	err := s.client.Coll().FindOne(ctx, retained(key, now)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Retrieve возвращает значение живого или устаревшего документа.
func (s *Storage[V]) Retrieve(ctx context.Context, key string) (V, bool, error) {
	var zero V
	doc, err := s.find(ctx, key, s.now())
	if err != nil {
		s.log.Debug("mongo retrieve failed", "key", key, "error", err)
		return zero, false, err
	}
	if doc == nil {
		return zero, false, nil
	}
	var value V
	if err := s.codec.Unmarshal(doc.Value, &value); err != nil {
		s.log.Debug("mongo decode failed", "key", key, "error", err)
		return zero, false, fmt.Errorf("mongo decode %q: %w", key, err)
	}
	return value, true, nil
}

// AcquireLock вставляет документ-аренду; занятый ключ перехватывается, только если его аренда истекла.
func (s *Storage[V]) AcquireLock(ctx context.Context, key string, timeout time.Duration) (ports.ILock, error) {
	now := s.now()
	doc := lockDoc{Key: key, Token: uuid.NewString()}
	if timeout > 0 {
		until := now.Add(timeout)
		doc.ExpiresAt = &until
	}
	_, err := s.client.Locks().InsertOne(ctx, doc)
	if err == nil {
		return &Lock{key: key, token: doc.Token}, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		s.log.Debug("mongo acquire lock failed", "key", key, "error", err)
		return nil, err
	}

	update := bson.M{"$set": bson.M{"token": doc.Token}}
	if doc.ExpiresAt != nil {
		update["$set"] = bson.M{"token": doc.Token, "expires_at": *doc.ExpiresAt}
	} else {
		update["$unset"] = bson.M{"expires_at": ""}
	}
	res, err := s.client.Locks().UpdateOne(ctx,
		bson.M{"_id": key, "expires_at": bson.M{"$lte": now}},
		update)
	if err != nil {
		s.log.Debug("mongo take over lock failed", "key", key, "error", err)
		return nil, err
	}
	if res.ModifiedCount == 0 {
		return nil, nil
	}
	return &Lock{key: key, token: doc.Token}, nil
}

// ReleaseLock удаляет документ-аренду, только если токен совпадает.
func (s *Storage[V]) ReleaseLock(ctx context.Context, lock ports.ILock) error {
	l, ok := lock.(*Lock)
	if !ok || l == nil {
		return fmt.Errorf("mongo release lock: unexpected lock type %T", lock)
	}
	if _, err := s.client.Locks().DeleteOne(ctx, bson.M{"_id": l.key, "token": l.token}); err != nil {
		s.log.Debug("mongo release lock failed", "key", l.key, "error", err)
		return err
	}
	return nil
}

// IsExpired — документа нет, стоит флаг expired или с сохранения прошло не меньше expiration.
func (s *Storage[V]) IsExpired(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	now := s.now()
	doc, err := s.find(ctx, key, now)
	if err != nil {
		s.log.Debug("mongo is expired failed", "key", key, "error", err)
		return false, err
	}
	if doc == nil || doc.Expired {
		return true, nil
	}
	return expiration > 0 && now.Sub(doc.StoredAt) >= expiration, nil
}

// Expire ставит флаг expired живому документу. Отсутствующий ключ — не ошибка.
func (s *Storage[V]) Expire(ctx context.Context, key string) error {
	_, err := s.client.Coll().UpdateOne(ctx, retained(key, s.now()), bson.M{"$set": bson.M{"expired": true}})
	if err != nil {
		s.log.Debug("mongo expire failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Ping проверяет доступность сервера.
func (s *Storage[V]) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
