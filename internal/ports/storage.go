package ports

//go:generate mockgen -source=storage.go -destination=../mocks/storage_mock.go -package=mocks

import (
	"context"
	"time"
)

// ILock — непрозрачный токен рекомендательной блокировки. Кто получил, тот один раз и освобождает.
type ILock interface {
	Key() string
}

// IStorage — контракт хранилища материалов. Реализация может быть общей для нескольких процессов.
type IStorage[V any] interface {
	// Store сохраняет значение так, чтобы оно читалось не меньше max(expiration, gracePeriod).
	// «Нет значения» (см. domain.IsNoValue) ничего не меняет. Снимает пометку устаревания.
	Store(ctx context.Context, key string, value V, expiration, gracePeriod time.Duration) error
	// Retrieve возвращает значение из живого или устаревшего-но-сохранённого состояния. found == false, если нет нигде.
	Retrieve(ctx context.Context, key string) (value V, found bool, err error)
	// AcquireLock не блокируется бесконечно. nil без ошибки — блокировка занята другим.
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (ILock, error)
	// ReleaseLock освобождает блокировку. Устаревший токен — не ошибка.
	ReleaseLock(ctx context.Context, lock ILock) error
	// IsExpired — есть пометка устаревания, ключа нет или (expiration > 0) с последнего сохранения прошло не меньше expiration.
	IsExpired(ctx context.Context, key string, expiration time.Duration) (bool, error)
	// Expire идемпотентно переводит живой ключ в состояние «устарел, но хранится».
	Expire(ctx context.Context, key string) error
}

// IPinger — проверка доступности хранилища (readiness).
type IPinger interface {
	Ping(ctx context.Context) error
}

// IPurger — хранилище, которому нужна явная очистка записей с истёкшим сроком хранения.
type IPurger interface {
	Purge(ctx context.Context) (int64, error)
}
