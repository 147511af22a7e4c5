package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import "context"

// IMaterialControl — управление материалами без чтения значений (планировщик, консьюмер команд).
type IMaterialControl interface {
	Run(ctx context.Context) error
	Expire(ctx context.Context, key string) error
	IsExpired(ctx context.Context, key string) (bool, error)
	Keys() []string
}

// IMaterializer — полный контракт оркестратора: управление и чтение значений.
type IMaterializer[V any] interface {
	IMaterialControl
	Get(ctx context.Context, key string) (value V, found bool, err error)
}
