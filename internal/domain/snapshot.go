package domain

import "time"

// Snapshot — значение материала сервиса: тело ответа upstream-источника.
type Snapshot struct {
	Source      string    `msgpack:"source" json:"source"`
	ContentType string    `msgpack:"content_type" json:"content_type"`
	StatusCode  int       `msgpack:"status_code" json:"status_code"`
	Body        []byte    `msgpack:"body" json:"body"`
	FetchedAt   time.Time `msgpack:"fetched_at" json:"fetched_at"`
}

// Source — описание материала из файла материалов.
type Source struct {
	Key         string        `yaml:"key"`
	URL         string        `yaml:"url"`
	Expiration  time.Duration `yaml:"expiration"`
	GracePeriod time.Duration `yaml:"grace_period"`
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

// Options переводит поля источника в опции регистрации. Нулевой Expiration оставляет значение по умолчанию.
func (s Source) Options() []Option {
	opts := make([]Option, 0, 3)
	if s.Expiration > 0 {
		opts = append(opts, WithExpiration(s.Expiration))
	}
	if s.GracePeriod > 0 {
		opts = append(opts, WithGracePeriod(s.GracePeriod))
	}
	if s.LockTimeout > 0 {
		opts = append(opts, WithLockTimeout(s.LockTimeout))
	}
	return opts
}

// Команды, приходящие из брокера.
const (
	CommandExpire = "expire"
	CommandSweep  = "sweep"
)

// Command — управляющее сообщение: пометить ключ устаревшим или запустить проход.
type Command struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

// Outcome — итог обработки одного ключа за проход.
type Outcome string

const (
	OutcomeRefreshed Outcome = "refreshed"
	OutcomeFresh     Outcome = "fresh"
	OutcomeLocked    Outcome = "locked"
	OutcomeFailed    Outcome = "failed"
)

// RefreshEvent — запись журнала обновлений.
type RefreshEvent struct {
	Key      string
	Outcome  Outcome
	Duration time.Duration
	Error    string
	At       time.Time
}
