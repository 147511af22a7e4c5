package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/ports"
)

// Consumer — обёртка над kafka.Reader, декодирует сообщения в domain.Command и применяет их к материалам.
type Consumer struct {
	r   *kafka.Reader
	uc  ports.IMaterialControl
	log *slog.Logger
}

// NewConsumer создаёт консьюмера по конфигу, управлению материалами и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, uc ports.IMaterialControl, log *slog.Logger) *Consumer {
	c := New(cfg).Consumer()
	c.uc = uc
	c.log = log
	return c
}

// Message — сообщение из Kafka (ключ, тело, топик, партиция, offset).
type Message = kafka.Message

// Run в цикле читает сообщения, применяет команду и коммитит, если повторная доставка ничего не изменит.
// Выход по отмене ctx или при ошибке чтения.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := c.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		if !c.handle(ctx, msg) {
			continue
		}

		if err := c.CommitMessage(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// handle применяет одну команду. false — offset не коммитится (повтор после рестарта или ребаланса).
func (c *Consumer) handle(ctx context.Context, msg Message) bool {
	var cmd domain.Command
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return true
	}

	switch cmd.Action {
	case domain.CommandExpire:
		err := c.uc.Expire(ctx, cmd.Key)
		if errors.Is(err, domain.ErrKeyNotFound) {
			c.log.Warn("kafka expire unknown key, skip", "key", cmd.Key, "offset", msg.Offset)
			return true
		}
		if err != nil {
			c.log.Warn("kafka expire error, will redeliver", "key", cmd.Key, "error", err, "offset", msg.Offset)
			return false
		}
		c.log.Info("material expired by command", "key", cmd.Key)
	case domain.CommandSweep:
		// ошибки отдельных ключей уже залогированы проходом, следующий проход по расписанию их повторит
		if err := c.uc.Run(ctx); err != nil {
			c.log.Warn("kafka sweep finished with errors", "error", err, "offset", msg.Offset)
		}
	default:
		c.log.Warn("kafka unknown command, skip", "action", cmd.Action, "offset", msg.Offset)
	}
	return true
}

// FetchMessage блокируется до следующего сообщения или отмены ctx. Сообщение не коммитится до вызова CommitMessage.
func (c *Consumer) FetchMessage(ctx context.Context) (kafka.Message, error) {
	return c.r.FetchMessage(ctx)
}

// CommitMessage помечает сообщение как обработанное (для consumer group).
func (c *Consumer) CommitMessage(ctx context.Context, msg kafka.Message) error {
	return c.r.CommitMessages(ctx, msg)
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
