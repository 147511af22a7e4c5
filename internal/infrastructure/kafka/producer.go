package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/holmes-app/materialgirl/internal/domain"
)

// Producer — обёртка над kafka.Writer для отправки команд в топик.
type Producer struct {
	w *kafka.Writer
}

// NewProducer создаёт продюсера по конфигу. После использования вызови Close().
func NewProducer(cfg *Config) *Producer {
	return New(cfg).Producer()
}

// Send отправляет одно сообщение (key и value — произвольные байты).
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

// SendCommand кодирует команду в JSON и отправляет с ключом материала: команды одного ключа идут в одну партицию.
func (p *Producer) SendCommand(ctx context.Context, cmd domain.Command) error {
	value, err := encodeCommand(cmd)
	if err != nil {
		return err
	}
	if err := p.Send(ctx, []byte(cmd.Key), value); err != nil {
		return fmt.Errorf("kafka send %s %q: %w", cmd.Action, cmd.Key, err)
	}
	return nil
}

// encodeCommand проверяет и кодирует команду.
func encodeCommand(cmd domain.Command) ([]byte, error) {
	switch cmd.Action {
	case domain.CommandExpire:
		if cmd.Key == "" {
			return nil, fmt.Errorf("kafka command %s: empty key", cmd.Action)
		}
	case domain.CommandSweep:
	default:
		return nil, fmt.Errorf("kafka command: unknown action %q", cmd.Action)
	}
	return json.Marshal(cmd)
}

// Close закрывает продюсера.
func (p *Producer) Close() error {
	return p.w.Close()
}
