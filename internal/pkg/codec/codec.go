// Package codec — сериализация значений материалов на границе хранилища.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec кодирует значения в байты для сетевых хранилищ.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Msgpack — кодек по умолчанию.
type Msgpack struct{}

func (Msgpack) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

func (Msgpack) Name() string { return "msgpack" }

// JSON — кодек для хранилищ, которые читают люди или сторонние сервисы.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Name() string { return "json" }

// ByName возвращает кодек по имени из конфига.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "msgpack":
		return Msgpack{}, nil
	case "json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
