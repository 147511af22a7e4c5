package app

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/holmes-app/materialgirl/internal/api/http"
	"github.com/holmes-app/materialgirl/internal/api/schedule"
	"github.com/holmes-app/materialgirl/internal/infrastructure/click"
	"github.com/holmes-app/materialgirl/internal/infrastructure/kafka"
	"github.com/holmes-app/materialgirl/internal/infrastructure/mongo"
	"github.com/holmes-app/materialgirl/internal/infrastructure/pg"
	"github.com/holmes-app/materialgirl/internal/infrastructure/redis"
	"github.com/holmes-app/materialgirl/internal/infrastructure/upstream"
	"github.com/holmes-app/materialgirl/internal/pkg/codec"
)

const AppName = "MATERIALGIRL"

// Хранилища материалов, из которых выбирает STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config — конфиг приложения. Заполняется через envconfig с префиксом MATERIALGIRL.
type Config struct {
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile           string `envconfig:"LOG_FILE" default:"materialgirl.log"`
	StorageDriver     string `envconfig:"STORAGE_DRIVER" default:"memory"`
	Codec             string `envconfig:"CODEC" default:"msgpack"`
	MaterialsFile     string `envconfig:"MATERIALS_FILE" default:"materials.yaml"`
	ComputeOnMiss     bool   `envconfig:"COMPUTE_ON_MISS" default:"true"`
	KafkaEnabled      bool   `envconfig:"KAFKA_ENABLED" default:"false"`
	ClickHouseEnabled bool   `envconfig:"CLICKHOUSE_ENABLED" default:"false"`

	Server     http.ServerConfig `envconfig:"SERVER"`
	Sweep      schedule.Config   `envconfig:"SWEEP"`
	Upstream   upstream.Config   `envconfig:"UPSTREAM"`
	Redis      redis.Config      `envconfig:"REDIS"`
	DB         pg.Config         `envconfig:"DB"`
	Mongo      mongo.Config      `envconfig:"MONGO"`
	Kafka      kafka.Config      `envconfig:"KAFKA"`
	ClickHouse click.Config      `envconfig:"CLICKHOUSE"`
}

// Validate проверяет значения, которые envconfig не может проверить сам.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverRedis, DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.StorageDriver)
	}
	if _, err := codec.ByName(c.Codec); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaterialsFile == "" {
		return fmt.Errorf("config: materials file is not set")
	}
	return nil
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
// Без аргументов читается .env из рабочей директории.
func LoadCfg(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("config: .env не найден, используем окружение: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
