// env печатает конфиг, который получит сервис: .env (godotenv) + окружение (envconfig) с префиксом MATERIALGIRL.
//
// godotenv — загружает переменные из файла .env в os.Environ (локальная разработка).
// envconfig — заполняет структуру из переменных окружения по тегам envconfig.
// Пароли не печатаются.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/holmes-app/materialgirl/internal/app"
	"github.com/holmes-app/materialgirl/internal/domain"
)

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		log.Fatalf("ошибка конфига: %v", err)
	}

	fmt.Printf("Конфиг из env (префикс %s):\n", app.AppName)
	fmt.Printf("  LogLevel:       %s (file %q)\n", cfg.LogLevel, cfg.LogFile)
	fmt.Printf("  Server:         %s, CORS %v\n", cfg.Server.Addr(), cfg.Server.CORSOrigins)
	fmt.Printf("  Storage:        %s, codec %s, compute on miss %t\n", cfg.StorageDriver, cfg.Codec, cfg.ComputeOnMiss)
	fmt.Printf("  Sweep:          every %s, purge every %s\n", cfg.Sweep.Interval, cfg.Sweep.PurgeInterval)
	fmt.Printf("  Upstream:       timeout %s, max body %d bytes\n", cfg.Upstream.Timeout, cfg.Upstream.MaxBodyBytes)

	switch cfg.StorageDriver {
	case app.DriverRedis:
		fmt.Printf("  Redis:          %s db=%d expired prefix %q lock suffix %q\n",
			cfg.Redis.Addr(), cfg.Redis.DB, cfg.Redis.ExpiredPrefix, cfg.Redis.LockSuffix)
	case app.DriverPostgres:
		fmt.Printf("  DB:             host=%s port=%s user=%s dbname=%s sslmode=%s\n",
			cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.DBName, cfg.DB.SSLMode)
	case app.DriverMongo:
		fmt.Printf("  Mongo:          %s db=%s collections=%s,%s\n",
			cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, cfg.Mongo.LockCollection)
	}
	if cfg.KafkaEnabled {
		fmt.Printf("  Kafka:          brokers=%s topic=%s group=%s\n", cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	}
	if cfg.ClickHouseEnabled {
		fmt.Printf("  ClickHouse:     %s db=%s user=%s\n", cfg.ClickHouse.Addr(), cfg.ClickHouse.Database, cfg.ClickHouse.Username)
	}

	sources, err := app.LoadMaterials(cfg.MaterialsFile)
	if err != nil {
		fmt.Printf("  Materials:      %s: %v\n", cfg.MaterialsFile, err)
		os.Exit(1)
	}
	fmt.Printf("  Materials:      %s (%d)\n", cfg.MaterialsFile, len(sources))
	for _, src := range sources {
		fmt.Printf("    %-14s %s expiration=%s grace=%s lock=%s\n",
			src.Key, src.URL, orDefault(src.Expiration, domain.DefaultExpiration), src.GracePeriod, src.LockTimeout)
	}
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
