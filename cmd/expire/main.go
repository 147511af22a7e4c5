// expire публикует команды в топик команд материалов.
//
//	expire rates news     — пометить ключи устаревшими
//	expire -sweep         — запустить внеочередной проход
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/holmes-app/materialgirl/internal/app"
	"github.com/holmes-app/materialgirl/internal/domain"
	"github.com/holmes-app/materialgirl/internal/infrastructure/kafka"
	"github.com/holmes-app/materialgirl/internal/pkg/logger"
)

func main() {
	sweep := flag.Bool("sweep", false, "запустить проход вместо пометки ключей")
	timeout := flag.Duration("timeout", 10*time.Second, "таймаут отправки")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-sweep] [key ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logger.NewWithLevel("info", "")
	cmds, err := commands(*sweep, flag.Args())
	if err != nil {
		log.Error("bad arguments", "error", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := app.LoadCfg()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	producer := kafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	for _, cmd := range cmds {
		if err := producer.SendCommand(ctx, cmd); err != nil {
			log.Error("send failed", "action", cmd.Action, "key", cmd.Key, "error", err)
			os.Exit(1)
		}
		log.Info("command sent", "action", cmd.Action, "key", cmd.Key, "topic", cfg.Kafka.Topic)
	}
}

// commands собирает команды из аргументов: -sweep или хотя бы один ключ.
func commands(sweep bool, keys []string) ([]domain.Command, error) {
	if sweep {
		if len(keys) > 0 {
			return nil, fmt.Errorf("-sweep does not take keys")
		}
		return []domain.Command{{Action: domain.CommandSweep}}, nil
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys given")
	}
	cmds := make([]domain.Command, 0, len(keys))
	for _, key := range keys {
		cmds = append(cmds, domain.Command{Key: key, Action: domain.CommandExpire})
	}
	return cmds, nil
}
