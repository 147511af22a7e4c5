package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config — настройки подключения к MongoDB. Переменные: MATERIALGIRL_MONGO_*.
type Config struct {
	URI            string `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database       string `envconfig:"DATABASE" default:"materialgirl"`
	Collection     string `envconfig:"COLLECTION" default:"materials"`
	LockCollection string `envconfig:"LOCK_COLLECTION" default:"material_locks"`
}

// Client — обёртка над mongo.Client.
type Client struct {
	*mongo.Client
	cfg Config
}

// New подключается к MongoDB по конфигу.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Client{Client: client, cfg: *cfg}, nil
}

// DB возвращает базу по конфигу.
func (c *Client) DB() *mongo.Database {
	return c.Database(c.cfg.Database)
}

// Coll возвращает коллекцию материалов.
func (c *Client) Coll() *mongo.Collection {
	return c.DB().Collection(c.cfg.Collection)
}

// Locks возвращает коллекцию блокировок.
func (c *Client) Locks() *mongo.Collection {
	return c.DB().Collection(c.cfg.LockCollection)
}

// EnsureIndexes создаёт TTL-индексы: документы удаляются сервером после retain_until и expires_at.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	ttl := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		}
	}
	if _, err := c.Coll().Indexes().CreateOne(ctx, ttl("retain_until")); err != nil {
		return fmt.Errorf("mongo materials index: %w", err)
	}
	if _, err := c.Locks().Indexes().CreateOne(ctx, ttl("expires_at")); err != nil {
		return fmt.Errorf("mongo locks index: %w", err)
	}
	return nil
}

// Close отключается от сервера.
func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
