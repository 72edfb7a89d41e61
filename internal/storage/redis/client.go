package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"photofolio/internal/config"
)

type Client struct {
	*redis.Client
}

func NewClient(addr, password string, db int) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Connect создает клиента по конфигурации и проверяет соединение
func Connect(ctx context.Context, cfg config.RedisConf) (*Client, error) {
	const op = "storage.redis.Connect"

	c := NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := c.HealthCheck(ctx); err != nil {
		_ = c.Client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
