package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	redisapp "photofolio/internal/storage/redis"
)

const eventFoldersKey = "photofolio:event_folders"

type RedisFolderIndex struct {
	Client *redisapp.Client
	now    func() time.Time
}

func NewRedisFolderIndex(client *redisapp.Client) *RedisFolderIndex {
	return &RedisFolderIndex{Client: client, now: time.Now}
}

func (r *RedisFolderIndex) Add(ctx context.Context, name string) error {
	const op = "repository.folder_index_redis.Add"

	err := r.Client.ZAddNX(ctx, eventFoldersKey, redis.Z{
		Score:  float64(r.now().UnixNano()),
		Member: name,
	}).Err()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisFolderIndex) Remove(ctx context.Context, name string) error {
	const op = "repository.folder_index_redis.Remove"

	if err := r.Client.ZRem(ctx, eventFoldersKey, name).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisFolderIndex) All(ctx context.Context) ([]string, error) {
	const op = "repository.folder_index_redis.All"

	names, err := r.Client.ZRevRange(ctx, eventFoldersKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return names, nil
}
