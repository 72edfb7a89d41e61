package repository

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheTokenRepo хранит refresh-токены в памяти процесса, когда redis не настроен
type CacheTokenRepo struct {
	c *cache.Cache
}

func NewCacheTokenRepo(cleanup time.Duration) *CacheTokenRepo {
	return &CacheTokenRepo{c: cache.New(cache.NoExpiration, cleanup)}
}

func (r *CacheTokenRepo) SaveRefreshToken(_ context.Context, userID, token string, exp time.Duration) error {
	r.c.Set(refreshTokenKey(userID, token), struct{}{}, exp)
	return nil
}

func (r *CacheTokenRepo) GetRefreshToken(_ context.Context, userID, token string) (bool, error) {
	_, ok := r.c.Get(refreshTokenKey(userID, token))
	return ok, nil
}

func (r *CacheTokenRepo) DeleteRefreshToken(_ context.Context, userID, token string) error {
	r.c.Delete(refreshTokenKey(userID, token))
	return nil
}

func (r *CacheTokenRepo) DeleteAllUserTokens(_ context.Context, userID string) error {
	prefix := refreshTokenKey(userID, "")
	for key := range r.c.Items() {
		if strings.HasPrefix(key, prefix) {
			r.c.Delete(key)
		}
	}

	return nil
}
