package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"photofolio/internal/storage"
	redisapp "photofolio/internal/storage/redis"
)

const lockKeyPrefix = "photofolio:lock:"

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

type RedisLocker struct {
	Client   *redisapp.Client
	ttl      time.Duration
	retry    time.Duration
	newToken func() string
}

func NewRedisLocker(client *redisapp.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		Client:   client,
		ttl:      ttl,
		retry:    50 * time.Millisecond,
		newToken: uuid.NewString,
	}
}

// Acquire ждет освобождения ключа до отмены ctx. Блокировка истекает через ttl, если владелец пропал.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	const op = "repository.locker.RedisLocker.Acquire"

	lockKey := lockKeyPrefix + key
	token := l.newToken()

	for {
		ok, err := l.Client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if ok {
			return func(ctx context.Context) error {
				return l.release(ctx, lockKey, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(l.retry):
		}
	}
}

func (l *RedisLocker) release(ctx context.Context, lockKey, token string) error {
	const op = "repository.locker.RedisLocker.release"

	n, err := l.Client.Eval(ctx, releaseScript, []string{lockKey}, token).Int64()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrLockNotHeld)
	}

	return nil
}

// MemoryLocker блокировки по ключу внутри одного процесса
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*keyLock)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, kl)
		return nil, fmt.Errorf("repository.locker.MemoryLocker.Acquire: %w", ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-kl.ch
			l.unref(key, kl)
		})
		return nil
	}, nil
}

func (l *MemoryLocker) unref(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}
