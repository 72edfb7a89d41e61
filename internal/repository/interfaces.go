package repository

import (
	"context"
	"time"
)

// FolderIndexRepository список зарегистрированных папок событий, новые первыми
type FolderIndexRepository interface {
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	All(ctx context.Context) ([]string, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}

// ReleaseFunc снимает ранее взятую блокировку
type ReleaseFunc func(ctx context.Context) error

// Locker сериализует read-modify-write операции над одним ключом
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}
