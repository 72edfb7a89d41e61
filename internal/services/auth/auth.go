package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/sl"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Auth struct {
	log          *slog.Logger
	passwordHash []byte
	tokens       TokenIssuer
}

type TokenIssuer interface {
	GenerateTokens(ctx context.Context, admin models.Admin) (*models.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context) error
}

// New принимает bcrypt-хеш пароля администратора из конфигурации
func New(log *slog.Logger, passwordHash string, tokens TokenIssuer) *Auth {
	return &Auth{
		log:          log,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
	}
}

// Login сверяет пароль с хешем и открывает новую сессию администратора
func (a *Auth) Login(ctx context.Context, password string) (models.Admin, *models.TokenPair, error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	log.Info("attempting to login admin")

	if len(a.passwordHash) == 0 {
		log.Error("admin password hash is not configured")

		return models.Admin{}, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return models.Admin{}, nil, fmt.Errorf("%s: %w: %w", op, models.ErrUnauthorized, ErrInvalidCredentials)
	}

	admin := models.Admin{SessionID: uuid.NewString()}

	tokens, err := a.tokens.GenerateTokens(ctx, admin)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return models.Admin{}, nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in successfully", slog.String("session_id", admin.SessionID))

	return admin, tokens, nil
}

// Logout отзывает refresh-токен, если он передан
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	const op = "auth.Logout"

	if refreshToken == "" {
		return nil
	}

	if err := a.tokens.Revoke(ctx, refreshToken); err != nil {
		a.log.Error("failed to revoke token", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// LogoutAll отзывает refresh-токены всех сессий администратора
func (a *Auth) LogoutAll(ctx context.Context) error {
	const op = "auth.LogoutAll"

	if err := a.tokens.RevokeAll(ctx); err != nil {
		a.log.Error("failed to revoke all tokens", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("all admin refresh tokens revoked", slog.String("op", op))

	return nil
}
