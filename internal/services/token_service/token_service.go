package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/jwt"
	"photofolio/internal/repository"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenNotInStorage = errors.New("token not found in storage")
)

// AdminSubject субъект всех токенов: у сайта один администратор
const AdminSubject = "admin"

type TokenService struct {
	repo       repository.TokenRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(repo repository.TokenRepository, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		repo:       repo,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) GenerateTokens(ctx context.Context, admin models.Admin) (*models.TokenPair, error) {
	accessToken, _, err := jwt.NewToken(AdminSubject, admin.SessionID, jwt.TypeAccess, s.secret, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshID, err := jwt.NewToken(AdminSubject, admin.SessionID, jwt.TypeRefresh, s.secret, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	err = s.repo.SaveRefreshToken(ctx, AdminSubject, refreshID, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens меняет действующий refresh-токен на новую пару; старый токен отзывается
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := jwt.Parse(refreshToken, jwt.TypeRefresh, s.secret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	exists, err := s.repo.GetRefreshToken(ctx, claims.Subject, claims.ID)
	if err != nil || !exists {
		return nil, ErrInvalidToken
	}

	if err := s.repo.DeleteRefreshToken(ctx, claims.Subject, claims.ID); err != nil {
		return nil, err
	}

	return s.GenerateTokens(ctx, models.Admin{SessionID: claims.SessionID})
}

// ParseAccessToken проверяет access-токен из заголовка Authorization
func (s *TokenService) ParseAccessToken(accessToken string) (models.Admin, error) {
	claims, err := jwt.Parse(accessToken, jwt.TypeAccess, s.secret)
	if err != nil || claims.Subject != AdminSubject {
		return models.Admin{}, fmt.Errorf("%w: %w", models.ErrUnauthorized, ErrInvalidToken)
	}

	return models.Admin{SessionID: claims.SessionID}, nil
}

// Revoke отзывает refresh-токен; невалидный токен игнорируется
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := jwt.Parse(refreshToken, jwt.TypeRefresh, s.secret)
	if err != nil {
		return nil
	}

	return s.repo.DeleteRefreshToken(ctx, claims.Subject, claims.ID)
}

// RevokeAll завершает все сессии администратора
func (s *TokenService) RevokeAll(ctx context.Context) error {
	return s.repo.DeleteAllUserTokens(ctx, AdminSubject)
}
