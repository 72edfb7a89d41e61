package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"photofolio/internal/domain/models"
	"photofolio/internal/lib/logger/handlers/slogdiscard"
)

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateTokens(ctx context.Context, admin models.Admin) (*models.TokenPair, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockTokenIssuer) Revoke(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockTokenIssuer) RevokeAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		tokens := new(MockTokenIssuer)
		pair := &models.TokenPair{AccessToken: "a", RefreshToken: "r"}
		tokens.On("GenerateTokens", ctx, mock.MatchedBy(func(a models.Admin) bool { return a.SessionID != "" })).
			Return(pair, nil)

		a := New(slogdiscard.NewDiscardLogger(), string(hash), tokens)

		admin, got, err := a.Login(ctx, "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, admin.SessionID)
		assert.Equal(t, pair, got)
	})

	t.Run("wrong password", func(t *testing.T) {
		tokens := new(MockTokenIssuer)
		a := New(slogdiscard.NewDiscardLogger(), string(hash), tokens)

		_, _, err := a.Login(ctx, "admin123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
		tokens.AssertNotCalled(t, "GenerateTokens", mock.Anything, mock.Anything)
	})

	t.Run("hash not configured", func(t *testing.T) {
		a := New(slogdiscard.NewDiscardLogger(), "", new(MockTokenIssuer))

		_, _, err := a.Login(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("token error", func(t *testing.T) {
		tokens := new(MockTokenIssuer)
		tokens.On("GenerateTokens", ctx, mock.Anything).Return(nil, errors.New("redis down"))

		a := New(slogdiscard.NewDiscardLogger(), string(hash), tokens)

		_, _, err := a.Login(ctx, "s3cret")
		assert.ErrorContains(t, err, "redis down")
	})
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockTokenIssuer)
	tokens.On("Revoke", ctx, "r").Return(nil)

	a := New(slogdiscard.NewDiscardLogger(), "", tokens)

	assert.NoError(t, a.Logout(ctx, "r"))
	assert.NoError(t, a.Logout(ctx, ""))
	tokens.AssertNumberOfCalls(t, "Revoke", 1)
}

func TestAuth_LogoutAll(t *testing.T) {
	ctx := context.Background()

	tokens := new(MockTokenIssuer)
	tokens.On("RevokeAll", ctx).Return(nil).Once()
	tokens.On("RevokeAll", ctx).Return(errors.New("redis down")).Once()

	a := New(slogdiscard.NewDiscardLogger(), "", tokens)

	assert.NoError(t, a.LogoutAll(ctx))
	assert.Error(t, a.LogoutAll(ctx))
	tokens.AssertExpectations(t)
}
