package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type stubUsers map[string]*domain.User

func (s stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := s[email]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	users := stubUsers{
		"admin@example.com": {ID: 1, Email: "admin@example.com", PasswordHash: string(hash), IsAdmin: true},
		"user@example.com":  {ID: 5, Email: "user@example.com", PasswordHash: string(hash)},
	}
	return NewService(users, "test-secret", "carwash-service", time.Hour, logger.Nop())
}

func TestIssueAndParse(t *testing.T) {
	s := newTestService(t)

	token, err := s.IssueToken(context.Background(), "admin@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)

	actor, err := s.ParseToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{UserID: 1, IsAdmin: true}, actor)
}

func TestIssueToken_InvalidCredentials(t *testing.T) {
	s := newTestService(t)

	_, err := s.IssueToken(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.IssueToken(context.Background(), "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_Expired(t *testing.T) {
	s := newTestService(t)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := s.IssueToken(context.Background(), "user@example.com", "secret-password")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ParseToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	s := newTestService(t)
	other := NewService(stubUsers{}, "other-secret", "carwash-service", time.Hour, logger.Nop())

	token, err := s.IssueToken(context.Background(), "user@example.com", "secret-password")
	require.NoError(t, err)

	_, err = other.ParseToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	s := newTestService(t)

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    "carwash-service",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.ParseToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("p@ss")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("p@ss")))
}
