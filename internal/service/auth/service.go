package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
)

// Claims полезная нагрузка токена доступа
type Claims struct {
	IsAdmin bool `json:"adm"`
	jwt.RegisteredClaims
}

// Token выпущенный токен доступа
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Service выпуск и проверка JWT (HS256)
type Service struct {
	userRepo UserRepository
	secret   []byte
	issuer   string
	ttl      time.Duration
	now      func() time.Time
	logger   Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, secret, issuer string, ttl time.Duration, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// IssueToken проверяет пароль и выпускает токен
func (s *Service) IssueToken(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("IssueToken: unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("IssueToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: IssueToken - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("IssueToken: wrong password for user=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: IssueToken - sign: %v", ErrInternal, err)
	}

	s.logger.Info("IssueToken: issued token for user=%d, admin=%t", user.ID, user.IsAdmin)
	return &Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// ParseToken проверяет подпись, издателя и срок действия
func (s *Service) ParseToken(raw string) (domain.Actor, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	return domain.Actor{UserID: userID, IsAdmin: claims.IsAdmin}, nil
}

// HashPassword bcrypt хеш пароля для заведения учетных записей
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
