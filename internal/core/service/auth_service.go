package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/e-garderoba/backend/internal/core/domain"
	"github.com/e-garderoba/backend/internal/core/ports"
)

// AuthService implements credential verification and token issuance.
type AuthService struct {
	repo        ports.UserRepository
	tokenSecret string
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokenSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, tokenSecret: tokenSecret, tokenTTL: tokenTTL, logger: logger}
}

// Login verifies the email/password pair and returns a signed token plus
// the account projection. Unknown email and wrong password produce the
// same error so the response does not reveal which one was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *ports.UserView, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Debug().Str("email", email).Msg("password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Int64("id", user.ID).Msg("login succeeded")
	return token, projectUser(user), nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.tokenSecret))
}
