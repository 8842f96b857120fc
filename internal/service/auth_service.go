package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"webpersonal/api/internal/ids"
	"webpersonal/api/internal/models"
	"webpersonal/api/internal/repository"
	"webpersonal/api/internal/security"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrTokenRequired      = errors.New("token is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is not authorized")
)

// UserStore is the persistence surface the services run against.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context, active *bool) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id string) error
}

type AuthService struct {
	users  UserStore
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewAuthService(users UserStore, tokens *security.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

type RegisterInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	if strings.TrimSpace(input.Email) == "" {
		return models.User{}, ErrEmailRequired
	}
	if input.Password == "" {
		return models.User{}, ErrPasswordRequired
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Email:        normalizeEmail(input.Email),
		PasswordHash: passwordHash,
		Role:         models.UserRoleUser,
		Active:       false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return user, nil
}

type TokenPair struct {
	Access  string
	Refresh string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	if strings.TrimSpace(email) == "" {
		return TokenPair{}, ErrEmailRequired
	}
	if password == "" {
		return TokenPair{}, ErrPasswordRequired
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return TokenPair{}, err
	}
	if !ok {
		return TokenPair{}, ErrInvalidCredentials
	}

	// Activation gates login entirely, even with correct credentials.
	if !user.Active {
		return TokenPair{}, ErrUserInactive
	}

	access, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token.
// The refresh token itself is not reissued.
func (s *AuthService) RefreshAccessToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenRequired
	}

	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return "", err
	}
	if claims.TokenType != security.TokenTypeRefresh {
		return "", security.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}

	return s.tokens.IssueAccessToken(user.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
