package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"webpersonal/api/internal/cache"
	"webpersonal/api/internal/ids"
	"webpersonal/api/internal/models"
	"webpersonal/api/internal/security"
)

var ErrUnsupportedAvatar = errors.New("avatar must be an image")

// AvatarStorage is the object-store surface the user service needs.
type AvatarStorage interface {
	PutAvatar(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	RemoveAvatar(ctx context.Context, key string) error
}

type UserService struct {
	users   UserStore
	avatars AvatarStorage
	cache   *cache.UserCache
	log     zerolog.Logger
}

func NewUserService(users UserStore, avatars AvatarStorage, userCache *cache.UserCache, log zerolog.Logger) *UserService {
	return &UserService{
		users:   users,
		avatars: avatars,
		cache:   userCache,
		log:     log,
	}
}

func (s *UserService) GetMe(ctx context.Context, userID string) (models.User, error) {
	if user, ok := s.cache.Get(ctx, userID); ok {
		return user, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	s.cache.Set(ctx, user)
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, active *bool) ([]models.User, error) {
	return s.users.List(ctx, active)
}

// AvatarUpload carries a multipart file still owned by the request.
type AvatarUpload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

type CreateUserInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Role      string
	Avatar    *AvatarUpload
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (models.User, error) {
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

	role := models.UserRole(input.Role)
	if role == "" {
		role = models.UserRoleUser
	}

	user := models.User{
		ID:           ids.New(),
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Email:        normalizeEmail(input.Email),
		PasswordHash: passwordHash,
		Role:         role,
		Active:       false,
	}

	if input.Avatar != nil {
		key, err := s.storeAvatar(ctx, input.Avatar)
		if err != nil {
			return models.User{}, err
		}
		user.Avatar = &key
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user created")
	return user, nil
}

type UpdateUserInput struct {
	Firstname *string
	Lastname  *string
	Email     *string
	Password  *string
	Role      *string
	Active    *bool
	Avatar    *AvatarUpload
}

func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if input.Firstname != nil {
		user.Firstname = *input.Firstname
	}
	if input.Lastname != nil {
		user.Lastname = *input.Lastname
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		user.Role = models.UserRole(*input.Role)
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Avatar != nil {
		key, err := s.storeAvatar(ctx, input.Avatar)
		if err != nil {
			return models.User{}, err
		}
		if user.Avatar != nil {
			s.removeAvatarQuietly(ctx, *user.Avatar)
		}
		user.Avatar = &key
	}

	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}

	s.cache.Invalidate(ctx, id)
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if user.Avatar != nil {
		s.removeAvatarQuietly(ctx, *user.Avatar)
	}

	s.cache.Invalidate(ctx, id)
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) storeAvatar(ctx context.Context, upload *AvatarUpload) (string, error) {
	data, err := io.ReadAll(upload.File)
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if len(data) == 0 {
		return "", ErrUnsupportedAvatar
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrUnsupportedAvatar
	}

	ext := strings.ToLower(path.Ext(upload.Header.Filename))
	if ext == "" {
		ext = "." + strings.TrimPrefix(contentType, "image/")
	}
	key := path.Join("avatar", ids.New()+ext)

	if err := s.avatars.PutAvatar(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *UserService) removeAvatarQuietly(ctx context.Context, key string) {
	if err := s.avatars.RemoveAvatar(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("remove avatar failed")
	}
}
