package handlers

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"webpersonal/api/internal/config"
	"webpersonal/api/internal/models"
	"webpersonal/api/internal/repository"
	"webpersonal/api/internal/security"
	"webpersonal/api/internal/service"
)

type memoryStore struct {
	users   map[string]models.User
	findErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]models.User)}
}

func (m *memoryStore) Create(_ context.Context, user models.User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrEmailTaken
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	if m.findErr != nil {
		return models.User{}, m.findErr
	}
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memoryStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memoryStore) List(_ context.Context, active *bool) ([]models.User, error) {
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		if active == nil || user.Active == *active {
			users = append(users, user)
		}
	}
	return users, nil
}

func (m *memoryStore) Update(_ context.Context, user models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type memoryAvatars struct {
	objects map[string][]byte
}

func newMemoryAvatars() *memoryAvatars {
	return &memoryAvatars{objects: make(map[string][]byte)}
}

func (m *memoryAvatars) PutAvatar(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryAvatars) RemoveAvatar(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

type testEnv struct {
	router *gin.Engine
	store  *memoryStore
	tokens *security.TokenService
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	store := newMemoryStore()
	tokens := security.NewTokenService("test-secret", 3*time.Hour, 1)
	logger := zerolog.Nop()

	h := HandlerSet{
		log:         logger,
		cfg:         &config.AppConfig{Environment: "test"},
		tokens:      tokens,
		authService: service.NewAuthService(store, tokens, logger),
		userService: service.NewUserService(store, newMemoryAvatars(), nil, logger),
	}

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))

	return &testEnv{router: router, store: store, tokens: tokens}
}

func (e *testEnv) activate(id string) {
	user := e.store.users[id]
	user.Active = true
	e.store.users[id] = user
}
