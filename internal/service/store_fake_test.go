package service

import (
	"context"
	"strings"

	"webpersonal/api/internal/models"
	"webpersonal/api/internal/repository"
)

// fakeUserStore is an in-memory UserStore with per-method error hooks.
type fakeUserStore struct {
	users map[string]models.User

	createErr error
	findErr   error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	if f.findErr != nil {
		return models.User{}, f.findErr
	}
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	if f.getErr != nil {
		return models.User{}, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) List(_ context.Context, active *bool) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var users []models.User
	for _, user := range f.users {
		if active == nil || user.Active == *active {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserStore) Update(_ context.Context, user models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}
