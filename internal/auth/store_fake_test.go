package auth

import (
	"context"
	"sync"

	"github.com/hongminglow/leads-api/internal/models"
	"github.com/hongminglow/leads-api/internal/storage"
)

// memStore is an in-memory storage.AccountStore with injectable failures.
type memStore struct {
	mu        sync.Mutex
	byEmail   map[string]models.Account
	findErr   error
	createErr error
	creates   int
}

func newMemStore() *memStore {
	return &memStore{byEmail: map[string]models.Account{}}
}

func (m *memStore) CreateAccount(_ context.Context, a models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return models.Account{}, m.createErr
	}
	if _, ok := m.byEmail[a.Email]; ok {
		return models.Account{}, storage.ErrAlreadyExists
	}
	m.byEmail[a.Email] = a
	return a, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return models.Account{}, m.findErr
	}
	a, ok := m.byEmail[email]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return a, nil
}
