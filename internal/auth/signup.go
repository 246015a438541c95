package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hongminglow/leads-api/internal/models"
	"github.com/hongminglow/leads-api/internal/storage"
)

// Hasher is the password hashing capability the flows depend on.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// SignUpInput is an already validated registration request.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignUpService registers new accounts.
type SignUpService struct {
	store  storage.AccountStore
	hasher Hasher
	newID  func() string
}

// NewSignUpService wires the registration flow.
func NewSignUpService(store storage.AccountStore, hasher Hasher) *SignUpService {
	return &SignUpService{store: store, hasher: hasher, newID: uuid.NewString}
}

// SignUp creates an account for in. It returns ErrAccountAlreadyExists when the
// email is taken, including when a concurrent sign-up wins the race at the store.
func (s *SignUpService) SignUp(ctx context.Context, in SignUpInput) error {
	_, err := s.store.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return ErrAccountAlreadyExists
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("look up account: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	_, err = s.store.CreateAccount(ctx, models.Account{
		ID:           s.newID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return ErrAccountAlreadyExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}
