package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/leads-api/internal/storage"
)

// Issuer mints access tokens for an account id.
type Issuer interface {
	Issue(accountID string) (string, error)
}

// SignInInput is an already validated sign-in request.
type SignInInput struct {
	Email    string
	Password string
}

// SignInService exchanges credentials for an access token.
type SignInService struct {
	store     storage.AccountStore
	hasher    Hasher
	tokens    Issuer
	dummyHash string
}

// NewSignInService wires the authentication flow. It hashes a throwaway
// password up front so unknown emails cost the same bcrypt work as real ones.
func NewSignInService(store storage.AccountStore, hasher Hasher, tokens Issuer) (*SignInService, error) {
	dummy, err := hasher.Hash("unknown-account-placeholder")
	if err != nil {
		return nil, err
	}
	return &SignInService{store: store, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

// SignIn returns an access token for valid credentials and ErrInvalidCredentials otherwise.
func (s *SignInService) SignIn(ctx context.Context, in SignInInput) (string, error) {
	account, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.hasher.Verify(in.Password, s.dummyHash)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up account: %w", err)
	}

	if !s.hasher.Verify(in.Password, account.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
