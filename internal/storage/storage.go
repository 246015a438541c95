package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/leads-api/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// AccountStore captures persistence operations needed by the auth flows.
// Implementations must enforce email uniqueness and report a violation as ErrAlreadyExists.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
}
