package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/leads-api/internal/models"
	"github.com/hongminglow/leads-api/internal/storage"
)

// TestStoreIntegration runs against a live Postgres given by DATABASE_URL.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_POSTGRES_INTEGRATION") != "true" {
		t.Skip("set RUN_POSTGRES_INTEGRATION=true to run this integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewAccountStore(ctx, dbURL)
	require.NoError(t, err)
	defer store.Close()

	email := fmt.Sprintf("pgtest_%d@example.com", time.Now().UnixNano())
	account := models.Account{
		ID:           uuid.NewString(),
		Name:         "Integration",
		Email:        email,
		PasswordHash: "$2a$04$placeholder",
	}

	created, err := store.CreateAccount(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, account.ID, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, account.PasswordHash, found.PasswordHash)

	account.ID = uuid.NewString()
	_, err = store.CreateAccount(ctx, account)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = store.FindByEmail(ctx, "missing_"+email)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
