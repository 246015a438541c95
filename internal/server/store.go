package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/leads-api/internal/storage"
	"github.com/hongminglow/leads-api/internal/storage/postgres"
	"github.com/hongminglow/leads-api/internal/storage/sqlite"
)

// OpenAccountStore picks the backend from the DATABASE_URL scheme:
// postgres:// or postgresql:// for Postgres, sqlite://<path> or a file: DSN for SQLite.
// The returned func releases the store.
func OpenAccountStore(ctx context.Context, databaseURL string) (storage.AccountStore, func(), error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		store, err := postgres.NewAccountStore(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case strings.HasPrefix(databaseURL, "sqlite://"), strings.HasPrefix(databaseURL, "file:"):
		dsn := databaseURL
		if path, ok := strings.CutPrefix(databaseURL, "sqlite://"); ok {
			if path == "" {
				return nil, nil, errors.New("sqlite database path is empty")
			}
			dsn = sqlite.DSN(path)
		}
		store, err := sqlite.NewAccountStore(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported DATABASE_URL scheme in %q", redact(databaseURL))
	}
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(databaseURL string) string {
	if scheme, _, ok := strings.Cut(databaseURL, "://"); ok {
		return scheme + "://..."
	}
	return "..."
}
