// Package sqlite is an embedded account store backed by modernc.org/sqlite.
// It serves local runs without a Postgres server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/leads-api/internal/models"
	"github.com/hongminglow/leads-api/internal/storage"
	"github.com/hongminglow/leads-api/internal/storage/migrations"
)

var _ storage.AccountStore = (*Store)(nil)

// Store is the SQLite implementation of storage.AccountStore.
type Store struct {
	db *sql.DB
}

// DSN builds a modernc DSN for a database file with WAL, busy timeout and foreign keys enabled.
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		path,
	)
}

// NewAccountStore opens dsn and applies migrations. Writes are serialized
// through a single connection to avoid "database is locked" errors.
func NewAccountStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrations.Up(ctx, goose.DialectSQLite3, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateAccount inserts account. A duplicate email yields storage.ErrAlreadyExists.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	const query = `INSERT INTO accounts (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	_, err := s.db.ExecContext(ctx, query, account.ID, account.Name, account.Email, account.PasswordHash, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, fmt.Errorf("insert account: %w", err)
	}

	account.CreatedAt = createdAt
	return account, nil
}

// FindByEmail fetches an account by its exact email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM accounts WHERE email = ?`

	var (
		account   models.Account
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, fmt.Errorf("find account by email: %w", err)
	}

	account.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Account{}, fmt.Errorf("parse created_at: %w", err)
	}
	return account, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
