package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hongminglow/leads-api/internal/models"
	"github.com/hongminglow/leads-api/internal/storage"
	"github.com/hongminglow/leads-api/internal/storage/migrations"
)

// Ensure Store satisfies the storage.AccountStore interface at compile time.
var _ storage.AccountStore = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for accounts.
type Store struct {
	pool *pgxpool.Pool
}

// NewAccountStore connects to databaseURL and runs migrations.
func NewAccountStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()
	return migrations.Up(ctx, goose.DialectPostgres, db)
}

// CreateAccount inserts a new account row. A duplicate email yields storage.ErrAlreadyExists.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	const query = `
		INSERT INTO accounts (id, name, email, password_hash)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id::text, name, email, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, account.ID, account.Name, account.Email, account.PasswordHash)
	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return created, nil
}

// FindByEmail fetches an account by its exact email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	const query = `
		SELECT id::text, name, email, password_hash, created_at
		FROM accounts
		WHERE email = $1;
	`
	account, err := scanAccount(s.pool.QueryRow(ctx, query, email))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Account{}, fmt.Errorf("find account by email: %w", err)
	}
	return account, err
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var account models.Account
	if err := row.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, err
	}
	return account, nil
}
