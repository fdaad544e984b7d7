package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements AccountRepository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new AccountRepository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) AccountRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new account record. Returns ErrEmailTaken when the email
// is already registered.
func (r *PostgresRepository) Create(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO accounts (email, password_hash, metadata)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		a.Email,
		a.PasswordHash,
		a.Metadata,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("inserting account: %w", err)
	}

	return nil
}

// GetByID retrieves a single account by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	query := `
		SELECT id, email, password_hash, metadata, created_at
		FROM accounts
		WHERE id = $1`

	var a Account
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Metadata, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("querying account: %w", err)
	}

	return &a, nil
}

// GetByEmail retrieves a single account by its email address.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, email, password_hash, metadata, created_at
		FROM accounts
		WHERE email = $1`

	var a Account
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Metadata, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("querying account by email: %w", err)
	}

	return &a, nil
}
