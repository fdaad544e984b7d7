package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new profile Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new profile row. Returns ErrProfileExists on a primary key
// conflict; the uniqueness constraint is the correctness backstop for
// concurrent provisioning.
func (r *PostgresRepository) Create(ctx context.Context, p *UserProfile) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, department, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID,
		p.FirstName,
		p.LastName,
		p.Email,
		p.Department,
		p.Position,
	).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrProfileExists
		}
		return fmt.Errorf("inserting profile: %w", err)
	}

	return nil
}

// GetByID retrieves a single profile by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*UserProfile, error) {
	query := `
		SELECT id, first_name, last_name, email, department, position, created_at
		FROM users
		WHERE id = $1`

	var p UserProfile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Department, &p.Position, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	return &p, nil
}

// CountAll returns the total number of user profiles.
func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting profiles: %w", err)
	}
	return count, nil
}
