package feedback

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new feedback Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// List retrieves feedback items ordered by creation time descending, each
// joined with the submitter's first name, last name and department.
func (r *PostgresRepository) List(ctx context.Context, filter Filter, limit int) ([]Item, error) {
	query := `
		SELECT f.id, f.title, f.description, f.type, f.priority, f.status,
		       f.user_id, f.created_at,
		       u.first_name, u.last_name, u.department
		FROM feedback f
		LEFT JOIN users u ON f.user_id = u.id`

	args := []any{}
	if filter != FilterAll && filter != "" {
		query += fmt.Sprintf(" WHERE f.status = $%d", len(args)+1)
		args = append(args, string(filter))
	}
	query += " ORDER BY f.created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		err := rows.Scan(
			&it.ID, &it.Title, &it.Description, &it.Type, &it.Priority, &it.Status,
			&it.UserID, &it.CreatedAt,
			&it.AuthorFirstName, &it.AuthorLastName, &it.AuthorDepartment,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning feedback row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback rows: %w", err)
	}

	if items == nil {
		items = []Item{}
	}

	return items, nil
}

// CountByStatus counts feedback rows, optionally restricted to one status.
func (r *PostgresRepository) CountByStatus(ctx context.Context, status *Status) (int, error) {
	query := "SELECT COUNT(*) FROM feedback"
	args := []any{}
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, string(*status))
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting feedback: %w", err)
	}
	return count, nil
}

// Create inserts a new feedback row. Errors are returned unwrapped of any
// classification; the service layer maps Postgres error codes to the
// submission failure taxonomy.
func (r *PostgresRepository) Create(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO feedback (title, description, type, priority, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		item.Title,
		item.Description,
		item.Type,
		item.Priority,
		item.Status,
		item.UserID,
		item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}

	return nil
}
