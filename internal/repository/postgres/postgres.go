package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paypulse/backend/internal/domain"
)

// PostgresRepository implements domain.PulseRepository against the
// pre-populated pulse tables. Every method is read-only; query errors
// propagate to the caller unretried.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// queryNames runs a single-column name query, shared by the dropdown and
// state-list operations.
func (r *PostgresRepository) queryNames(ctx context.Context, query, what string, args pgx.NamedArgs) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query %s: %w", what, err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan %s row: %w", what, err)
		}
		results = append(results, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read %s rows: %w", what, err)
	}
	return results, nil
}

// queryMetricRows runs a (state, value) query feeding the choropleth maps.
func (r *PostgresRepository) queryMetricRows(ctx context.Context, query, what string, args pgx.NamedArgs) ([]domain.MetricRow, error) {
	rows, err := r.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query %s: %w", what, err)
	}
	defer rows.Close()

	var results []domain.MetricRow
	for rows.Next() {
		var m domain.MetricRow
		if err := rows.Scan(&m.State, &m.Value); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan %s row: %w", what, err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read %s rows: %w", what, err)
	}
	return results, nil
}
