package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paypulse/backend/internal/domain"
)

// Periods lists every (year, quarter) present in the payment table, ascending.
func (r *PostgresRepository) Periods(ctx context.Context) ([]domain.Period, error) {
	query := `
		SELECT DISTINCT year, quarter
		FROM aggregated_transaction
		ORDER BY year, quarter
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query periods: %w", err)
	}
	defer rows.Close()

	var results []domain.Period
	for rows.Next() {
		var p domain.Period
		if err := rows.Scan(&p.Year, &p.Quarter); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan period row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read period rows: %w", err)
	}
	return results, nil
}

// LatestCommonUserPeriod returns the most recent period present in both user
// tables; ok is false when the tables share no period.
func (r *PostgresRepository) LatestCommonUserPeriod(ctx context.Context) (domain.Period, bool, error) {
	query := `
		WITH a AS (SELECT year, quarter FROM aggregated_user GROUP BY 1, 2),
		     m AS (SELECT year, quarter FROM map_user        GROUP BY 1, 2)
		SELECT year, quarter
		FROM a INNER JOIN m USING (year, quarter)
		ORDER BY year DESC, quarter DESC
		LIMIT 1
	`

	var p domain.Period
	err := r.pool.QueryRow(ctx, query).Scan(&p.Year, &p.Quarter)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Period{}, false, nil
	}
	if err != nil {
		return domain.Period{}, false, fmt.Errorf("postgres: failed to query latest common user period: %w", err)
	}
	return p, true, nil
}
