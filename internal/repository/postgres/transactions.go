package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paypulse/backend/internal/domain"
)

// StateTransactionTotals sums payment amount per state for a period.
func (r *PostgresRepository) StateTransactionTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	query := `
		SELECT state, COALESCE(SUM(transaction_amount), 0)::float8 AS value
		FROM aggregated_transaction
		WHERE year = @year AND quarter = @quarter
		GROUP BY state
	`
	return r.queryMetricRows(ctx, query, "state transaction totals",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// CountryTransactionKPIs totals payment amount and count nationwide. A period
// with no rows yields zero values, not an error.
func (r *PostgresRepository) CountryTransactionKPIs(ctx context.Context, year, quarter int) (domain.TransactionKPIs, error) {
	query := `
		SELECT COALESCE(SUM(transaction_amount), 0)::float8 AS amount,
		       COALESCE(SUM(transaction_count), 0)::bigint  AS count
		FROM aggregated_transaction
		WHERE year = @year AND quarter = @quarter
	`

	var k domain.TransactionKPIs
	err := r.pool.QueryRow(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter}).
		Scan(&k.Amount, &k.Count)
	if err != nil {
		return domain.TransactionKPIs{}, fmt.Errorf("postgres: failed to query country transaction kpis: %w", err)
	}
	return k, nil
}

// StateTransactionKPIs totals payment amount and count for one state.
func (r *PostgresRepository) StateTransactionKPIs(ctx context.Context, state string, year, quarter int) (domain.TransactionKPIs, error) {
	query := `
		SELECT COALESCE(SUM(transaction_amount), 0)::float8 AS amount,
		       COALESCE(SUM(transaction_count), 0)::bigint  AS count
		FROM aggregated_transaction
		WHERE state = @state AND year = @year AND quarter = @quarter
	`

	var k domain.TransactionKPIs
	err := r.pool.QueryRow(ctx, query, pgx.NamedArgs{"state": state, "year": year, "quarter": quarter}).
		Scan(&k.Amount, &k.Count)
	if err != nil {
		return domain.TransactionKPIs{}, fmt.Errorf("postgres: failed to query state transaction kpis: %w", err)
	}
	return k, nil
}

// CategoryBreakdown splits one state's payments by category, largest amount
// first with the category name as tie-break.
func (r *PostgresRepository) CategoryBreakdown(ctx context.Context, state string, year, quarter int) ([]domain.CategoryRow, error) {
	query := `
		SELECT transaction_type,
		       COALESCE(SUM(transaction_amount), 0)::float8 AS amount,
		       COALESCE(SUM(transaction_count), 0)::bigint  AS count
		FROM aggregated_transaction
		WHERE state = @state AND year = @year AND quarter = @quarter
		GROUP BY transaction_type
		ORDER BY amount DESC NULLS LAST, transaction_type
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query category breakdown: %w", err)
	}
	defer rows.Close()

	var results []domain.CategoryRow
	for rows.Next() {
		var c domain.CategoryRow
		if err := rows.Scan(&c.Type, &c.Amount, &c.Count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan category breakdown row: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read category breakdown rows: %w", err)
	}
	return results, nil
}

// CategoryAmountTotals sums nationwide payment amount per category.
func (r *PostgresRepository) CategoryAmountTotals(ctx context.Context, year, quarter int) ([]domain.CategoryValue, error) {
	query := `
		SELECT transaction_type, COALESCE(SUM(transaction_amount), 0)::float8 AS value
		FROM aggregated_transaction
		WHERE year = @year AND quarter = @quarter
		GROUP BY transaction_type
		ORDER BY value DESC NULLS LAST, transaction_type
	`
	return r.queryCategoryValues(ctx, query, "category amount totals",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// CategoryCountTotals sums nationwide payment count per category.
func (r *PostgresRepository) CategoryCountTotals(ctx context.Context, year, quarter int) ([]domain.CategoryValue, error) {
	query := `
		SELECT transaction_type, COALESCE(SUM(transaction_count), 0)::float8 AS value
		FROM aggregated_transaction
		WHERE year = @year AND quarter = @quarter
		GROUP BY transaction_type
		ORDER BY value DESC NULLS LAST, transaction_type
	`
	return r.queryCategoryValues(ctx, query, "category count totals",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// CategoryAmountsForState sums one state's payment amount per category.
func (r *PostgresRepository) CategoryAmountsForState(ctx context.Context, state string, year, quarter int) ([]domain.CategoryValue, error) {
	query := `
		SELECT transaction_type, COALESCE(SUM(transaction_amount), 0)::float8 AS value
		FROM aggregated_transaction
		WHERE state = @state AND year = @year AND quarter = @quarter
		GROUP BY transaction_type
		ORDER BY value DESC NULLS LAST, transaction_type
	`
	return r.queryCategoryValues(ctx, query, "state category amounts",
		pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
}

func (r *PostgresRepository) queryCategoryValues(ctx context.Context, query, what string, args pgx.NamedArgs) ([]domain.CategoryValue, error) {
	rows, err := r.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query %s: %w", what, err)
	}
	defer rows.Close()

	var results []domain.CategoryValue
	for rows.Next() {
		var c domain.CategoryValue
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan %s row: %w", what, err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read %s rows: %w", what, err)
	}
	return results, nil
}

// TopStatesByAmount ranks states by payment amount.
func (r *PostgresRepository) TopStatesByAmount(ctx context.Context, year, quarter, limit int) ([]domain.MetricRow, error) {
	query := `
		SELECT state, COALESCE(SUM(transaction_amount), 0)::float8 AS value
		FROM aggregated_transaction
		WHERE year = @year AND quarter = @quarter
		GROUP BY state
		ORDER BY value DESC NULLS LAST, state
		LIMIT @limit
	`
	return r.queryMetricRows(ctx, query, "top states by amount",
		pgx.NamedArgs{"year": year, "quarter": quarter, "limit": limit})
}

// StateAmountSeries returns one state's payment amount per quarter over all
// years, ascending.
func (r *PostgresRepository) StateAmountSeries(ctx context.Context, state string) ([]domain.SeriesPoint, error) {
	query := `
		SELECT year, quarter, COALESCE(SUM(transaction_amount), 0)::float8 AS value
		FROM aggregated_transaction
		WHERE state = @state
		GROUP BY year, quarter
		ORDER BY year, quarter
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"state": state})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query state amount series: %w", err)
	}
	defer rows.Close()

	var results []domain.SeriesPoint
	for rows.Next() {
		var p domain.SeriesPoint
		if err := rows.Scan(&p.Year, &p.Quarter, &p.Value); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan state amount series row: %w", err)
		}
		p.Period = domain.Period{Year: p.Year, Quarter: p.Quarter}.Label()
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read state amount series rows: %w", err)
	}
	return results, nil
}

// TransactionStates lists states with payment rows in a period, ascending.
func (r *PostgresRepository) TransactionStates(ctx context.Context, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT state
		FROM aggregated_transaction
		WHERE year = @year AND quarter = @quarter
		ORDER BY state
	`
	return r.queryNames(ctx, query, "transaction states",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}
