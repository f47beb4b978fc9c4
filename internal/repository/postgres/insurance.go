package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paypulse/backend/internal/domain"
)

// StateInsuranceTotals sums premium amount per state for a period.
func (r *PostgresRepository) StateInsuranceTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	query := `
		SELECT state, COALESCE(SUM(insurance_amount), 0)::float8 AS value
		FROM aggregated_insurance
		WHERE year = @year AND quarter = @quarter
		GROUP BY state
	`
	return r.queryMetricRows(ctx, query, "state insurance totals",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// InsuranceTypeShare splits nationwide premium by product type.
func (r *PostgresRepository) InsuranceTypeShare(ctx context.Context, year, quarter int) ([]domain.InsuranceTypeValue, error) {
	query := `
		SELECT insurance_type, COALESCE(SUM(insurance_amount), 0)::float8 AS amount
		FROM aggregated_insurance
		WHERE year = @year AND quarter = @quarter
		GROUP BY insurance_type
		ORDER BY amount DESC NULLS LAST, insurance_type
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query insurance type share: %w", err)
	}
	defer rows.Close()

	var results []domain.InsuranceTypeValue
	for rows.Next() {
		var v domain.InsuranceTypeValue
		if err := rows.Scan(&v.Type, &v.Amount); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan insurance type row: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read insurance type rows: %w", err)
	}
	return results, nil
}

// InsuranceStates lists states with insurance rows in a period, ascending.
func (r *PostgresRepository) InsuranceStates(ctx context.Context, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT state
		FROM map_insurance
		WHERE year = @year AND quarter = @quarter
		ORDER BY state
	`
	return r.queryNames(ctx, query, "insurance states",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// TopDistrictsByInsurance ranks one state's districts by premium amount.
func (r *PostgresRepository) TopDistrictsByInsurance(ctx context.Context, state string, year, quarter, limit int) ([]domain.DistrictInsuranceRow, error) {
	query := `
		SELECT name AS district,
		       COALESCE(SUM(insurance_amount), 0)::float8 AS amount,
		       COALESCE(SUM(insurance_count), 0)::bigint  AS count
		FROM map_insurance
		WHERE state = @state AND year = @year AND quarter = @quarter
		GROUP BY name
		ORDER BY amount DESC NULLS LAST, district
		LIMIT @limit
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{
		"state": state, "year": year, "quarter": quarter, "limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top districts by insurance: %w", err)
	}
	defer rows.Close()

	var results []domain.DistrictInsuranceRow
	for rows.Next() {
		var d domain.DistrictInsuranceRow
		if err := rows.Scan(&d.District, &d.Amount, &d.Count); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan top insurance district row: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read top insurance district rows: %w", err)
	}
	return results, nil
}

// InsuranceYoY compares state premiums against the same quarter one year
// earlier.
func (r *PostgresRepository) InsuranceYoY(ctx context.Context, year, quarter int) ([]domain.GrowthRow, error) {
	query := `
		WITH cur AS (
		  SELECT state, SUM(insurance_amount) AS amt
		  FROM aggregated_insurance
		  WHERE year = @year AND quarter = @quarter
		  GROUP BY state
		),
		prev AS (
		  SELECT state, SUM(insurance_amount) AS amt
		  FROM aggregated_insurance
		  WHERE year = @year - 1 AND quarter = @quarter
		  GROUP BY state
		)
		SELECT c.state,
		       COALESCE(c.amt, 0)::float8 AS cur_amount,
		       p.amt::float8              AS prev_amount,
		       ROUND((100 * (c.amt - p.amt) / NULLIF(p.amt, 0))::numeric, 2)::float8 AS yoy_pct
		FROM cur c LEFT JOIN prev p USING (state)
		ORDER BY yoy_pct DESC NULLS LAST, c.state
	`
	return r.queryGrowthRows(ctx, query, "insurance yoy",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// InsuranceVsTransactions relates state premiums to payment volume. The full
// join keeps states present on either side.
func (r *PostgresRepository) InsuranceVsTransactions(ctx context.Context, year, quarter int) ([]domain.InsuranceRatioRow, error) {
	query := `
		WITH ins AS (
		  SELECT state, SUM(insurance_amount) AS ins_amt
		  FROM aggregated_insurance
		  WHERE year = @year AND quarter = @quarter
		  GROUP BY state
		),
		txn AS (
		  SELECT state, SUM(transaction_amount) AS txn_amt
		  FROM aggregated_transaction
		  WHERE year = @year AND quarter = @quarter
		  GROUP BY state
		)
		SELECT COALESCE(t.state, i.state) AS state,
		       i.ins_amt::float8 AS insurance_amount,
		       t.txn_amt::float8 AS transaction_amount,
		       ROUND((100 * i.ins_amt / NULLIF(t.txn_amt, 0))::numeric, 2)::float8 AS ins_vs_txn_pct
		FROM txn t FULL JOIN ins i ON i.state = t.state
		ORDER BY ins_vs_txn_pct DESC NULLS LAST, state
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query insurance vs transactions: %w", err)
	}
	defer rows.Close()

	var results []domain.InsuranceRatioRow
	for rows.Next() {
		var v domain.InsuranceRatioRow
		if err := rows.Scan(&v.State, &v.InsuranceAmount, &v.TransactionAmount, &v.InsVsTxnPct); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan insurance ratio row: %w", err)
		}
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read insurance ratio rows: %w", err)
	}
	return results, nil
}
