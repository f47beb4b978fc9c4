package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paypulse/backend/internal/domain"
)

// TopGeoEntities ranks one state's districts or pincodes by payment amount.
func (r *PostgresRepository) TopGeoEntities(ctx context.Context, state string, year, quarter int, entity domain.EntityType, limit int) ([]domain.GeoEntityRow, error) {
	query := `
		SELECT entity_name AS name,
		       COALESCE(SUM(count), 0)::bigint   AS txns,
		       COALESCE(SUM(amount), 0)::float8  AS amount
		FROM top_map
		WHERE state = @state AND year = @year AND quarter = @quarter AND entity_type = @entity
		GROUP BY entity_name
		ORDER BY amount DESC NULLS LAST, name
		LIMIT @limit
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{
		"state": state, "year": year, "quarter": quarter, "entity": string(entity), "limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top geo entities: %w", err)
	}
	defer rows.Close()

	var results []domain.GeoEntityRow
	for rows.Next() {
		var g domain.GeoEntityRow
		if err := rows.Scan(&g.Name, &g.Transactions, &g.Amount); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan top geo entity row: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read top geo entity rows: %w", err)
	}
	return results, nil
}

// TopGeoEntitiesCountry ranks districts or pincodes nationwide, carrying each
// row's state.
func (r *PostgresRepository) TopGeoEntitiesCountry(ctx context.Context, year, quarter int, entity domain.EntityType, limit int) ([]domain.GeoEntityRow, error) {
	query := `
		SELECT entity_name AS name,
		       state,
		       COALESCE(SUM(count), 0)::bigint   AS txns,
		       COALESCE(SUM(amount), 0)::float8  AS amount
		FROM top_map
		WHERE year = @year AND quarter = @quarter AND entity_type = @entity
		GROUP BY entity_name, state
		ORDER BY amount DESC NULLS LAST, name
		LIMIT @limit
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{
		"year": year, "quarter": quarter, "entity": string(entity), "limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query country geo entities: %w", err)
	}
	defer rows.Close()

	var results []domain.GeoEntityRow
	for rows.Next() {
		var g domain.GeoEntityRow
		if err := rows.Scan(&g.Name, &g.State, &g.Transactions, &g.Amount); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan country geo entity row: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read country geo entity rows: %w", err)
	}
	return results, nil
}

// TopStateEntities ranks states in the ranked-geography table by amount.
func (r *PostgresRepository) TopStateEntities(ctx context.Context, year, quarter int) ([]domain.GeoEntityRow, error) {
	query := `
		SELECT entity_name AS name,
		       COALESCE(SUM(count), 0)::bigint   AS txns,
		       COALESCE(SUM(amount), 0)::float8  AS amount
		FROM top_map
		WHERE year = @year AND quarter = @quarter AND entity_type = 'State'
		GROUP BY entity_name
		ORDER BY amount DESC NULLS LAST, name
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top state entities: %w", err)
	}
	defer rows.Close()

	var results []domain.GeoEntityRow
	for rows.Next() {
		var g domain.GeoEntityRow
		if err := rows.Scan(&g.Name, &g.Transactions, &g.Amount); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan top state entity row: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read top state entity rows: %w", err)
	}
	return results, nil
}

// DistrictShare computes each district's share of its state's payment amount.
// The share is null when the state total is zero.
func (r *PostgresRepository) DistrictShare(ctx context.Context, state string, year, quarter int) ([]domain.ShareRow, error) {
	query := `
		WITH s AS (
		  SELECT entity_name AS district, SUM(amount) AS amt
		  FROM top_map
		  WHERE entity_type = 'District' AND state = @state AND year = @year AND quarter = @quarter
		  GROUP BY entity_name
		),
		tot AS (SELECT SUM(amt) AS total_amt FROM s)
		SELECT district,
		       COALESCE(amt, 0)::float8 AS amount,
		       ROUND((100 * amt / NULLIF(t.total_amt, 0))::numeric, 2)::float8 AS share_pct
		FROM s CROSS JOIN tot t
		ORDER BY amount DESC NULLS LAST, district
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query district share: %w", err)
	}
	defer rows.Close()

	var results []domain.ShareRow
	for rows.Next() {
		var s domain.ShareRow
		if err := rows.Scan(&s.District, &s.Amount, &s.SharePct); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan district share row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read district share rows: %w", err)
	}
	return results, nil
}

// DistrictYoY compares district amounts against the same quarter one year
// earlier. Prior-year figures are null for districts new this year.
func (r *PostgresRepository) DistrictYoY(ctx context.Context, state string, year, quarter int) ([]domain.GrowthRow, error) {
	query := `
		WITH cur AS (
		  SELECT entity_name AS district, SUM(amount) AS amt
		  FROM top_map
		  WHERE entity_type = 'District' AND state = @state
		    AND year = @year AND quarter = @quarter
		  GROUP BY entity_name
		),
		prev AS (
		  SELECT entity_name AS district, SUM(amount) AS amt
		  FROM top_map
		  WHERE entity_type = 'District' AND state = @state
		    AND year = @year - 1 AND quarter = @quarter
		  GROUP BY entity_name
		)
		SELECT c.district,
		       COALESCE(c.amt, 0)::float8 AS cur_amount,
		       p.amt::float8              AS prev_amount,
		       ROUND((100 * (c.amt - p.amt) / NULLIF(p.amt, 0))::numeric, 2)::float8 AS yoy_pct
		FROM cur c LEFT JOIN prev p USING (district)
		ORDER BY yoy_pct DESC NULLS LAST, c.district
	`
	return r.queryGrowthRows(ctx, query, "district yoy",
		pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
}

func (r *PostgresRepository) queryGrowthRows(ctx context.Context, query, what string, args pgx.NamedArgs) ([]domain.GrowthRow, error) {
	rows, err := r.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query %s: %w", what, err)
	}
	defer rows.Close()

	var results []domain.GrowthRow
	for rows.Next() {
		var g domain.GrowthRow
		if err := rows.Scan(&g.Name, &g.Current, &g.Previous, &g.GrowthPct); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan %s row: %w", what, err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read %s rows: %w", what, err)
	}
	return results, nil
}

// TransactionDistricts lists the district dropdown entries for one state.
func (r *PostgresRepository) TransactionDistricts(ctx context.Context, state string, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT entity_name AS district
		FROM top_map
		WHERE state = @state AND year = @year AND quarter = @quarter AND entity_type = 'District'
		ORDER BY district
	`
	return r.queryNames(ctx, query, "transaction districts",
		pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
}

// TransactionPincodes lists the pincode dropdown entries for one state.
func (r *PostgresRepository) TransactionPincodes(ctx context.Context, state string, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT entity_name AS pincode
		FROM top_map
		WHERE state = @state AND year = @year AND quarter = @quarter AND entity_type = 'Pincode'
		ORDER BY pincode
	`
	return r.queryNames(ctx, query, "transaction pincodes",
		pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
}

// GeoStates lists states present in the ranked-geography table for a period.
func (r *PostgresRepository) GeoStates(ctx context.Context, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT state
		FROM top_map
		WHERE year = @year AND quarter = @quarter AND entity_type = 'District'
		ORDER BY state
	`
	return r.queryNames(ctx, query, "geo states",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}
