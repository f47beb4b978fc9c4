package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paypulse/backend/internal/domain"
)

// StateUserTotals sums registered users per state for a period.
func (r *PostgresRepository) StateUserTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	query := `
		SELECT state, COALESCE(SUM(registered_users), 0)::float8 AS value
		FROM map_user
		WHERE year = @year AND quarter = @quarter
		GROUP BY state
	`
	return r.queryMetricRows(ctx, query, "state user totals",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// CountryUserKPIs totals registered users and app opens nationwide.
func (r *PostgresRepository) CountryUserKPIs(ctx context.Context, year, quarter int) (domain.UserKPIs, error) {
	query := `
		SELECT COALESCE(SUM(registered_users), 0)::bigint AS registered_users,
		       COALESCE(SUM(app_opens), 0)::bigint        AS app_opens
		FROM map_user
		WHERE year = @year AND quarter = @quarter
	`

	var k domain.UserKPIs
	err := r.pool.QueryRow(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter}).
		Scan(&k.RegisteredUsers, &k.AppOpens)
	if err != nil {
		return domain.UserKPIs{}, fmt.Errorf("postgres: failed to query country user kpis: %w", err)
	}
	return k, nil
}

// StateUserKPIs totals registered users and app opens for one state.
func (r *PostgresRepository) StateUserKPIs(ctx context.Context, state string, year, quarter int) (domain.UserKPIs, error) {
	query := `
		SELECT COALESCE(SUM(registered_users), 0)::bigint AS registered_users,
		       COALESCE(SUM(app_opens), 0)::bigint        AS app_opens
		FROM map_user
		WHERE state = @state AND year = @year AND quarter = @quarter
	`

	var k domain.UserKPIs
	err := r.pool.QueryRow(ctx, query, pgx.NamedArgs{"state": state, "year": year, "quarter": quarter}).
		Scan(&k.RegisteredUsers, &k.AppOpens)
	if err != nil {
		return domain.UserKPIs{}, fmt.Errorf("postgres: failed to query state user kpis: %w", err)
	}
	return k, nil
}

// TopDistrictsByUsers ranks one state's districts by registered users.
func (r *PostgresRepository) TopDistrictsByUsers(ctx context.Context, state string, year, quarter, limit int) ([]domain.DistrictUsersRow, error) {
	query := `
		SELECT name AS district,
		       COALESCE(SUM(registered_users), 0)::bigint AS users,
		       COALESCE(SUM(app_opens), 0)::bigint        AS app_opens
		FROM map_user
		WHERE state = @state AND year = @year AND quarter = @quarter
		GROUP BY name
		ORDER BY users DESC NULLS LAST, district
		LIMIT @limit
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{
		"state": state, "year": year, "quarter": quarter, "limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top districts by users: %w", err)
	}
	defer rows.Close()

	var results []domain.DistrictUsersRow
	for rows.Next() {
		var d domain.DistrictUsersRow
		if err := rows.Scan(&d.District, &d.Users, &d.AppOpens); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan top district users row: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read top district users rows: %w", err)
	}
	return results, nil
}

// TopPincodesByUsers ranks one state's pincodes by registered users.
func (r *PostgresRepository) TopPincodesByUsers(ctx context.Context, state string, year, quarter, limit int) ([]domain.PincodeUsersRow, error) {
	query := `
		SELECT entity_name AS pincode,
		       COALESCE(SUM(registered_users), 0)::bigint AS users
		FROM top_user
		WHERE state = @state AND year = @year AND quarter = @quarter AND entity_type = 'Pincode'
		GROUP BY entity_name
		ORDER BY users DESC NULLS LAST, pincode
		LIMIT @limit
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{
		"state": state, "year": year, "quarter": quarter, "limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top pincodes by users: %w", err)
	}
	defer rows.Close()

	var results []domain.PincodeUsersRow
	for rows.Next() {
		var p domain.PincodeUsersRow
		if err := rows.Scan(&p.Pincode, &p.Users); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan top pincode users row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read top pincode users rows: %w", err)
	}
	return results, nil
}

// TopPincodesByUsersCountry ranks pincodes nationwide by registered users,
// carrying each row's state.
func (r *PostgresRepository) TopPincodesByUsersCountry(ctx context.Context, year, quarter, limit int) ([]domain.PincodeUsersRow, error) {
	query := `
		SELECT entity_name AS pincode,
		       state,
		       COALESCE(SUM(registered_users), 0)::bigint AS users
		FROM top_user
		WHERE year = @year AND quarter = @quarter AND entity_type = 'Pincode'
		GROUP BY entity_name, state
		ORDER BY users DESC NULLS LAST, pincode
		LIMIT @limit
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query country top pincodes: %w", err)
	}
	defer rows.Close()

	var results []domain.PincodeUsersRow
	for rows.Next() {
		var p domain.PincodeUsersRow
		if err := rows.Scan(&p.Pincode, &p.State, &p.Users); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan country top pincode row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read country top pincode rows: %w", err)
	}
	return results, nil
}

// UserDistricts lists the district dropdown entries for one state.
func (r *PostgresRepository) UserDistricts(ctx context.Context, state string, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT name AS district
		FROM map_user
		WHERE state = @state AND year = @year AND quarter = @quarter
		ORDER BY district
	`
	return r.queryNames(ctx, query, "user districts",
		pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
}

// UserPincodes lists the pincode dropdown entries for one state.
func (r *PostgresRepository) UserPincodes(ctx context.Context, state string, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT entity_name AS pincode
		FROM top_user
		WHERE state = @state AND year = @year AND quarter = @quarter AND entity_type = 'Pincode'
		ORDER BY pincode
	`
	return r.queryNames(ctx, query, "user pincodes",
		pgx.NamedArgs{"state": state, "year": year, "quarter": quarter})
}

// UserStates lists states with registration rows in a period, ascending.
func (r *PostgresRepository) UserStates(ctx context.Context, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT state
		FROM map_user
		WHERE year = @year AND quarter = @quarter
		ORDER BY state
	`
	return r.queryNames(ctx, query, "user states",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// BrandTotals aggregates registrations by device brand for a period.
func (r *PostgresRepository) BrandTotals(ctx context.Context, year, quarter int) ([]domain.BrandRow, error) {
	query := `
		SELECT brand,
		       COALESCE(SUM(count), 0)::bigint AS users,
		       COALESCE(ROUND((AVG(percentage) * 100)::numeric, 2), 0)::float8 AS avg_share_pct
		FROM aggregated_user
		WHERE year = @year AND quarter = @quarter
		GROUP BY brand
		ORDER BY users DESC NULLS LAST, brand
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query brand totals: %w", err)
	}
	defer rows.Close()

	var results []domain.BrandRow
	for rows.Next() {
		var b domain.BrandRow
		if err := rows.Scan(&b.Brand, &b.Users, &b.AvgSharePct); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan brand totals row: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read brand totals rows: %w", err)
	}
	return results, nil
}

// EngagementByState relates app opens to registered users per state. The
// ratio is null where a state has no registered users.
func (r *PostgresRepository) EngagementByState(ctx context.Context, year, quarter int) ([]domain.EngagementRow, error) {
	query := `
		SELECT state,
		       COALESCE(SUM(registered_users), 0)::bigint AS reg_users,
		       COALESCE(SUM(app_opens), 0)::bigint        AS app_opens,
		       ROUND(SUM(app_opens)::numeric / NULLIF(SUM(registered_users), 0), 2)::float8 AS opens_per_user
		FROM map_user
		WHERE year = @year AND quarter = @quarter
		GROUP BY state
		ORDER BY opens_per_user DESC NULLS LAST, state
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query engagement by state: %w", err)
	}
	defer rows.Close()

	var results []domain.EngagementRow
	for rows.Next() {
		var e domain.EngagementRow
		if err := rows.Scan(&e.State, &e.RegisteredUsers, &e.AppOpens, &e.OpensPerUser); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan engagement row: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read engagement rows: %w", err)
	}
	return results, nil
}

// TopBrandPerState names the dominant brand in each state.
func (r *PostgresRepository) TopBrandPerState(ctx context.Context, year, quarter int) ([]domain.StateBrandRow, error) {
	query := `
		WITH b AS (
		  SELECT state, brand, SUM(count) AS users
		  FROM aggregated_user
		  WHERE year = @year AND quarter = @quarter
		  GROUP BY state, brand
		),
		r AS (
		  SELECT state, brand, users,
		         ROW_NUMBER() OVER (PARTITION BY state ORDER BY users DESC) AS rn
		  FROM b
		)
		SELECT state, brand AS top_brand, COALESCE(users, 0)::bigint AS top_brand_users
		FROM r
		WHERE rn = 1
		ORDER BY top_brand_users DESC NULLS LAST, state
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query top brand per state: %w", err)
	}
	defer rows.Close()

	var results []domain.StateBrandRow
	for rows.Next() {
		var s domain.StateBrandRow
		if err := rows.Scan(&s.State, &s.Brand, &s.Users); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan top brand row: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read top brand rows: %w", err)
	}
	return results, nil
}

// Brands lists device brands present in a period, ascending.
func (r *PostgresRepository) Brands(ctx context.Context, year, quarter int) ([]string, error) {
	query := `
		SELECT DISTINCT brand
		FROM aggregated_user
		WHERE year = @year AND quarter = @quarter AND brand IS NOT NULL
		ORDER BY brand
	`
	return r.queryNames(ctx, query, "brands",
		pgx.NamedArgs{"year": year, "quarter": quarter})
}

// BrandSeries returns one brand's registrations per quarter, ascending.
func (r *PostgresRepository) BrandSeries(ctx context.Context, brand string) ([]domain.BrandSeriesPoint, error) {
	query := `
		SELECT year, quarter, COALESCE(SUM(count), 0)::bigint AS users
		FROM aggregated_user
		WHERE brand = @brand
		GROUP BY year, quarter
		ORDER BY year, quarter
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"brand": brand})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query brand series: %w", err)
	}
	defer rows.Close()

	var results []domain.BrandSeriesPoint
	for rows.Next() {
		var p domain.BrandSeriesPoint
		if err := rows.Scan(&p.Year, &p.Quarter, &p.Users); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan brand series row: %w", err)
		}
		p.Period = domain.Period{Year: p.Year, Quarter: p.Quarter}.Label()
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read brand series rows: %w", err)
	}
	return results, nil
}

// BrandShareByState relates one brand's registration share to engagement per
// state. States with no registrations at all are filtered out.
func (r *PostgresRepository) BrandShareByState(ctx context.Context, brand string, year, quarter int) ([]domain.BrandShareRow, error) {
	query := `
		WITH share AS (
		  SELECT au.state,
		         100.0 * SUM(CASE WHEN au.brand = @brand THEN au.count ELSE 0 END)
		         / NULLIF(SUM(au.count), 0) AS brand_share_pct
		  FROM aggregated_user au
		  WHERE au.year = @year AND au.quarter = @quarter
		  GROUP BY au.state
		),
		eng AS (
		  SELECT mu.state,
		         ROUND(SUM(mu.app_opens)::numeric / NULLIF(SUM(mu.registered_users), 0), 2) AS opens_per_user
		  FROM map_user mu
		  WHERE mu.year = @year AND mu.quarter = @quarter
		  GROUP BY mu.state
		)
		SELECT s.state,
		       ROUND(s.brand_share_pct::numeric, 2)::float8 AS brand_share_pct,
		       e.opens_per_user::float8                     AS opens_per_user
		FROM share s LEFT JOIN eng e USING (state)
		WHERE s.brand_share_pct IS NOT NULL
		ORDER BY brand_share_pct DESC NULLS LAST, s.state
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"brand": brand, "year": year, "quarter": quarter})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query brand share by state: %w", err)
	}
	defer rows.Close()

	var results []domain.BrandShareRow
	for rows.Next() {
		var b domain.BrandShareRow
		if err := rows.Scan(&b.State, &b.SharePct, &b.OpensPerUser); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan brand share row: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read brand share rows: %w", err)
	}
	return results, nil
}

// StateUserTrend returns one state's registered users per quarter over all
// years, ascending.
func (r *PostgresRepository) StateUserTrend(ctx context.Context, state string) ([]domain.SeriesPoint, error) {
	query := `
		SELECT year, quarter, COALESCE(SUM(registered_users), 0)::float8 AS value
		FROM map_user
		WHERE state = @state
		GROUP BY year, quarter
		ORDER BY year, quarter
	`

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{"state": state})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query state user trend: %w", err)
	}
	defer rows.Close()

	var results []domain.SeriesPoint
	for rows.Next() {
		var p domain.SeriesPoint
		if err := rows.Scan(&p.Year, &p.Quarter, &p.Value); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan state user trend row: %w", err)
		}
		p.Period = domain.Period{Year: p.Year, Quarter: p.Quarter}.Label()
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read state user trend rows: %w", err)
	}
	return results, nil
}
