package domain

import "context"

// EntityType distinguishes rows in the ranked-geography tables.
type EntityType string

const (
	EntityDistrict EntityType = "District"
	EntityPincode  EntityType = "Pincode"
	EntityState    EntityType = "State"
)

// PeriodSource reads the reporting calendar.
type PeriodSource interface {
	// Periods lists every (year, quarter) present in the payment table,
	// ascending.
	Periods(ctx context.Context) ([]Period, error)

	// LatestCommonUserPeriod returns the most recent period present in both
	// user tables; ok is false when the tables share no period.
	LatestCommonUserPeriod(ctx context.Context) (Period, bool, error)
}

// TransactionSource reads payment aggregates.
// Sorted results use a documented deterministic tie-break: primary key
// descending by amount with NULLs last, then ascending by name.
type TransactionSource interface {
	// StateTransactionTotals sums payment amount per state for a period.
	StateTransactionTotals(ctx context.Context, year, quarter int) ([]MetricRow, error)

	// CountryTransactionKPIs totals payment amount and count nationwide.
	// Zero matching rows yield zero values, not an error.
	CountryTransactionKPIs(ctx context.Context, year, quarter int) (TransactionKPIs, error)

	// StateTransactionKPIs totals payment amount and count for one state.
	StateTransactionKPIs(ctx context.Context, state string, year, quarter int) (TransactionKPIs, error)

	// CategoryBreakdown splits one state's payments by category.
	CategoryBreakdown(ctx context.Context, state string, year, quarter int) ([]CategoryRow, error)

	// CategoryAmountTotals sums nationwide payment amount per category.
	CategoryAmountTotals(ctx context.Context, year, quarter int) ([]CategoryValue, error)

	// CategoryCountTotals sums nationwide payment count per category.
	CategoryCountTotals(ctx context.Context, year, quarter int) ([]CategoryValue, error)

	// CategoryAmountsForState sums one state's payment amount per category.
	CategoryAmountsForState(ctx context.Context, state string, year, quarter int) ([]CategoryValue, error)

	// TopStatesByAmount ranks states by payment amount.
	TopStatesByAmount(ctx context.Context, year, quarter, limit int) ([]MetricRow, error)

	// StateAmountSeries returns one state's payment amount per quarter over
	// all years, ascending.
	StateAmountSeries(ctx context.Context, state string) ([]SeriesPoint, error)

	// TransactionStates lists states with payment rows in a period,
	// ascending by name.
	TransactionStates(ctx context.Context, year, quarter int) ([]string, error)

	// TopGeoEntities ranks one state's districts or pincodes by amount.
	TopGeoEntities(ctx context.Context, state string, year, quarter int, entity EntityType, limit int) ([]GeoEntityRow, error)

	// TopGeoEntitiesCountry ranks districts or pincodes nationwide,
	// carrying each row's state.
	TopGeoEntitiesCountry(ctx context.Context, year, quarter int, entity EntityType, limit int) ([]GeoEntityRow, error)

	// TopStateEntities ranks states in the ranked-geography table.
	TopStateEntities(ctx context.Context, year, quarter int) ([]GeoEntityRow, error)

	// DistrictShare computes each district's share of its state's amount.
	DistrictShare(ctx context.Context, state string, year, quarter int) ([]ShareRow, error)

	// DistrictYoY compares district amounts against the prior year.
	DistrictYoY(ctx context.Context, state string, year, quarter int) ([]GrowthRow, error)

	// TransactionDistricts and TransactionPincodes list the drilldown
	// dropdown entries for one state, ascending.
	TransactionDistricts(ctx context.Context, state string, year, quarter int) ([]string, error)
	TransactionPincodes(ctx context.Context, state string, year, quarter int) ([]string, error)

	// GeoStates lists states present in the ranked-geography table for a
	// period, ascending by name.
	GeoStates(ctx context.Context, year, quarter int) ([]string, error)
}

// UserSource reads registration and device aggregates.
type UserSource interface {
	// StateUserTotals sums registered users per state for a period.
	StateUserTotals(ctx context.Context, year, quarter int) ([]MetricRow, error)

	// CountryUserKPIs totals registered users and app opens nationwide.
	CountryUserKPIs(ctx context.Context, year, quarter int) (UserKPIs, error)

	// StateUserKPIs totals registered users and app opens for one state.
	StateUserKPIs(ctx context.Context, state string, year, quarter int) (UserKPIs, error)

	// TopDistrictsByUsers ranks one state's districts by registered users.
	TopDistrictsByUsers(ctx context.Context, state string, year, quarter, limit int) ([]DistrictUsersRow, error)

	// TopPincodesByUsers ranks one state's pincodes by registered users.
	TopPincodesByUsers(ctx context.Context, state string, year, quarter, limit int) ([]PincodeUsersRow, error)

	// TopPincodesByUsersCountry ranks pincodes nationwide by registered
	// users, carrying each row's state.
	TopPincodesByUsersCountry(ctx context.Context, year, quarter, limit int) ([]PincodeUsersRow, error)

	// UserDistricts and UserPincodes list the drilldown dropdown entries
	// for one state, ascending.
	UserDistricts(ctx context.Context, state string, year, quarter int) ([]string, error)
	UserPincodes(ctx context.Context, state string, year, quarter int) ([]string, error)

	// UserStates lists states with registration rows in a period.
	UserStates(ctx context.Context, year, quarter int) ([]string, error)

	// BrandTotals aggregates registrations by device brand for a period.
	BrandTotals(ctx context.Context, year, quarter int) ([]BrandRow, error)

	// EngagementByState relates app opens to registered users per state.
	EngagementByState(ctx context.Context, year, quarter int) ([]EngagementRow, error)

	// TopBrandPerState names the dominant brand in each state.
	TopBrandPerState(ctx context.Context, year, quarter int) ([]StateBrandRow, error)

	// Brands lists device brands present in a period, ascending.
	Brands(ctx context.Context, year, quarter int) ([]string, error)

	// BrandSeries returns one brand's registrations per quarter, ascending.
	BrandSeries(ctx context.Context, brand string) ([]BrandSeriesPoint, error)

	// BrandShareByState relates one brand's registration share to
	// engagement per state.
	BrandShareByState(ctx context.Context, brand string, year, quarter int) ([]BrandShareRow, error)

	// StateUserTrend returns one state's registered users per quarter over
	// all years, ascending.
	StateUserTrend(ctx context.Context, state string) ([]SeriesPoint, error)
}

// InsuranceSource reads insurance aggregates.
type InsuranceSource interface {
	// StateInsuranceTotals sums premium amount per state for a period.
	StateInsuranceTotals(ctx context.Context, year, quarter int) ([]MetricRow, error)

	// InsuranceTypeShare splits nationwide premium by product type.
	InsuranceTypeShare(ctx context.Context, year, quarter int) ([]InsuranceTypeValue, error)

	// InsuranceStates lists states with insurance rows in a period.
	InsuranceStates(ctx context.Context, year, quarter int) ([]string, error)

	// TopDistrictsByInsurance ranks one state's districts by premium.
	TopDistrictsByInsurance(ctx context.Context, state string, year, quarter, limit int) ([]DistrictInsuranceRow, error)

	// InsuranceYoY compares state premiums against the prior year.
	InsuranceYoY(ctx context.Context, year, quarter int) ([]GrowthRow, error)

	// InsuranceVsTransactions relates state premiums to payment volume.
	InsuranceVsTransactions(ctx context.Context, year, quarter int) ([]InsuranceRatioRow, error)
}

// PulseRepository is the complete read catalog against the pulse store.
// Implementations never mutate the store; query errors propagate to the
// caller and abort the render pass.
type PulseRepository interface {
	PeriodSource
	TransactionSource
	UserSource
	InsuranceSource

	// Health checks store connectivity.
	Health(ctx context.Context) error
}
