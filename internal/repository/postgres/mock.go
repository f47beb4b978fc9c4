package postgres

import (
	"context"

	"github.com/paypulse/backend/internal/domain"
)

// MockRepository implements domain.PulseRepository for testing/demo mode.
// It serves a small fixed dataset covering two quarters, three states, two
// device brands, and a handful of districts; year and quarter arguments are
// accepted but not filtered on.
type MockRepository struct{}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func mockFloat(v float64) *float64 { return &v }

func capLimit[T any](rows []T, limit int) []T {
	if limit > 0 && limit < len(rows) {
		return rows[:limit]
	}
	return rows
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}

func (r *MockRepository) Periods(ctx context.Context) ([]domain.Period, error) {
	return []domain.Period{
		{Year: 2022, Quarter: 4},
		{Year: 2023, Quarter: 1},
	}, nil
}

func (r *MockRepository) LatestCommonUserPeriod(ctx context.Context) (domain.Period, bool, error) {
	return domain.Period{Year: 2023, Quarter: 1}, true, nil
}

func (r *MockRepository) StateTransactionTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	return []domain.MetricRow{
		{State: "Goa", Value: 950.75},
		{State: "Karnataka", Value: 4200.5},
		{State: "Orissa", Value: 1800.25},
	}, nil
}

func (r *MockRepository) CountryTransactionKPIs(ctx context.Context, year, quarter int) (domain.TransactionKPIs, error) {
	return domain.TransactionKPIs{Amount: 6951.5, Count: 300}, nil
}

func (r *MockRepository) StateTransactionKPIs(ctx context.Context, state string, year, quarter int) (domain.TransactionKPIs, error) {
	return domain.TransactionKPIs{Amount: 4200.5, Count: 180}, nil
}

func (r *MockRepository) CategoryBreakdown(ctx context.Context, state string, year, quarter int) ([]domain.CategoryRow, error) {
	return []domain.CategoryRow{
		{Type: "Merchant payments", Amount: 2400.5, Count: 95},
		{Type: "Peer-to-peer payments", Amount: 1800, Count: 85},
	}, nil
}

func (r *MockRepository) CategoryAmountTotals(ctx context.Context, year, quarter int) ([]domain.CategoryValue, error) {
	return []domain.CategoryValue{
		{Type: "Merchant payments", Value: 3900.75},
		{Type: "Peer-to-peer payments", Value: 3050.75},
	}, nil
}

func (r *MockRepository) CategoryCountTotals(ctx context.Context, year, quarter int) ([]domain.CategoryValue, error) {
	return []domain.CategoryValue{
		{Type: "Merchant payments", Value: 160},
		{Type: "Peer-to-peer payments", Value: 140},
	}, nil
}

func (r *MockRepository) CategoryAmountsForState(ctx context.Context, state string, year, quarter int) ([]domain.CategoryValue, error) {
	return []domain.CategoryValue{
		{Type: "Merchant payments", Value: 2400.5},
		{Type: "Peer-to-peer payments", Value: 1800},
	}, nil
}

func (r *MockRepository) TopStatesByAmount(ctx context.Context, year, quarter, limit int) ([]domain.MetricRow, error) {
	rows := []domain.MetricRow{
		{State: "Karnataka", Value: 4200.5},
		{State: "Orissa", Value: 1800.25},
		{State: "Goa", Value: 950.75},
	}
	return capLimit(rows, limit), nil
}

func (r *MockRepository) StateAmountSeries(ctx context.Context, state string) ([]domain.SeriesPoint, error) {
	return []domain.SeriesPoint{
		{Year: 2022, Quarter: 4, Value: 3900.25, Period: "2022-Q4"},
		{Year: 2023, Quarter: 1, Value: 4200.5, Period: "2023-Q1"},
	}, nil
}

func (r *MockRepository) TransactionStates(ctx context.Context, year, quarter int) ([]string, error) {
	return []string{"Goa", "Karnataka", "Orissa"}, nil
}

func (r *MockRepository) TopGeoEntities(ctx context.Context, state string, year, quarter int, entity domain.EntityType, limit int) ([]domain.GeoEntityRow, error) {
	var rows []domain.GeoEntityRow
	if entity == domain.EntityPincode {
		rows = []domain.GeoEntityRow{
			{Name: "560001", Transactions: 45, Amount: 720.5},
		}
	} else {
		rows = []domain.GeoEntityRow{
			{Name: "Bengaluru Urban", Transactions: 120, Amount: 2400.5},
			{Name: "Mysuru", Transactions: 60, Amount: 980},
		}
	}
	return capLimit(rows, limit), nil
}

func (r *MockRepository) TopGeoEntitiesCountry(ctx context.Context, year, quarter int, entity domain.EntityType, limit int) ([]domain.GeoEntityRow, error) {
	var rows []domain.GeoEntityRow
	if entity == domain.EntityPincode {
		rows = []domain.GeoEntityRow{
			{Name: "560001", State: "Karnataka", Transactions: 45, Amount: 720.5},
		}
	} else {
		rows = []domain.GeoEntityRow{
			{Name: "Bengaluru Urban", State: "Karnataka", Transactions: 120, Amount: 2400.5},
			{Name: "Cuttack", State: "Orissa", Transactions: 50, Amount: 860.25},
		}
	}
	return capLimit(rows, limit), nil
}

func (r *MockRepository) TopStateEntities(ctx context.Context, year, quarter int) ([]domain.GeoEntityRow, error) {
	return []domain.GeoEntityRow{
		{Name: "Karnataka", Transactions: 180, Amount: 4200.5},
		{Name: "Orissa", Transactions: 90, Amount: 1800.25},
	}, nil
}

func (r *MockRepository) DistrictShare(ctx context.Context, state string, year, quarter int) ([]domain.ShareRow, error) {
	return []domain.ShareRow{
		{District: "Bengaluru Urban", Amount: 2400.5, SharePct: mockFloat(57.15)},
		{District: "Mysuru", Amount: 980, SharePct: mockFloat(23.33)},
	}, nil
}

func (r *MockRepository) DistrictYoY(ctx context.Context, state string, year, quarter int) ([]domain.GrowthRow, error) {
	return []domain.GrowthRow{
		{Name: "Bengaluru Urban", Current: 2400.5, Previous: mockFloat(1900), GrowthPct: mockFloat(26.34)},
		{Name: "Mysuru", Current: 980, Previous: nil, GrowthPct: nil},
	}, nil
}

func (r *MockRepository) TransactionDistricts(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return []string{"Bengaluru Urban", "Mysuru"}, nil
}

func (r *MockRepository) TransactionPincodes(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return []string{"560001"}, nil
}

func (r *MockRepository) GeoStates(ctx context.Context, year, quarter int) ([]string, error) {
	return []string{"Karnataka", "Orissa"}, nil
}

func (r *MockRepository) StateUserTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	return []domain.MetricRow{
		{State: "Goa", Value: 800},
		{State: "Karnataka", Value: 5000},
		{State: "Orissa", Value: 2200},
	}, nil
}

func (r *MockRepository) CountryUserKPIs(ctx context.Context, year, quarter int) (domain.UserKPIs, error) {
	return domain.UserKPIs{RegisteredUsers: 8000, AppOpens: 36000}, nil
}

func (r *MockRepository) StateUserKPIs(ctx context.Context, state string, year, quarter int) (domain.UserKPIs, error) {
	return domain.UserKPIs{RegisteredUsers: 5000, AppOpens: 22500}, nil
}

func (r *MockRepository) TopDistrictsByUsers(ctx context.Context, state string, year, quarter, limit int) ([]domain.DistrictUsersRow, error) {
	rows := []domain.DistrictUsersRow{
		{District: "Bengaluru Urban", Users: 2800, AppOpens: 12600},
		{District: "Mysuru", Users: 900, AppOpens: 4050},
	}
	return capLimit(rows, limit), nil
}

func (r *MockRepository) TopPincodesByUsers(ctx context.Context, state string, year, quarter, limit int) ([]domain.PincodeUsersRow, error) {
	rows := []domain.PincodeUsersRow{
		{Pincode: "560001", Users: 650},
	}
	return capLimit(rows, limit), nil
}

func (r *MockRepository) TopPincodesByUsersCountry(ctx context.Context, year, quarter, limit int) ([]domain.PincodeUsersRow, error) {
	rows := []domain.PincodeUsersRow{
		{Pincode: "560001", State: "Karnataka", Users: 650},
	}
	return capLimit(rows, limit), nil
}

func (r *MockRepository) UserDistricts(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return []string{"Bengaluru Urban", "Mysuru"}, nil
}

func (r *MockRepository) UserPincodes(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return []string{"560001"}, nil
}

func (r *MockRepository) UserStates(ctx context.Context, year, quarter int) ([]string, error) {
	return []string{"Goa", "Karnataka", "Orissa"}, nil
}

func (r *MockRepository) BrandTotals(ctx context.Context, year, quarter int) ([]domain.BrandRow, error) {
	return []domain.BrandRow{
		{Brand: "Xiaomi", Users: 2600, AvgSharePct: 24.5},
		{Brand: "Samsung", Users: 2100, AvgSharePct: 19.75},
	}, nil
}

func (r *MockRepository) EngagementByState(ctx context.Context, year, quarter int) ([]domain.EngagementRow, error) {
	return []domain.EngagementRow{
		{State: "Karnataka", RegisteredUsers: 5000, AppOpens: 22500, OpensPerUser: mockFloat(4.5)},
		{State: "Orissa", RegisteredUsers: 2200, AppOpens: 8800, OpensPerUser: mockFloat(4)},
		{State: "Goa", RegisteredUsers: 800, AppOpens: 2400, OpensPerUser: mockFloat(3)},
	}, nil
}

func (r *MockRepository) TopBrandPerState(ctx context.Context, year, quarter int) ([]domain.StateBrandRow, error) {
	return []domain.StateBrandRow{
		{State: "Goa", Brand: "Samsung", Users: 260},
		{State: "Karnataka", Brand: "Xiaomi", Users: 1400},
		{State: "Orissa", Brand: "Xiaomi", Users: 700},
	}, nil
}

func (r *MockRepository) Brands(ctx context.Context, year, quarter int) ([]string, error) {
	return []string{"Samsung", "Xiaomi"}, nil
}

func (r *MockRepository) BrandSeries(ctx context.Context, brand string) ([]domain.BrandSeriesPoint, error) {
	return []domain.BrandSeriesPoint{
		{Year: 2022, Quarter: 4, Users: 2400, Period: "2022-Q4"},
		{Year: 2023, Quarter: 1, Users: 2600, Period: "2023-Q1"},
	}, nil
}

func (r *MockRepository) BrandShareByState(ctx context.Context, brand string, year, quarter int) ([]domain.BrandShareRow, error) {
	return []domain.BrandShareRow{
		{State: "Karnataka", SharePct: 28.5, OpensPerUser: mockFloat(4.5)},
		{State: "Orissa", SharePct: 31.2, OpensPerUser: mockFloat(4)},
	}, nil
}

func (r *MockRepository) StateUserTrend(ctx context.Context, state string) ([]domain.SeriesPoint, error) {
	return []domain.SeriesPoint{
		{Year: 2022, Quarter: 4, Value: 4600, Period: "2022-Q4"},
		{Year: 2023, Quarter: 1, Value: 5000, Period: "2023-Q1"},
	}, nil
}

func (r *MockRepository) StateInsuranceTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	return []domain.MetricRow{
		{State: "Karnataka", Value: 320.5},
		{State: "Orissa", Value: 110.25},
	}, nil
}

func (r *MockRepository) InsuranceTypeShare(ctx context.Context, year, quarter int) ([]domain.InsuranceTypeValue, error) {
	return []domain.InsuranceTypeValue{
		{Type: "Health", Amount: 260.5},
		{Type: "Life", Amount: 170.25},
	}, nil
}

func (r *MockRepository) InsuranceStates(ctx context.Context, year, quarter int) ([]string, error) {
	return []string{"Karnataka", "Orissa"}, nil
}

func (r *MockRepository) TopDistrictsByInsurance(ctx context.Context, state string, year, quarter, limit int) ([]domain.DistrictInsuranceRow, error) {
	rows := []domain.DistrictInsuranceRow{
		{District: "Bengaluru Urban", Amount: 180.5, Count: 420},
		{District: "Mysuru", Amount: 60, Count: 150},
	}
	return capLimit(rows, limit), nil
}

func (r *MockRepository) InsuranceYoY(ctx context.Context, year, quarter int) ([]domain.GrowthRow, error) {
	return []domain.GrowthRow{
		{Name: "Karnataka", Current: 320.5, Previous: mockFloat(240), GrowthPct: mockFloat(33.54)},
		{Name: "Orissa", Current: 110.25, Previous: nil, GrowthPct: nil},
	}, nil
}

func (r *MockRepository) InsuranceVsTransactions(ctx context.Context, year, quarter int) ([]domain.InsuranceRatioRow, error) {
	return []domain.InsuranceRatioRow{
		{State: "Karnataka", InsuranceAmount: mockFloat(320.5), TransactionAmount: mockFloat(4200.5), InsVsTxnPct: mockFloat(7.63)},
		{State: "Orissa", InsuranceAmount: mockFloat(110.25), TransactionAmount: mockFloat(1800.25), InsVsTxnPct: mockFloat(6.12)},
	}, nil
}
