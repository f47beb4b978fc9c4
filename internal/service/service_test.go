package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paypulse/backend/internal/domain"
	"github.com/paypulse/backend/internal/session"
)

// stubRepo returns canned rows and records the arguments of the calls the
// tests assert on. Reads of canned fields are safe under the service's
// concurrent fan-out because tests only write them before the call.
type stubRepo struct {
	mu sync.Mutex

	healthErr error

	periods    []domain.Period
	periodsErr error
	common     domain.Period
	commonOK   bool

	stateTxnTotals    []domain.MetricRow
	stateTxnTotalsErr error
	countryTxnKPIs    domain.TransactionKPIs
	stateTxnKPIs      domain.TransactionKPIs
	categories        []domain.CategoryRow
	categoriesErr     error
	categoryAmounts   []domain.CategoryValue
	categoryCounts    []domain.CategoryValue
	stateCategories   []domain.CategoryValue
	topStates         []domain.MetricRow
	amountSeries      []domain.SeriesPoint
	txnStates         []string
	topGeo            []domain.GeoEntityRow
	topGeoCountry     map[domain.EntityType][]domain.GeoEntityRow
	topStateRows      []domain.GeoEntityRow
	share             []domain.ShareRow
	growth            []domain.GrowthRow
	txnDistricts      []string
	txnPincodes       []string
	geoStates         []string

	stateUserTotals []domain.MetricRow
	countryUserKPIs domain.UserKPIs
	stateUserKPIs   domain.UserKPIs
	districtUsers   []domain.DistrictUsersRow
	pincodeUsers    []domain.PincodeUsersRow
	pincodeCountry  []domain.PincodeUsersRow
	userDistricts   []string
	userPincodes    []string
	userStates      []string
	brandTotals     []domain.BrandRow
	engagement      []domain.EngagementRow
	topBrands       []domain.StateBrandRow
	brands          []string
	brandSeries     []domain.BrandSeriesPoint
	brandShare      []domain.BrandShareRow
	userTrend       []domain.SeriesPoint

	insTotals    []domain.MetricRow
	insTypes     []domain.InsuranceTypeValue
	insStates    []string
	insDistricts []domain.DistrictInsuranceRow
	insGrowth    []domain.GrowthRow
	insRatio     []domain.InsuranceRatioRow

	gotStateCategories string
	gotAmountSeries    string
	gotGeoEntities     []geoCall
	gotShareState      string
	gotYoYState        string
	gotDistrictUsers   string
	gotDistrictLimit   int
	gotBrandSeries     string
	gotBrandShare      string
	gotTrendState      string
	gotInsDistricts    string
	gotInsLimit        int
}

type geoCall struct {
	state  string
	entity domain.EntityType
	limit  int
}

func (r *stubRepo) Health(ctx context.Context) error { return r.healthErr }

func (r *stubRepo) Periods(ctx context.Context) ([]domain.Period, error) {
	return r.periods, r.periodsErr
}

func (r *stubRepo) LatestCommonUserPeriod(ctx context.Context) (domain.Period, bool, error) {
	return r.common, r.commonOK, nil
}

func (r *stubRepo) StateTransactionTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	return r.stateTxnTotals, r.stateTxnTotalsErr
}

func (r *stubRepo) CountryTransactionKPIs(ctx context.Context, year, quarter int) (domain.TransactionKPIs, error) {
	return r.countryTxnKPIs, nil
}

func (r *stubRepo) StateTransactionKPIs(ctx context.Context, state string, year, quarter int) (domain.TransactionKPIs, error) {
	return r.stateTxnKPIs, nil
}

func (r *stubRepo) CategoryBreakdown(ctx context.Context, state string, year, quarter int) ([]domain.CategoryRow, error) {
	return r.categories, r.categoriesErr
}

func (r *stubRepo) CategoryAmountTotals(ctx context.Context, year, quarter int) ([]domain.CategoryValue, error) {
	return r.categoryAmounts, nil
}

func (r *stubRepo) CategoryCountTotals(ctx context.Context, year, quarter int) ([]domain.CategoryValue, error) {
	return r.categoryCounts, nil
}

func (r *stubRepo) CategoryAmountsForState(ctx context.Context, state string, year, quarter int) ([]domain.CategoryValue, error) {
	r.mu.Lock()
	r.gotStateCategories = state
	r.mu.Unlock()
	return r.stateCategories, nil
}

func (r *stubRepo) TopStatesByAmount(ctx context.Context, year, quarter, limit int) ([]domain.MetricRow, error) {
	return r.topStates, nil
}

func (r *stubRepo) StateAmountSeries(ctx context.Context, state string) ([]domain.SeriesPoint, error) {
	r.mu.Lock()
	r.gotAmountSeries = state
	r.mu.Unlock()
	return r.amountSeries, nil
}

func (r *stubRepo) TransactionStates(ctx context.Context, year, quarter int) ([]string, error) {
	return r.txnStates, nil
}

func (r *stubRepo) TopGeoEntities(ctx context.Context, state string, year, quarter int, entity domain.EntityType, limit int) ([]domain.GeoEntityRow, error) {
	r.mu.Lock()
	r.gotGeoEntities = append(r.gotGeoEntities, geoCall{state: state, entity: entity, limit: limit})
	r.mu.Unlock()
	return r.topGeo, nil
}

func (r *stubRepo) TopGeoEntitiesCountry(ctx context.Context, year, quarter int, entity domain.EntityType, limit int) ([]domain.GeoEntityRow, error) {
	return r.topGeoCountry[entity], nil
}

func (r *stubRepo) TopStateEntities(ctx context.Context, year, quarter int) ([]domain.GeoEntityRow, error) {
	return r.topStateRows, nil
}

func (r *stubRepo) DistrictShare(ctx context.Context, state string, year, quarter int) ([]domain.ShareRow, error) {
	r.mu.Lock()
	r.gotShareState = state
	r.mu.Unlock()
	return r.share, nil
}

func (r *stubRepo) DistrictYoY(ctx context.Context, state string, year, quarter int) ([]domain.GrowthRow, error) {
	r.mu.Lock()
	r.gotYoYState = state
	r.mu.Unlock()
	return r.growth, nil
}

func (r *stubRepo) TransactionDistricts(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return r.txnDistricts, nil
}

func (r *stubRepo) TransactionPincodes(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return r.txnPincodes, nil
}

func (r *stubRepo) GeoStates(ctx context.Context, year, quarter int) ([]string, error) {
	return r.geoStates, nil
}

func (r *stubRepo) StateUserTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	return r.stateUserTotals, nil
}

func (r *stubRepo) CountryUserKPIs(ctx context.Context, year, quarter int) (domain.UserKPIs, error) {
	return r.countryUserKPIs, nil
}

func (r *stubRepo) StateUserKPIs(ctx context.Context, state string, year, quarter int) (domain.UserKPIs, error) {
	return r.stateUserKPIs, nil
}

func (r *stubRepo) TopDistrictsByUsers(ctx context.Context, state string, year, quarter, limit int) ([]domain.DistrictUsersRow, error) {
	r.mu.Lock()
	r.gotDistrictUsers = state
	r.gotDistrictLimit = limit
	r.mu.Unlock()
	return r.districtUsers, nil
}

func (r *stubRepo) TopPincodesByUsers(ctx context.Context, state string, year, quarter, limit int) ([]domain.PincodeUsersRow, error) {
	return r.pincodeUsers, nil
}

func (r *stubRepo) TopPincodesByUsersCountry(ctx context.Context, year, quarter, limit int) ([]domain.PincodeUsersRow, error) {
	return r.pincodeCountry, nil
}

func (r *stubRepo) UserDistricts(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return r.userDistricts, nil
}

func (r *stubRepo) UserPincodes(ctx context.Context, state string, year, quarter int) ([]string, error) {
	return r.userPincodes, nil
}

func (r *stubRepo) UserStates(ctx context.Context, year, quarter int) ([]string, error) {
	return r.userStates, nil
}

func (r *stubRepo) BrandTotals(ctx context.Context, year, quarter int) ([]domain.BrandRow, error) {
	return r.brandTotals, nil
}

func (r *stubRepo) EngagementByState(ctx context.Context, year, quarter int) ([]domain.EngagementRow, error) {
	return r.engagement, nil
}

func (r *stubRepo) TopBrandPerState(ctx context.Context, year, quarter int) ([]domain.StateBrandRow, error) {
	return r.topBrands, nil
}

func (r *stubRepo) Brands(ctx context.Context, year, quarter int) ([]string, error) {
	return r.brands, nil
}

func (r *stubRepo) BrandSeries(ctx context.Context, brand string) ([]domain.BrandSeriesPoint, error) {
	r.mu.Lock()
	r.gotBrandSeries = brand
	r.mu.Unlock()
	return r.brandSeries, nil
}

func (r *stubRepo) BrandShareByState(ctx context.Context, brand string, year, quarter int) ([]domain.BrandShareRow, error) {
	r.mu.Lock()
	r.gotBrandShare = brand
	r.mu.Unlock()
	return r.brandShare, nil
}

func (r *stubRepo) StateUserTrend(ctx context.Context, state string) ([]domain.SeriesPoint, error) {
	r.mu.Lock()
	r.gotTrendState = state
	r.mu.Unlock()
	return r.userTrend, nil
}

func (r *stubRepo) StateInsuranceTotals(ctx context.Context, year, quarter int) ([]domain.MetricRow, error) {
	return r.insTotals, nil
}

func (r *stubRepo) InsuranceTypeShare(ctx context.Context, year, quarter int) ([]domain.InsuranceTypeValue, error) {
	return r.insTypes, nil
}

func (r *stubRepo) InsuranceStates(ctx context.Context, year, quarter int) ([]string, error) {
	return r.insStates, nil
}

func (r *stubRepo) TopDistrictsByInsurance(ctx context.Context, state string, year, quarter, limit int) ([]domain.DistrictInsuranceRow, error) {
	r.mu.Lock()
	r.gotInsDistricts = state
	r.gotInsLimit = limit
	r.mu.Unlock()
	return r.insDistricts, nil
}

func (r *stubRepo) InsuranceYoY(ctx context.Context, year, quarter int) ([]domain.GrowthRow, error) {
	return r.insGrowth, nil
}

func (r *stubRepo) InsuranceVsTransactions(ctx context.Context, year, quarter int) ([]domain.InsuranceRatioRow, error) {
	return r.insRatio, nil
}

// failingStore injects session store errors.
type failingStore struct {
	getErr error
	setErr error
}

func (f *failingStore) Get(ctx context.Context, sessionID string) (string, error) {
	return "", f.getErr
}

func (f *failingStore) Set(ctx context.Context, sessionID, state string) error { return f.setErr }

func (f *failingStore) Clear(ctx context.Context, sessionID string) error { return nil }

func testBoundary(names ...string) *domain.FeatureCollection {
	fc := &domain.FeatureCollection{Type: "FeatureCollection"}
	for _, n := range names {
		fc.Features = append(fc.Features, domain.Feature{
			Type:       "Feature",
			Geometry:   json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
			Properties: map[string]any{domain.BoundaryNameKey: n},
		})
	}
	return fc
}

func floatPtr(v float64) *float64 { return &v }

func TestPeriodCatalog(t *testing.T) {
	t.Run("built from store and cached", func(t *testing.T) {
		repo := &stubRepo{periods: []domain.Period{
			{Year: 2022, Quarter: 4},
			{Year: 2023, Quarter: 1},
			{Year: 2023, Quarter: 2},
		}}
		svc := NewPulseService(repo, testBoundary(), session.NewMemoryStore())

		catalog, err := svc.PeriodCatalog(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int{2022, 2023}, catalog.Years)
		assert.Equal(t, []int{4}, catalog.Quarters[2022])
		assert.Equal(t, []int{1, 2}, catalog.Quarters[2023])
		assert.Equal(t, domain.Period{Year: 2023, Quarter: 2}, catalog.Latest())

		repo.periods = nil
		again, err := svc.PeriodCatalog(context.Background())
		require.NoError(t, err)
		assert.Equal(t, catalog, again)
	})

	t.Run("empty store falls back to 2021", func(t *testing.T) {
		svc := NewPulseService(&stubRepo{}, testBoundary(), session.NewMemoryStore())
		catalog, err := svc.PeriodCatalog(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int{2021}, catalog.Years)
		assert.Equal(t, []int{1, 2, 3, 4}, catalog.Quarters[2021])
	})

	t.Run("error is not cached", func(t *testing.T) {
		repo := &stubRepo{periodsErr: errors.New("store down")}
		svc := NewPulseService(repo, testBoundary(), session.NewMemoryStore())
		_, err := svc.PeriodCatalog(context.Background())
		require.Error(t, err)

		repo.periodsErr = nil
		repo.periods = []domain.Period{{Year: 2021, Quarter: 3}}
		catalog, err := svc.PeriodCatalog(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int{2021}, catalog.Years)
		assert.Equal(t, []int{3}, catalog.Quarters[2021])
	})
}

func homeRepo() *stubRepo {
	return &stubRepo{
		periods: []domain.Period{{Year: 2022, Quarter: 3}, {Year: 2023, Quarter: 2}},
		stateTxnTotals: []domain.MetricRow{
			{State: "Karnataka", Value: 10},
			{State: "Orissa", Value: 30},
		},
		countryTxnKPIs: domain.TransactionKPIs{Amount: 1000.456, Count: 40},
		stateTxnKPIs:   domain.TransactionKPIs{Amount: 300, Count: 12},
		categories: []domain.CategoryRow{
			{Type: "Recharge & bill payments", Amount: 180, Count: 7},
			{Type: "Peer-to-peer payments", Amount: 120, Count: 5},
		},
		amountSeries: []domain.SeriesPoint{
			{Year: 2022, Quarter: 3, Value: 9, Period: "2022-Q3"},
			{Year: 2023, Quarter: 2, Value: 30, Period: "2023-Q2"},
		},
		txnStates:    []string{"Goa", "Karnataka", "Orissa"},
		topGeo:       []domain.GeoEntityRow{{Name: "Cuttack", Transactions: 5, Amount: 100}},
		txnDistricts: []string{"Cuttack", "Puri"},
		txnPincodes:  []string{"751001"},
	}
}

func TestHomeTransactionsView(t *testing.T) {
	repo := homeRepo()
	svc := NewPulseService(repo, testBoundary("Odisha", "Karnataka", "Goa"), session.NewMemoryStore())

	view, err := svc.Home(context.Background(), HomeParams{})
	require.NoError(t, err)

	assert.Equal(t, domain.ViewTransactions, view.View)
	assert.Equal(t, 2023, view.Year)
	assert.Equal(t, 2, view.Quarter)

	require.NotNil(t, view.Map)
	assert.Empty(t, view.MapNote)
	assert.Equal(t, "3D Map — Total Payment Value • Q2 2023", view.Map.Title)
	assert.Equal(t, "GeoJsonLayer", view.Map.Layer.Type)
	assert.Equal(t, "india-states", view.Map.Layer.ID)
	require.NotNil(t, view.Map.Layer.Data)
	assert.Len(t, view.Map.Layer.Data.Features, 3)
	assert.Equal(t, 22.7, view.Map.ViewState.Latitude)
	assert.Equal(t, 3.6, view.Map.ViewState.Zoom)

	require.NotNil(t, view.CountryTransactions)
	assert.Equal(t, 1000.456, view.CountryTransactions.Amount)
	assert.Equal(t, int64(40), view.CountryTransactions.Count)
	assert.Equal(t, 25.01, view.CountryTransactions.AvgTransactionValue)
	assert.Nil(t, view.CountryUsers)

	assert.Equal(t, []string{"Goa", "Karnataka", "Orissa"}, view.States)
	assert.Equal(t, "Orissa", view.ActiveState)

	require.NotNil(t, view.StateTransactions)
	assert.Nil(t, view.StateUsers)
	drill := view.StateTransactions
	assert.Equal(t, repo.stateTxnKPIs, drill.KPIs)
	require.NotNil(t, drill.CategoryChart)
	assert.Equal(t, []string{"Recharge & bill payments", "Peer-to-peer payments"}, drill.CategoryChart.Labels)
	assert.Equal(t, []float64{180, 120}, drill.CategoryChart.Values)
	require.NotNil(t, drill.AmountTrend)
	assert.Equal(t, []string{"2022-Q3", "2023-Q2"}, drill.AmountTrend.Labels)
	assert.True(t, drill.AmountTrend.Markers)
	assert.Equal(t, []string{"Cuttack", "Puri"}, drill.Districts)
	assert.Equal(t, []string{"751001"}, drill.Pincodes)

	assert.Equal(t, "Orissa", repo.gotAmountSeries)
	assert.ElementsMatch(t, []geoCall{
		{state: "Orissa", entity: domain.EntityDistrict, limit: 10},
		{state: "Orissa", entity: domain.EntityPincode, limit: 10},
	}, repo.gotGeoEntities)
}

func TestHomeUsersView(t *testing.T) {
	repo := homeRepo()
	repo.stateUserTotals = []domain.MetricRow{{State: "Karnataka", Value: 50}}
	repo.countryUserKPIs = domain.UserKPIs{RegisteredUsers: 200, AppOpens: 900}
	repo.stateUserKPIs = domain.UserKPIs{RegisteredUsers: 80, AppOpens: 400}
	repo.districtUsers = []domain.DistrictUsersRow{{District: "Mysuru", Users: 40, AppOpens: 160}}
	repo.pincodeUsers = []domain.PincodeUsersRow{{Pincode: "560001", Users: 9}}
	repo.userDistricts = []string{"Mysuru"}
	repo.userPincodes = []string{"560001"}
	svc := NewPulseService(repo, testBoundary("Karnataka"), session.NewMemoryStore())

	view, err := svc.Home(context.Background(), HomeParams{View: domain.ViewUsers})
	require.NoError(t, err)

	assert.Equal(t, domain.ViewUsers, view.View)
	require.NotNil(t, view.Map)
	assert.Equal(t, "3D Map — Registered Users • Q2 2023", view.Map.Title)

	require.NotNil(t, view.CountryUsers)
	assert.Equal(t, int64(200), view.CountryUsers.RegisteredUsers)
	assert.Equal(t, 4.5, view.CountryUsers.AvgOpensPerUser)
	assert.Nil(t, view.CountryTransactions)

	assert.Equal(t, "Karnataka", view.ActiveState)
	require.NotNil(t, view.StateUsers)
	assert.Nil(t, view.StateTransactions)
	assert.Equal(t, repo.stateUserKPIs, view.StateUsers.KPIs)
	assert.Equal(t, []domain.DistrictUsersRow{{District: "Mysuru", Users: 40, AppOpens: 160}}, view.StateUsers.TopDistricts)
	assert.Equal(t, "Karnataka", repo.gotDistrictUsers)
	assert.Equal(t, 25, repo.gotDistrictLimit)
}

func TestHomeEmptyPeriod(t *testing.T) {
	repo := &stubRepo{periods: []domain.Period{{Year: 2023, Quarter: 1}}}
	svc := NewPulseService(repo, testBoundary("Goa"), session.NewMemoryStore())

	view, err := svc.Home(context.Background(), HomeParams{})
	require.NoError(t, err)

	assert.Nil(t, view.Map)
	assert.Equal(t, "No data for selected period.", view.MapNote)
	assert.Empty(t, view.ActiveState)
	assert.Nil(t, view.StateTransactions)
	require.NotNil(t, view.CountryTransactions)
	assert.Zero(t, view.CountryTransactions.Amount)
	assert.Zero(t, view.CountryTransactions.AvgTransactionValue)
}

func TestHomeActiveState(t *testing.T) {
	t.Run("request state overrides session", func(t *testing.T) {
		repo := homeRepo()
		store := session.NewMemoryStore()
		require.NoError(t, store.Set(context.Background(), "sid", "Karnataka"))
		svc := NewPulseService(repo, testBoundary("Odisha"), store)

		view, err := svc.Home(context.Background(), HomeParams{State: "Goa", SessionID: "sid"})
		require.NoError(t, err)
		assert.Equal(t, "Goa", view.ActiveState)
	})

	t.Run("session state preferred over metric leader", func(t *testing.T) {
		repo := homeRepo()
		store := session.NewMemoryStore()
		require.NoError(t, store.Set(context.Background(), "sid", "Karnataka"))
		svc := NewPulseService(repo, testBoundary("Odisha"), store)

		view, err := svc.Home(context.Background(), HomeParams{SessionID: "sid"})
		require.NoError(t, err)
		assert.Equal(t, "Karnataka", view.ActiveState)
	})

	t.Run("unlisted session state falls back to leader", func(t *testing.T) {
		repo := homeRepo()
		store := session.NewMemoryStore()
		require.NoError(t, store.Set(context.Background(), "sid", "Pondicherry"))
		svc := NewPulseService(repo, testBoundary("Odisha"), store)

		view, err := svc.Home(context.Background(), HomeParams{SessionID: "sid"})
		require.NoError(t, err)
		assert.Equal(t, "Orissa", view.ActiveState)
	})

	t.Run("metric tie breaks alphabetically", func(t *testing.T) {
		repo := homeRepo()
		repo.stateTxnTotals = []domain.MetricRow{
			{State: "Karnataka", Value: 30},
			{State: "Goa", Value: 30},
		}
		svc := NewPulseService(repo, testBoundary("Goa"), session.NewMemoryStore())

		view, err := svc.Home(context.Background(), HomeParams{})
		require.NoError(t, err)
		assert.Equal(t, "Goa", view.ActiveState)
	})

	t.Run("unlisted leader falls back to first state", func(t *testing.T) {
		repo := homeRepo()
		repo.stateTxnTotals = []domain.MetricRow{{State: "Delhi", Value: 99}}
		svc := NewPulseService(repo, testBoundary("Delhi"), session.NewMemoryStore())

		view, err := svc.Home(context.Background(), HomeParams{})
		require.NoError(t, err)
		assert.Equal(t, "Goa", view.ActiveState)
	})

	t.Run("session read failure degrades to leader", func(t *testing.T) {
		repo := homeRepo()
		svc := NewPulseService(repo, testBoundary("Odisha"), &failingStore{getErr: errors.New("redis down")})

		view, err := svc.Home(context.Background(), HomeParams{SessionID: "sid"})
		require.NoError(t, err)
		assert.Equal(t, "Orissa", view.ActiveState)
	})
}

func TestHomeQueryFailureAborts(t *testing.T) {
	repo := homeRepo()
	repo.stateTxnTotalsErr = errors.New("relation does not exist")
	svc := NewPulseService(repo, testBoundary(), session.NewMemoryStore())

	_, err := svc.Home(context.Background(), HomeParams{})
	require.Error(t, err)

	repo = homeRepo()
	repo.categoriesErr = errors.New("connection reset")
	svc = NewPulseService(repo, testBoundary("Odisha"), session.NewMemoryStore())

	_, err = svc.Home(context.Background(), HomeParams{})
	require.Error(t, err)
}

func TestResolveSelection(t *testing.T) {
	clickEvent := json.RawMessage(`{"selection":{"objects":[{"object":{"properties":{"ST_NM":"Odisha"}}}]}}`)

	t.Run("click stores canonical state", func(t *testing.T) {
		store := session.NewMemoryStore()
		svc := NewPulseService(&stubRepo{}, testBoundary(), store)

		resp, err := svc.ResolveSelection(context.Background(), domain.SelectionRequest{
			SessionID: "abc",
			Event:     clickEvent,
		})
		require.NoError(t, err)
		assert.Equal(t, "abc", resp.SessionID)
		require.NotNil(t, resp.State)
		assert.Equal(t, "Orissa", *resp.State)

		saved, err := store.Get(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "Orissa", saved)
	})

	t.Run("missing session id mints one", func(t *testing.T) {
		store := session.NewMemoryStore()
		svc := NewPulseService(&stubRepo{}, testBoundary(), store)

		resp, err := svc.ResolveSelection(context.Background(), domain.SelectionRequest{Event: clickEvent})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.SessionID)

		saved, err := store.Get(context.Background(), resp.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "Orissa", saved)
	})

	t.Run("malformed event is not an error", func(t *testing.T) {
		store := session.NewMemoryStore()
		svc := NewPulseService(&stubRepo{}, testBoundary(), store)

		resp, err := svc.ResolveSelection(context.Background(), domain.SelectionRequest{
			SessionID: "abc",
			Event:     json.RawMessage(`{"nothing":"here"}`),
		})
		require.NoError(t, err)
		assert.Nil(t, resp.State)

		saved, err := store.Get(context.Background(), "abc")
		require.NoError(t, err)
		assert.Empty(t, saved)
	})

	t.Run("store write failure surfaces", func(t *testing.T) {
		svc := NewPulseService(&stubRepo{}, testBoundary(), &failingStore{setErr: errors.New("redis down")})

		_, err := svc.ResolveSelection(context.Background(), domain.SelectionRequest{Event: clickEvent})
		require.Error(t, err)
	})
}

func TestClearSelection(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "sid", "Goa"))
	svc := NewPulseService(&stubRepo{}, testBoundary(), store)

	require.NoError(t, svc.ClearSelection(context.Background(), "sid"))
	saved, err := store.Get(context.Background(), "sid")
	require.NoError(t, err)
	assert.Empty(t, saved)

	assert.NoError(t, svc.ClearSelection(context.Background(), ""))
}

func TestHealthPassthrough(t *testing.T) {
	svc := NewPulseService(&stubRepo{}, testBoundary(), session.NewMemoryStore())
	assert.NoError(t, svc.Health(context.Background()))

	svc = NewPulseService(&stubRepo{healthErr: errors.New("down")}, testBoundary(), session.NewMemoryStore())
	assert.Error(t, svc.Health(context.Background()))
}
