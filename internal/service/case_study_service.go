package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/paypulse/backend/internal/domain"
	"github.com/paypulse/backend/internal/geo"
)

var caseStudyCatalog = []domain.CaseStudyInfo{
	{Slug: "transaction-dynamics", Title: "Decoding Transaction Dynamics"},
	{Slug: "device-engagement", Title: "Device Dominance & Engagement"},
	{Slug: "insurance-growth", Title: "Insurance Penetration & Growth"},
	{Slug: "geography", Title: "Transaction Analysis Across Geographies"},
	{Slug: "user-registration", Title: "User Registration Analysis"},
}

// CaseStudies lists the report catalog in display order.
func (s *PulseService) CaseStudies() []domain.CaseStudyInfo {
	out := make([]domain.CaseStudyInfo, len(caseStudyCatalog))
	copy(out, caseStudyCatalog)
	return out
}

// CaseStudyParams narrows one report. Zero Year or Quarter means the
// latest available period. State, Brand, and TrendState override the
// first-entry default of the matching report picker; an override not
// listed for the period falls back to that default.
type CaseStudyParams struct {
	Year       int
	Quarter    int
	State      string
	Brand      string
	TrendState string
}

// CaseStudy renders one report. The device report picks its own period and
// ignores the year and quarter arguments.
func (s *PulseService) CaseStudy(ctx context.Context, slug string, params CaseStudyParams) (domain.CaseStudyView, error) {
	period, err := s.resolvePeriod(ctx, params.Year, params.Quarter)
	if err != nil {
		return domain.CaseStudyView{}, err
	}
	switch slug {
	case "transaction-dynamics":
		return s.transactionDynamics(ctx, period, params.State)
	case "device-engagement":
		return s.deviceEngagement(ctx, params.Brand)
	case "insurance-growth":
		return s.insuranceGrowth(ctx, period, params.State)
	case "geography":
		return s.transactionGeography(ctx, period, params.State)
	case "user-registration":
		return s.userRegistration(ctx, period, params.State, params.TrendState)
	default:
		return domain.CaseStudyView{}, ErrUnknownCaseStudy
	}
}

func caseStudyShell(slug string, p *domain.Period) domain.CaseStudyView {
	view := domain.CaseStudyView{Slug: slug, Period: p}
	for _, cs := range caseStudyCatalog {
		if cs.Slug == slug {
			view.Title = cs.Title
			break
		}
	}
	return view
}

// pickOption mirrors a dropdown: an override counts only when listed,
// otherwise the first entry is picked.
func pickOption(options []string, override string) string {
	if override != "" && containsName(options, override) {
		return override
	}
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

// tableRows keeps table panels rendering as [] rather than null.
func tableRows[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// stateChoropleth maps store state names onto boundary regions; rows whose
// name has no boundary spelling are dropped.
func stateChoropleth(rows []domain.MetricRow, scale string) *domain.Choropleth {
	ch := &domain.Choropleth{
		FeatureIDKey: "properties." + domain.BoundaryNameKey,
		ColorScale:   scale,
	}
	for _, r := range rows {
		name := geo.ToBoundaryName(r.State)
		if name == "" {
			continue
		}
		ch.Locations = append(ch.Locations, name)
		ch.Values = append(ch.Values, r.Value)
	}
	return ch
}

func seriesFromCategories(values []domain.CategoryValue) *domain.ChartSeries {
	if len(values) == 0 {
		return nil
	}
	chart := &domain.ChartSeries{}
	for _, v := range values {
		chart.Labels = append(chart.Labels, v.Type)
		chart.Values = append(chart.Values, v.Value)
	}
	return chart
}

func seriesFromMetricRows(rows []domain.MetricRow) *domain.ChartSeries {
	if len(rows) == 0 {
		return nil
	}
	chart := &domain.ChartSeries{}
	for _, r := range rows {
		chart.Labels = append(chart.Labels, r.State)
		chart.Values = append(chart.Values, r.Value)
	}
	return chart
}

func seriesFromEngagement(rows []domain.EngagementRow) *domain.ChartSeries {
	if len(rows) == 0 {
		return nil
	}
	chart := &domain.ChartSeries{}
	for _, e := range rows {
		var opens float64
		if e.OpensPerUser != nil {
			opens = *e.OpensPerUser
		}
		chart.Labels = append(chart.Labels, e.State)
		chart.Values = append(chart.Values, opens)
	}
	return chart
}

func (s *PulseService) transactionDynamics(ctx context.Context, p domain.Period, stateOverride string) (domain.CaseStudyView, error) {
	var (
		totals    []domain.MetricRow
		byCount   []domain.CategoryValue
		byAmount  []domain.CategoryValue
		topStates []domain.MetricRow
		states    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.StateTransactionTotals(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		byCount, err = s.repo.CategoryCountTotals(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		byAmount, err = s.repo.CategoryAmountTotals(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		topStates, err = s.repo.TopStatesByAmount(gctx, p.Year, p.Quarter, 10)
		return err
	})
	g.Go(func() error {
		var err error
		states, err = s.repo.TransactionStates(gctx, p.Year, p.Quarter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CaseStudyView{}, err
	}

	pick := pickOption(states, stateOverride)
	var stateCategories []domain.CategoryValue
	if pick != "" {
		var err error
		stateCategories, err = s.repo.CategoryAmountsForState(ctx, pick, p.Year, p.Quarter)
		if err != nil {
			return domain.CaseStudyView{}, err
		}
	}

	countPie := seriesFromCategories(byCount)
	if countPie != nil {
		countPie.Hole = 0.4
	}
	amountPie := seriesFromCategories(byAmount)
	if amountPie != nil {
		amountPie.Hole = 0.4
	}
	stateLine := seriesFromCategories(stateCategories)
	if stateLine != nil {
		stateLine.Markers = true
	}

	view := caseStudyShell("transaction-dynamics", &p)
	view.Panels = []domain.Panel{
		{
			ID:         "amount-choropleth",
			Title:      fmt.Sprintf("Total Transaction Amount — Q%d %d", p.Quarter, p.Year),
			Kind:       domain.PanelChoropleth,
			Choropleth: stateChoropleth(totals, "Blues"),
		},
		{
			ID:    "category-count-pie",
			Title: "Category Popularity by Count",
			Kind:  domain.PanelPie,
			Chart: countPie,
		},
		{
			ID:    "category-amount-pie",
			Title: "Category Popularity by Amount",
			Kind:  domain.PanelPie,
			Chart: amountPie,
		},
		{
			ID:    "top-states-bar",
			Title: "Top 10 States by Transaction Amount",
			Kind:  domain.PanelBar,
			Chart: seriesFromMetricRows(topStates),
		},
		{
			ID:    "state-category-line",
			Title: titleForState("Transactions by Category", pick),
			Kind:  domain.PanelLine,
			Chart: stateLine,
		},
	}
	return view, nil
}

func (s *PulseService) deviceEngagement(ctx context.Context, brandOverride string) (domain.CaseStudyView, error) {
	view := caseStudyShell("device-engagement", nil)
	period, ok, err := s.repo.LatestCommonUserPeriod(ctx)
	if err != nil {
		return domain.CaseStudyView{}, err
	}
	if !ok {
		view.Message = "No overlapping period between aggregated_user and map_user. Load data for both tables."
		return view, nil
	}
	view.Period = &period

	var (
		brandTotals []domain.BrandRow
		engagement  []domain.EngagementRow
		topBrands   []domain.StateBrandRow
		brands      []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		brandTotals, err = s.repo.BrandTotals(gctx, period.Year, period.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		engagement, err = s.repo.EngagementByState(gctx, period.Year, period.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		topBrands, err = s.repo.TopBrandPerState(gctx, period.Year, period.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		brands, err = s.repo.Brands(gctx, period.Year, period.Quarter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CaseStudyView{}, err
	}

	pick := pickOption(brands, brandOverride)
	var (
		series []domain.BrandSeriesPoint
		share  []domain.BrandShareRow
	)
	if pick != "" {
		g2, g2ctx := errgroup.WithContext(ctx)
		g2.Go(func() error {
			var err error
			series, err = s.repo.BrandSeries(g2ctx, pick)
			return err
		})
		g2.Go(func() error {
			var err error
			share, err = s.repo.BrandShareByState(g2ctx, pick, period.Year, period.Quarter)
			return err
		})
		if err := g2.Wait(); err != nil {
			return domain.CaseStudyView{}, err
		}
	}

	var brandBar *domain.ChartSeries
	if len(brandTotals) > 0 {
		brandBar = &domain.ChartSeries{}
		for _, b := range brandTotals {
			brandBar.Labels = append(brandBar.Labels, b.Brand)
			brandBar.Values = append(brandBar.Values, float64(b.Users))
		}
	}
	topEngagement := engagement
	if len(topEngagement) > 20 {
		topEngagement = topEngagement[:20]
	}
	var seriesLine *domain.ChartSeries
	if len(series) > 0 {
		seriesLine = &domain.ChartSeries{Markers: true}
		for _, pt := range series {
			seriesLine.Labels = append(seriesLine.Labels, pt.Period)
			seriesLine.Values = append(seriesLine.Values, float64(pt.Users))
		}
	}

	view.Panels = []domain.Panel{
		{
			ID:    "brand-users-bar",
			Title: "Users by Device Brand",
			Kind:  domain.PanelBar,
			Chart: brandBar,
		},
		{
			ID:    "engagement-bar",
			Title: "App Opens per Registered User (Top 20 States)",
			Kind:  domain.PanelBar,
			Chart: seriesFromEngagement(topEngagement),
		},
		{
			ID:    "top-brand-table",
			Title: "Top Brand per State",
			Kind:  domain.PanelTable,
			Rows:  tableRows(topBrands),
		},
		{
			ID:    "brand-series-line",
			Title: titleForState("Brand Users over Time", pick),
			Kind:  domain.PanelLine,
			Chart: seriesLine,
		},
		{
			ID:    "brand-share-table",
			Title: titleForState("Brand Share vs Engagement by State", pick),
			Kind:  domain.PanelTable,
			Rows:  tableRows(share),
		},
	}
	if len(share) > 0 {
		ch := &domain.Choropleth{
			FeatureIDKey: "properties." + domain.BoundaryNameKey,
			ColorScale:   "Blues",
		}
		for _, r := range share {
			name := geo.ToBoundaryName(r.State)
			if name == "" {
				continue
			}
			ch.Locations = append(ch.Locations, name)
			ch.Values = append(ch.Values, r.SharePct)
		}
		view.Panels = append(view.Panels, domain.Panel{
			ID:         "brand-share-choropleth",
			Title:      fmt.Sprintf("%s — Share of Registrations (%%)", pick),
			Kind:       domain.PanelChoropleth,
			Choropleth: ch,
		})
	}
	return view, nil
}

func (s *PulseService) insuranceGrowth(ctx context.Context, p domain.Period, stateOverride string) (domain.CaseStudyView, error) {
	var (
		totals    []domain.MetricRow
		typeShare []domain.InsuranceTypeValue
		states    []string
		yoy       []domain.GrowthRow
		ratio     []domain.InsuranceRatioRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.StateInsuranceTotals(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		typeShare, err = s.repo.InsuranceTypeShare(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		states, err = s.repo.InsuranceStates(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		yoy, err = s.repo.InsuranceYoY(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		ratio, err = s.repo.InsuranceVsTransactions(gctx, p.Year, p.Quarter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CaseStudyView{}, err
	}

	pick := pickOption(states, stateOverride)
	var districts []domain.DistrictInsuranceRow
	if pick != "" {
		var err error
		districts, err = s.repo.TopDistrictsByInsurance(ctx, pick, p.Year, p.Quarter, 20)
		if err != nil {
			return domain.CaseStudyView{}, err
		}
	}

	var typePie *domain.ChartSeries
	if len(typeShare) > 0 {
		typePie = &domain.ChartSeries{Hole: 0.4}
		for _, t := range typeShare {
			typePie.Labels = append(typePie.Labels, t.Type)
			typePie.Values = append(typePie.Values, t.Amount)
		}
	}
	var districtBar *domain.ChartSeries
	if len(districts) > 0 {
		districtBar = &domain.ChartSeries{}
		for _, d := range districts {
			districtBar.Labels = append(districtBar.Labels, d.District)
			districtBar.Values = append(districtBar.Values, d.Amount)
		}
	}

	view := caseStudyShell("insurance-growth", &p)
	view.Panels = []domain.Panel{
		{
			ID:         "insurance-choropleth",
			Title:      fmt.Sprintf("Insurance Amount — Q%d %d", p.Quarter, p.Year),
			Kind:       domain.PanelChoropleth,
			Choropleth: stateChoropleth(totals, "Purples"),
		},
		{
			ID:    "insurance-type-pie",
			Title: "Premium Share by Insurance Type",
			Kind:  domain.PanelPie,
			Chart: typePie,
		},
		{
			ID:    "insurance-districts-bar",
			Title: titleForState("Top Districts by Insurance Amount", pick),
			Kind:  domain.PanelBar,
			Chart: districtBar,
		},
		{
			ID:    "insurance-yoy-table",
			Title: "Insurance Year-over-Year Growth by State",
			Kind:  domain.PanelTable,
			Rows:  tableRows(yoy),
		},
		{
			ID:    "insurance-ratio-table",
			Title: "Insurance vs Transaction Amount by State",
			Kind:  domain.PanelTable,
			Rows:  tableRows(ratio),
		},
	}
	return view, nil
}

func (s *PulseService) transactionGeography(ctx context.Context, p domain.Period, stateOverride string) (domain.CaseStudyView, error) {
	var (
		topDistricts []domain.GeoEntityRow
		topPincodes  []domain.GeoEntityRow
		topStates    []domain.GeoEntityRow
		states       []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		topDistricts, err = s.repo.TopGeoEntitiesCountry(gctx, p.Year, p.Quarter, domain.EntityDistrict, 25)
		return err
	})
	g.Go(func() error {
		var err error
		topPincodes, err = s.repo.TopGeoEntitiesCountry(gctx, p.Year, p.Quarter, domain.EntityPincode, 25)
		return err
	})
	g.Go(func() error {
		var err error
		topStates, err = s.repo.TopStateEntities(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		states, err = s.repo.GeoStates(gctx, p.Year, p.Quarter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CaseStudyView{}, err
	}

	pick := pickOption(states, stateOverride)
	var (
		share []domain.ShareRow
		yoy   []domain.GrowthRow
	)
	if pick != "" {
		g2, g2ctx := errgroup.WithContext(ctx)
		g2.Go(func() error {
			var err error
			share, err = s.repo.DistrictShare(g2ctx, pick, p.Year, p.Quarter)
			return err
		})
		g2.Go(func() error {
			var err error
			yoy, err = s.repo.DistrictYoY(g2ctx, pick, p.Year, p.Quarter)
			return err
		})
		if err := g2.Wait(); err != nil {
			return domain.CaseStudyView{}, err
		}
	}

	ranked := topStates
	if len(ranked) > 15 {
		ranked = ranked[:15]
	}
	var stateBar *domain.ChartSeries
	if len(ranked) > 0 {
		stateBar = &domain.ChartSeries{}
		for _, r := range ranked {
			stateBar.Labels = append(stateBar.Labels, r.Name)
			stateBar.Values = append(stateBar.Values, r.Amount)
		}
	}

	view := caseStudyShell("geography", &p)
	view.Panels = []domain.Panel{
		{
			ID:    "top-districts-table",
			Title: "Top 25 Districts by Transaction Amount",
			Kind:  domain.PanelTable,
			Rows:  tableRows(topDistricts),
		},
		{
			ID:    "top-pincodes-table",
			Title: "Top 25 Pincodes by Transaction Amount",
			Kind:  domain.PanelTable,
			Rows:  tableRows(topPincodes),
		},
		{
			ID:    "top-states-bar",
			Title: "Top 15 States by Transaction Amount",
			Kind:  domain.PanelBar,
			Chart: stateBar,
		},
		{
			ID:    "district-share-table",
			Title: titleForState("District Share of State Amount", pick),
			Kind:  domain.PanelTable,
			Rows:  tableRows(share),
		},
		{
			ID:    "district-yoy-table",
			Title: titleForState("District Year-over-Year Growth", pick),
			Kind:  domain.PanelTable,
			Rows:  tableRows(yoy),
		},
	}
	return view, nil
}

func (s *PulseService) userRegistration(ctx context.Context, p domain.Period, stateOverride, trendOverride string) (domain.CaseStudyView, error) {
	var (
		totals      []domain.MetricRow
		states      []string
		topPincodes []domain.PincodeUsersRow
		engagement  []domain.EngagementRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.StateUserTotals(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		states, err = s.repo.UserStates(gctx, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		topPincodes, err = s.repo.TopPincodesByUsersCountry(gctx, p.Year, p.Quarter, 25)
		return err
	})
	g.Go(func() error {
		var err error
		engagement, err = s.repo.EngagementByState(gctx, p.Year, p.Quarter)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CaseStudyView{}, err
	}

	pick := pickOption(states, stateOverride)
	trendPick := pickOption(states, trendOverride)
	var (
		districts []domain.DistrictUsersRow
		trend     []domain.SeriesPoint
	)
	g2, g2ctx := errgroup.WithContext(ctx)
	if pick != "" {
		g2.Go(func() error {
			var err error
			districts, err = s.repo.TopDistrictsByUsers(g2ctx, pick, p.Year, p.Quarter, 25)
			return err
		})
	}
	if trendPick != "" {
		g2.Go(func() error {
			var err error
			trend, err = s.repo.StateUserTrend(g2ctx, trendPick)
			return err
		})
	}
	if err := g2.Wait(); err != nil {
		return domain.CaseStudyView{}, err
	}

	var districtBar *domain.ChartSeries
	if len(districts) > 0 {
		districtBar = &domain.ChartSeries{}
		for _, d := range districts {
			districtBar.Labels = append(districtBar.Labels, d.District)
			districtBar.Values = append(districtBar.Values, float64(d.Users))
		}
	}
	var trendBar *domain.ChartSeries
	if len(trend) > 0 {
		trendBar = &domain.ChartSeries{}
		for _, pt := range trend {
			trendBar.Labels = append(trendBar.Labels, pt.Period)
			trendBar.Values = append(trendBar.Values, pt.Value)
		}
	}

	view := caseStudyShell("user-registration", &p)
	view.Panels = []domain.Panel{
		{
			ID:         "users-choropleth",
			Title:      fmt.Sprintf("Registered Users — Q%d %d", p.Quarter, p.Year),
			Kind:       domain.PanelChoropleth,
			Choropleth: stateChoropleth(totals, "Greens"),
		},
		{
			ID:    "user-districts-bar",
			Title: titleForState("Top Districts by Registered Users", pick),
			Kind:  domain.PanelBar,
			Chart: districtBar,
		},
		{
			ID:    "user-pincodes-table",
			Title: "Top 25 Pincodes by Registered Users",
			Kind:  domain.PanelTable,
			Rows:  tableRows(topPincodes),
		},
		{
			ID:    "engagement-bar",
			Title: "App Opens per Registered User by State",
			Kind:  domain.PanelBar,
			Chart: seriesFromEngagement(engagement),
		},
		{
			ID:    "user-trend-bar",
			Title: titleForState("Registered Users per Quarter", trendPick),
			Kind:  domain.PanelBar,
			Chart: trendBar,
		},
	}
	return view, nil
}

// titleForState appends the picked region to a panel title, leaving the
// base title alone when nothing could be picked.
func titleForState(base, pick string) string {
	if pick == "" {
		return base
	}
	return fmt.Sprintf("%s — %s", base, pick)
}
