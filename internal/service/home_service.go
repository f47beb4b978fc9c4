package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/paypulse/backend/internal/domain"
	"github.com/paypulse/backend/internal/geo"
	"github.com/paypulse/backend/pkg/utils"
)

// HomeParams selects what one home render pass shows. Zero Year or Quarter
// means the latest available; an empty View means transactions. State, when
// set and listed for the period, overrides the session's clicked region.
type HomeParams struct {
	View      domain.ViewKind
	Year      int
	Quarter   int
	State     string
	SessionID string
}

// Home runs one full render pass of the home screen: overview map, country
// KPIs, state list, and the drilldown for the active state.
func (s *PulseService) Home(ctx context.Context, params HomeParams) (domain.HomeView, error) {
	view := params.View
	if view == "" {
		view = domain.ViewTransactions
	}
	period, err := s.resolvePeriod(ctx, params.Year, params.Quarter)
	if err != nil {
		return domain.HomeView{}, err
	}

	var (
		rows     []domain.MetricRow
		states   []string
		txnKPIs  domain.TransactionKPIs
		userKPIs domain.UserKPIs
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if view == domain.ViewUsers {
			rows, err = s.repo.StateUserTotals(gctx, period.Year, period.Quarter)
		} else {
			rows, err = s.repo.StateTransactionTotals(gctx, period.Year, period.Quarter)
		}
		return err
	})
	g.Go(func() error {
		var err error
		states, err = s.repo.TransactionStates(gctx, period.Year, period.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		if view == domain.ViewUsers {
			userKPIs, err = s.repo.CountryUserKPIs(gctx, period.Year, period.Quarter)
		} else {
			txnKPIs, err = s.repo.CountryTransactionKPIs(gctx, period.Year, period.Quarter)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.HomeView{}, err
	}

	out := domain.HomeView{
		View:    view,
		Year:    period.Year,
		Quarter: period.Quarter,
		States:  states,
	}
	if len(rows) == 0 {
		out.MapNote = "No data for selected period."
	} else {
		out.Map = s.mapPayload(view, period, rows)
	}
	if view == domain.ViewUsers {
		out.CountryUsers = &domain.HomeCountryUsers{
			UserKPIs:        userKPIs,
			AvgOpensPerUser: utils.RoundTo(utils.SafeDiv(float64(userKPIs.AppOpens), float64(userKPIs.RegisteredUsers)), 2),
		}
	} else {
		out.CountryTransactions = &domain.HomeCountryTransactions{
			TransactionKPIs:     txnKPIs,
			AvgTransactionValue: utils.RoundTo(utils.SafeDiv(txnKPIs.Amount, float64(txnKPIs.Count)), 2),
		}
	}

	out.ActiveState = s.activeState(ctx, params, rows, states)
	if out.ActiveState != "" {
		if view == domain.ViewUsers {
			drill, err := s.stateUsers(ctx, out.ActiveState, period)
			if err != nil {
				return domain.HomeView{}, err
			}
			out.StateUsers = drill
		} else {
			drill, err := s.stateTransactions(ctx, out.ActiveState, period)
			if err != nil {
				return domain.HomeView{}, err
			}
			out.StateTransactions = drill
		}
	}
	return out, nil
}

// mapPayload wraps the enriched boundary into the extruded-layer spec the
// map widget consumes.
func (s *PulseService) mapPayload(view domain.ViewKind, p domain.Period, rows []domain.MetricRow) *domain.MapPayload {
	title := fmt.Sprintf("3D Map — Total Payment Value • Q%d %d", p.Quarter, p.Year)
	if view == domain.ViewUsers {
		title = fmt.Sprintf("3D Map — Registered Users • Q%d %d", p.Quarter, p.Year)
	}
	return &domain.MapPayload{
		Title: title,
		Layer: domain.MapLayerSpec{
			Type:               "GeoJsonLayer",
			ID:                 "india-states",
			Data:               geo.BuildFeatureCollection(rows, s.boundary),
			Pickable:           true,
			AutoHighlight:      true,
			Extruded:           true,
			Stroked:            true,
			Filled:             true,
			GetElevation:       "properties.height",
			GetFillColor:       "[properties.fill_r, properties.fill_g, properties.fill_b, properties.fill_a]",
			GetLineColor:       [3]int{255, 255, 255},
			LineWidthMinPixels: 1,
		},
		ViewState: domain.MapViewState{
			Latitude:  22.7,
			Longitude: 78.9,
			Zoom:      3.6,
			Bearing:   0,
			Pitch:     35,
		},
		Tooltip: "{ST_NM}\n₹{metric_value}",
	}
}

// activeState picks the drilldown region: an explicit request state when
// listed, else the session's clicked state when still listed, else the
// state leading the metric, else the first listed state. Metric ties break
// toward the alphabetically smaller name.
func (s *PulseService) activeState(ctx context.Context, params HomeParams, rows []domain.MetricRow, states []string) string {
	if len(states) == 0 {
		return ""
	}
	if params.State != "" && containsName(states, params.State) {
		return params.State
	}
	if params.SessionID != "" {
		preferred, err := s.sessions.Get(ctx, params.SessionID)
		if err != nil {
			log.Printf("Failed to read session state: %v", err)
		} else if preferred != "" && containsName(states, preferred) {
			return preferred
		}
	}
	if top := topMetricState(rows); top != "" && containsName(states, top) {
		return top
	}
	return states[0]
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func topMetricState(rows []domain.MetricRow) string {
	var (
		best  string
		value float64
	)
	for _, r := range rows {
		if best == "" || r.Value > value || (r.Value == value && r.State < best) {
			best = r.State
			value = r.Value
		}
	}
	return best
}

func (s *PulseService) stateTransactions(ctx context.Context, state string, p domain.Period) (*domain.HomeStateTransactions, error) {
	drill := &domain.HomeStateTransactions{}
	var trend []domain.SeriesPoint
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		drill.KPIs, err = s.repo.StateTransactionKPIs(gctx, state, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		drill.Categories, err = s.repo.CategoryBreakdown(gctx, state, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = s.repo.StateAmountSeries(gctx, state)
		return err
	})
	g.Go(func() error {
		var err error
		drill.Districts, err = s.repo.TransactionDistricts(gctx, state, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		drill.Pincodes, err = s.repo.TransactionPincodes(gctx, state, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		drill.TopDistricts, err = s.repo.TopGeoEntities(gctx, state, p.Year, p.Quarter, domain.EntityDistrict, 10)
		return err
	})
	g.Go(func() error {
		var err error
		drill.TopPincodes, err = s.repo.TopGeoEntities(gctx, state, p.Year, p.Quarter, domain.EntityPincode, 10)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(drill.Categories) > 0 {
		chart := &domain.ChartSeries{}
		for _, c := range drill.Categories {
			chart.Labels = append(chart.Labels, c.Type)
			chart.Values = append(chart.Values, c.Amount)
		}
		drill.CategoryChart = chart
	}
	if len(trend) > 0 {
		chart := &domain.ChartSeries{Markers: true}
		for _, pt := range trend {
			chart.Labels = append(chart.Labels, pt.Period)
			chart.Values = append(chart.Values, pt.Value)
		}
		drill.AmountTrend = chart
	}
	return drill, nil
}

func (s *PulseService) stateUsers(ctx context.Context, state string, p domain.Period) (*domain.HomeStateUsers, error) {
	drill := &domain.HomeStateUsers{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		drill.KPIs, err = s.repo.StateUserKPIs(gctx, state, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		drill.Districts, err = s.repo.UserDistricts(gctx, state, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		drill.Pincodes, err = s.repo.UserPincodes(gctx, state, p.Year, p.Quarter)
		return err
	})
	g.Go(func() error {
		var err error
		drill.TopDistricts, err = s.repo.TopDistrictsByUsers(gctx, state, p.Year, p.Quarter, 25)
		return err
	})
	g.Go(func() error {
		var err error
		drill.TopPincodes, err = s.repo.TopPincodesByUsers(gctx, state, p.Year, p.Quarter, 25)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return drill, nil
}

// ResolveSelection decodes a map click, remembers the clicked state for the
// session, and reports it canonically. An event without a usable selection
// yields a nil state and leaves the session untouched.
func (s *PulseService) ResolveSelection(ctx context.Context, req domain.SelectionRequest) (domain.SelectionResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	resp := domain.SelectionResponse{SessionID: sessionID}
	state, ok := geo.ResolveClickedRegion(req.Event)
	if !ok {
		return resp, nil
	}
	if err := s.sessions.Set(ctx, sessionID, state); err != nil {
		return resp, err
	}
	resp.State = &state
	return resp, nil
}

// ClearSelection forgets the session's clicked region.
func (s *PulseService) ClearSelection(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Clear(ctx, sessionID)
}
