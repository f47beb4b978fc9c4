package domain

// ViewKind selects which metric family the home screen shows.
type ViewKind string

const (
	ViewTransactions ViewKind = "transactions"
	ViewUsers        ViewKind = "users"
)

// PanelKind tells the presentation layer how to render a panel. The service
// never draws anything; it only emits these declarative descriptions.
type PanelKind string

const (
	PanelChoropleth PanelKind = "choropleth"
	PanelPie        PanelKind = "pie"
	PanelBar        PanelKind = "bar"
	PanelLine       PanelKind = "line"
	PanelTable      PanelKind = "table"
)

// ChartSeries is the label/value pairing behind a pie, bar, or line panel.
type ChartSeries struct {
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"values"`
	Hole    float64   `json:"hole,omitempty"`
	Markers bool      `json:"markers,omitempty"`
}

// Choropleth colors boundary regions by value. Locations carry boundary
// names matched against the feature property named by FeatureIDKey.
type Choropleth struct {
	FeatureIDKey string    `json:"featureidkey"`
	Locations    []string  `json:"locations"`
	Values       []float64 `json:"values"`
	ColorScale   string    `json:"color_scale"`
}

// Panel is one rendered unit of a view: exactly one of Chart, Choropleth, or
// Rows is populated according to Kind. Rows carries the typed table slice.
type Panel struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Kind       PanelKind    `json:"kind"`
	Chart      *ChartSeries `json:"chart,omitempty"`
	Choropleth *Choropleth  `json:"choropleth,omitempty"`
	Rows       any          `json:"rows,omitempty"`
}

// MapViewState positions the camera over the country.
type MapViewState struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Bearing   float64 `json:"bearing"`
	Pitch     float64 `json:"pitch"`
}

// MapLayerSpec describes the extruded region layer the way the deck widget
// consumes it: enriched features plus property accessors.
type MapLayerSpec struct {
	Type               string             `json:"type"`
	ID                 string             `json:"id"`
	Data               *FeatureCollection `json:"data"`
	Pickable           bool               `json:"pickable"`
	AutoHighlight      bool               `json:"auto_highlight"`
	Extruded           bool               `json:"extruded"`
	Stroked            bool               `json:"stroked"`
	Filled             bool               `json:"filled"`
	GetElevation       string             `json:"get_elevation"`
	GetFillColor       string             `json:"get_fill_color"`
	GetLineColor       [3]int             `json:"get_line_color"`
	LineWidthMinPixels int                `json:"line_width_min_pixels"`
}

// MapPayload is the clickable overview map for the home screen.
type MapPayload struct {
	Title     string       `json:"title"`
	Layer     MapLayerSpec `json:"layer"`
	ViewState MapViewState `json:"view_state"`
	Tooltip   string       `json:"tooltip"`
}

// HomeStateTransactions is the state drilldown for the transactions view.
// AmountTrend charts the state's payment amount per quarter over all years.
type HomeStateTransactions struct {
	KPIs          TransactionKPIs `json:"kpis"`
	Categories    []CategoryRow   `json:"categories"`
	CategoryChart *ChartSeries    `json:"category_chart,omitempty"`
	AmountTrend   *ChartSeries    `json:"amount_trend,omitempty"`
	Districts     []string        `json:"districts"`
	Pincodes      []string        `json:"pincodes"`
	TopDistricts  []GeoEntityRow  `json:"top_districts"`
	TopPincodes   []GeoEntityRow  `json:"top_pincodes"`
}

// HomeStateUsers is the state drilldown for the users view.
type HomeStateUsers struct {
	KPIs         UserKPIs           `json:"kpis"`
	Districts    []string           `json:"districts"`
	Pincodes     []string           `json:"pincodes"`
	TopDistricts []DistrictUsersRow `json:"top_districts"`
	TopPincodes  []PincodeUsersRow  `json:"top_pincodes"`
}

// HomeCountryTransactions is the country KPI panel for the transactions
// view. AvgTransactionValue is amount over count, zero when count is zero.
type HomeCountryTransactions struct {
	TransactionKPIs
	AvgTransactionValue float64 `json:"avg_transaction_value"`
}

// HomeCountryUsers is the country KPI panel for the users view.
// AvgOpensPerUser is opens over users, zero when users is zero.
type HomeCountryUsers struct {
	UserKPIs
	AvgOpensPerUser float64 `json:"avg_opens_per_user"`
}

// HomeView is one full render pass of the home screen.
type HomeView struct {
	View                ViewKind                 `json:"view"`
	Year                int                      `json:"year"`
	Quarter             int                      `json:"quarter"`
	Map                 *MapPayload              `json:"map,omitempty"`
	MapNote             string                   `json:"map_note,omitempty"`
	CountryTransactions *HomeCountryTransactions `json:"country_transactions,omitempty"`
	CountryUsers        *HomeCountryUsers        `json:"country_users,omitempty"`
	States              []string                 `json:"states"`
	ActiveState         string                   `json:"active_state,omitempty"`
	StateTransactions   *HomeStateTransactions   `json:"state_transactions,omitempty"`
	StateUsers          *HomeStateUsers          `json:"state_users,omitempty"`
}

// CaseStudyInfo describes one report in the case-study catalog.
type CaseStudyInfo struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// CaseStudyView is one rendered case-study report: a fixed sequence of
// panels for the chosen period. Message is set instead of panels when the
// report has no usable period.
type CaseStudyView struct {
	Slug    string  `json:"slug"`
	Title   string  `json:"title"`
	Period  *Period `json:"period,omitempty"`
	Message string  `json:"message,omitempty"`
	Panels  []Panel `json:"panels"`
}
