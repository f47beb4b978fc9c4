package domain

// MetricRow is one region's value for a chosen metric and period. Missing or
// non-numeric aggregates are coerced to zero before they reach this type.
type MetricRow struct {
	State string  `json:"state"`
	Value float64 `json:"value"`
}

// TransactionKPIs are the headline payment figures for a scope (country or
// one state) in a period.
type TransactionKPIs struct {
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// CategoryRow is the per-payment-category breakdown inside a state.
type CategoryRow struct {
	Type   string  `json:"transaction_type"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// CategoryValue is one payment category with a single aggregated value,
// used by the popularity pies and the per-state category line.
type CategoryValue struct {
	Type  string  `json:"transaction_type"`
	Value float64 `json:"value"`
}

// SeriesPoint is one quarter of a per-state time series.
type SeriesPoint struct {
	Year    int     `json:"year"`
	Quarter int     `json:"quarter"`
	Value   float64 `json:"value"`
	Period  string  `json:"period"`
}

// GeoEntityRow is a ranked district/pincode/state row from the top-geography
// table. State is empty when the query is already scoped to one state.
type GeoEntityRow struct {
	Name         string  `json:"name"`
	State        string  `json:"state,omitempty"`
	Transactions int64   `json:"transactions"`
	Amount       float64 `json:"amount"`
}

// ShareRow is a district's share of its state's payment amount. SharePct is
// nil when the state total is zero.
type ShareRow struct {
	District string   `json:"district"`
	Amount   float64  `json:"amount"`
	SharePct *float64 `json:"share_pct"`
}

// GrowthRow compares a region or district against the same quarter one year
// earlier. Previous and GrowthPct are nil when no prior-year row exists or
// the base is zero.
type GrowthRow struct {
	Name      string   `json:"name"`
	Current   float64  `json:"current_amount"`
	Previous  *float64 `json:"previous_amount"`
	GrowthPct *float64 `json:"yoy_pct"`
}
