package domain

// UserKPIs are the registration headline figures for a scope in a period.
type UserKPIs struct {
	RegisteredUsers int64 `json:"registered_users"`
	AppOpens        int64 `json:"app_opens"`
}

// BrandRow aggregates registrations by device brand.
type BrandRow struct {
	Brand       string  `json:"brand"`
	Users       int64   `json:"users"`
	AvgSharePct float64 `json:"avg_share_pct"`
}

// EngagementRow relates app opens to registered users per state.
// OpensPerUser is nil where a state has no registered users.
type EngagementRow struct {
	State           string   `json:"state"`
	RegisteredUsers int64    `json:"reg_users"`
	AppOpens        int64    `json:"app_opens"`
	OpensPerUser    *float64 `json:"opens_per_user"`
}

// StateBrandRow names the dominant device brand in a state.
type StateBrandRow struct {
	State string `json:"state"`
	Brand string `json:"top_brand"`
	Users int64  `json:"top_brand_users"`
}

// BrandSeriesPoint is one quarter of a brand's registration series.
type BrandSeriesPoint struct {
	Year    int    `json:"year"`
	Quarter int    `json:"quarter"`
	Users   int64  `json:"users"`
	Period  string `json:"period"`
}

// BrandShareRow relates one brand's registration share to engagement per
// state.
type BrandShareRow struct {
	State        string   `json:"state"`
	SharePct     float64  `json:"brand_share_pct"`
	OpensPerUser *float64 `json:"opens_per_user"`
}

// DistrictUsersRow ranks districts by registered users within a state.
type DistrictUsersRow struct {
	District string `json:"district"`
	Users    int64  `json:"users"`
	AppOpens int64  `json:"app_opens"`
}

// PincodeUsersRow ranks pincodes by registered users. State is empty when
// the query is already scoped to one state.
type PincodeUsersRow struct {
	Pincode string `json:"pincode"`
	State   string `json:"state,omitempty"`
	Users   int64  `json:"users"`
}
