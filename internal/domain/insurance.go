package domain

// InsuranceTypeValue aggregates premium amount by insurance product type.
type InsuranceTypeValue struct {
	Type   string  `json:"insurance_type"`
	Amount float64 `json:"amount"`
}

// DistrictInsuranceRow ranks districts by insurance premium within a state.
type DistrictInsuranceRow struct {
	District string  `json:"district"`
	Amount   float64 `json:"amount"`
	Count    int64   `json:"count"`
}

// InsuranceRatioRow relates a state's insurance premium to its payment
// volume. Either amount is nil when that side has no rows for the period;
// the percentage is nil when the payment volume is zero or absent.
type InsuranceRatioRow struct {
	State             string   `json:"state"`
	InsuranceAmount   *float64 `json:"insurance_amount"`
	TransactionAmount *float64 `json:"transaction_amount"`
	InsVsTxnPct       *float64 `json:"ins_vs_txn_pct"`
}
