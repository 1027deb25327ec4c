package models

// HoldingWithUser joins a holding with its owner for admin listings.
type HoldingWithUser struct {
	Holding
	UserName  string `db:"name"`
	UserEmail string `db:"email"`
}

// FundPopularity is a per-scheme aggregate over all holdings.
type FundPopularity struct {
	SchemeCode int     `db:"scheme_code"`
	TotalUnits float64 `db:"total_units"`
	Count      int     `db:"count"`
}
