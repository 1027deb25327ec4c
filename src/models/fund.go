package models

import "time"

// Fund is global reference data, created lazily on first portfolio
// addition or NAV sync and never deleted.
type Fund struct {
	SchemeCode     int       `db:"scheme_code"`
	SchemeName     string    `db:"scheme_name"`
	FundHouse      string    `db:"fund_house"`
	SchemeType     string    `db:"scheme_type"`
	SchemeCategory string    `db:"scheme_category"`
	CreatedAt      time.Time `db:"created_at"`
}
