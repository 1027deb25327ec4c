package models

import "time"

// LatestNav holds the most recently synced NAV per scheme. The date is the
// upstream "as of" string (DD-MM-YYYY); it is never parsed, only compared
// for equality against history entries.
type LatestNav struct {
	SchemeCode int       `db:"scheme_code"`
	Nav        float64   `db:"nav"`
	Date       string    `db:"date"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// NavHistoryEntry is an append-only ledger of first-seen NAVs per
// (scheme, date). Existing rows are never updated.
type NavHistoryEntry struct {
	ID         int       `db:"id"`
	SchemeCode int       `db:"scheme_code"`
	Nav        float64   `db:"nav"`
	Date       string    `db:"date"`
	CreatedAt  time.Time `db:"created_at"`
}
