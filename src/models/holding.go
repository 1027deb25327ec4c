package models

import "time"

// Holding records a user's position in a fund. InvestedAmount is
// units × purchase NAV, computed once at creation and never recomputed.
type Holding struct {
	ID             int       `db:"id"`
	UserID         int       `db:"user_id"`
	SchemeCode     int       `db:"scheme_code"`
	Units          float64   `db:"units"`
	PurchaseDate   time.Time `db:"purchase_date"`
	PurchaseNav    float64   `db:"purchase_nav"`
	InvestedAmount float64   `db:"invested_amount"`
	CreatedAt      time.Time `db:"created_at"`
}
