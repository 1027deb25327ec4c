package schemas

import "time"

type AddHoldingRequest struct {
	SchemeCode int     `json:"schemeCode"`
	Units      float64 `json:"units"`
	// Optional; defaults to now.
	PurchaseDate string `json:"purchaseDate,omitempty"`
}

type HoldingResponse struct {
	ID           int      `json:"id"`
	SchemeCode   int      `json:"schemeCode"`
	Units        float64  `json:"units"`
	PurchaseDate string   `json:"purchaseDate"`
	CurrentNav   *float64 `json:"currentNav"`
	CurrentValue *float64 `json:"currentValue"`
}

type PortfolioListResponse struct {
	TotalHoldings int               `json:"totalHoldings"`
	Holdings      []HoldingResponse `json:"holdings"`
}

// HoldingValuation is the per-holding slice of a portfolio valuation.
// Current figures are rounded to 2 decimals for display only; the
// aggregate totals are computed from the exact values.
type HoldingValuation struct {
	SchemeCode     int      `json:"schemeCode"`
	Units          float64  `json:"units"`
	PurchaseNav    float64  `json:"purchaseNav"`
	InvestedAmount float64  `json:"investedAmount"`
	CurrentNav     *float64 `json:"currentNav"`
	CurrentValue   float64  `json:"currentValue"`
	ProfitLoss     float64  `json:"profitLoss"`
}

type ValuationResponse struct {
	TotalInvestment   float64            `json:"totalInvestment"`
	CurrentValue      float64            `json:"currentValue"`
	ProfitLoss        float64            `json:"profitLoss"`
	ProfitLossPercent float64            `json:"profitLossPercent"`
	AsOn              *string            `json:"asOn"`
	Holdings          []HoldingValuation `json:"holdings"`
}

type HistoryPoint struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"totalValue"`
}

type AddHoldingResponse struct {
	ID             int       `json:"id"`
	SchemeCode     int       `json:"schemeCode"`
	Units          float64   `json:"units"`
	PurchaseDate   time.Time `json:"purchaseDate"`
	PurchaseNav    float64   `json:"purchaseNav"`
	InvestedAmount float64   `json:"investedAmount"`
}
