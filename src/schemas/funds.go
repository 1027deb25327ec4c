package schemas

type FundSummary struct {
	SchemeCode     int    `json:"schemeCode"`
	SchemeName     string `json:"schemeName"`
	FundHouse      string `json:"fundHouse,omitempty"`
	SchemeType     string `json:"schemeType,omitempty"`
	SchemeCategory string `json:"schemeCategory,omitempty"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalFunds  int `json:"totalFunds"`
}

type FundListResponse struct {
	Funds      []FundSummary `json:"funds"`
	Pagination Pagination    `json:"pagination"`
}

type NavHistoryPoint struct {
	Date string  `json:"date"`
	Nav  float64 `json:"nav"`
}

type FundNavHistoryResponse struct {
	SchemeCode int               `json:"schemeCode"`
	SchemeName *string           `json:"schemeName"`
	CurrentNav *float64          `json:"currentNav"`
	AsOn       *string           `json:"asOn"`
	History    []NavHistoryPoint `json:"history"`
}
