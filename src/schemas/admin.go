package schemas

type AdminHolding struct {
	ID         int     `json:"id"`
	SchemeCode int     `json:"schemeCode"`
	Units      float64 `json:"units"`
	UserName   string  `json:"userName"`
	UserEmail  string  `json:"userEmail"`
}

type PopularFund struct {
	SchemeCode int     `json:"schemeCode"`
	TotalUnits float64 `json:"totalUnits"`
	Count      int     `json:"count"`
}

type SystemStats struct {
	Users    int `json:"users"`
	Holdings int `json:"holdings"`
	Funds    int `json:"funds"`
}
