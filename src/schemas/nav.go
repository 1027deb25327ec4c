package schemas

// NavSyncResult reports the outcome of reconciling one scheme. Error is
// kept as a plain string so the whole record stays JSON-serializable.
// Metadata is present only when this run backfilled the fund record;
// backfill failures leave it nil and are logged, never surfaced.
type NavSyncResult struct {
	SchemeCode int           `json:"schemeCode"`
	Success    bool          `json:"success"`
	Nav        float64       `json:"nav,omitempty"`
	Date       string        `json:"date,omitempty"`
	Error      string        `json:"error,omitempty"`
	Metadata   *FundMetadata `json:"metadata,omitempty"`
}

type FundMetadata struct {
	SchemeName     string `json:"schemeName"`
	FundHouse      string `json:"fundHouse"`
	SchemeType     string `json:"schemeType"`
	SchemeCategory string `json:"schemeCategory"`
}

type NavSyncRunResponse struct {
	Synced  int             `json:"synced"`
	Failed  int             `json:"failed"`
	Results []NavSyncResult `json:"results"`
}
