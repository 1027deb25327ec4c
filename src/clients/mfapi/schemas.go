package mfapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NavEntry is the normalized latest-price record every response variant
// is reduced to.
type NavEntry struct {
	Nav  float64 `json:"nav"`
	Date string  `json:"date"`
}

type FundDetails struct {
	SchemeName     string `json:"schemeName"`
	FundHouse      string `json:"fundHouse"`
	SchemeType     string `json:"schemeType"`
	SchemeCategory string `json:"schemeCategory"`
}

type FundSummary struct {
	SchemeCode     int    `json:"schemeCode"`
	SchemeName     string `json:"schemeName"`
	FundHouse      string `json:"fundHouse"`
	SchemeType     string `json:"schemeType"`
	SchemeCategory string `json:"schemeCategory"`
}

// navValue accepts the NAV as either a JSON string or a JSON number,
// keeping the raw text so normalization can reject non-numeric values.
type navValue string

func (v *navValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = navValue(s)
		return nil
	}
	*v = navValue(data)
	return nil
}

type navRecord struct {
	Nav  navValue `json:"nav"`
	Date string   `json:"date"`
}

type nestedRecords struct {
	Data []navRecord `json:"data"`
}

type pagedRecords struct {
	TotalRecords int         `json:"totalRecords"`
	Data         []navRecord `json:"data"`
}

type fundMeta struct {
	SchemeCode     int    `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
}

type fundEnvelope struct {
	Meta       *fundMeta       `json:"meta"`
	SchemeName string          `json:"schemeName"`
	Data       json.RawMessage `json:"data"`
}

type masterListFund struct {
	SchemeCode     int    `json:"schemeCode"`
	SchemeName     string `json:"schemeName"`
	FundHouse      string `json:"fundHouse"`
	SchemeType     string `json:"schemeType"`
	SchemeCategory string `json:"schemeCategory"`
}

// Response shape variants, tried in a fixed order so a parse result is
// always attributable to exactly one known schema.
const (
	variantNested = "nested-record"
	variantArray  = "record-array"
	variantDirect = "direct-record"
	variantPaged  = "paged-records"
)

// parseLatestNav normalizes the heterogeneous latest-NAV response shapes
// into a single NavEntry and reports which variant matched.
func parseLatestNav(body []byte) (*NavEntry, string, error) {
	// Some endpoint variants wrap the record in a {"data": ...} envelope,
	// others return it bare (including bare arrays, which do not unmarshal
	// into the envelope struct at all).
	payload := body
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		payload = env.Data
	}

	record, variant, ok := matchVariant(payload)
	if !ok {
		return nil, "", fmt.Errorf("%w: no known response shape matched", ErrMalformed)
	}

	nav, err := strconv.ParseFloat(string(record.Nav), 64)
	if err != nil {
		return nil, variant, fmt.Errorf("%w: nav %q is not numeric", ErrMalformed, record.Nav)
	}
	if record.Date == "" {
		return nil, variant, fmt.Errorf("%w: missing date", ErrMalformed)
	}

	return &NavEntry{Nav: nav, Date: record.Date}, variant, nil
}

func matchVariant(payload []byte) (*navRecord, string, bool) {
	// 1. Nested single-record field: {"data": [{...}]}.
	var nested nestedRecords
	if err := json.Unmarshal(payload, &nested); err == nil && len(nested.Data) > 0 {
		return &nested.Data[0], variantNested, true
	}

	// 2. Array of records, take the first.
	var records []navRecord
	if err := json.Unmarshal(payload, &records); err == nil && len(records) > 0 {
		return &records[0], variantArray, true
	}

	// 3. A single object with a direct nav field.
	var direct navRecord
	if err := json.Unmarshal(payload, &direct); err == nil && direct.Nav != "" {
		return &direct, variantDirect, true
	}

	// 4. Paged-results wrapper.
	var paged pagedRecords
	if err := json.Unmarshal(payload, &paged); err == nil && paged.TotalRecords > 0 && len(paged.Data) > 0 {
		return &paged.Data[0], variantPaged, true
	}

	return nil, "", false
}
