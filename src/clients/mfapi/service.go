package mfapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"fundtrack/src/config"
	"fundtrack/src/utils"
	"fundtrack/src/utils/requests"
)

// Failure taxonomy for the price source. Callers branch on these with
// errors.Is; everything else is wrapped as unreachable.
var (
	ErrNotFound    = errors.New("scheme not found")
	ErrUnreachable = errors.New("price source unreachable")
	ErrMalformed   = errors.New("malformed price source response")
)

const (
	fundListCacheKey = "mfapi:fund-list"
	fundListCacheTTL = time.Hour
	detailsCacheTTL  = 6 * time.Hour
)

type MFAPIServiceClientI interface {
	GetLatestNav(ctx context.Context, schemeCode int) (*NavEntry, error)
	GetFundDetails(ctx context.Context, schemeCode int) (*FundDetails, error)
	GetNavHistory(ctx context.Context, schemeCode, limit int) ([]NavEntry, error)
	ListFunds(ctx context.Context) ([]FundSummary, error)
}

// MFAPIServiceClient wraps the external mutual-fund price API.
type MFAPIServiceClient struct {
	API          *requests.ExternalAPIService
	BaseURL      string
	CacheHandler utils.CacheHandlerI
}

func NewClient(cfg *config.Config, cacheHandler utils.CacheHandlerI) *MFAPIServiceClient {
	return &MFAPIServiceClient{
		API:          requests.NewExternalAPIService(10 * time.Second),
		BaseURL:      cfg.ExternalClients.MFAPI.BaseURL,
		CacheHandler: cacheHandler,
	}
}

// GetLatestNav fetches the current NAV for a scheme and normalizes the
// response into a NavEntry.
func (c *MFAPIServiceClient) GetLatestNav(ctx context.Context, schemeCode int) (*NavEntry, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d/latest", c.BaseURL, schemeCode))
	if err != nil {
		return nil, err
	}

	entry, variant, err := parseLatestNav(body)
	if err != nil {
		return nil, err
	}
	utils.LoggerFromContext(ctx).
		WithField("schemeCode", schemeCode).
		WithField("variant", variant).
		Debug("parsed latest NAV response")
	return entry, nil
}

// GetFundDetails fetches scheme metadata for backfilling the funds table.
func (c *MFAPIServiceClient) GetFundDetails(ctx context.Context, schemeCode int) (*FundDetails, error) {
	cacheKey := fmt.Sprintf("mfapi:details:%d", schemeCode)
	var cached FundDetails
	if c.CacheHandler != nil && c.CacheHandler.Get(cacheKey, &cached) == nil {
		return &cached, nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/%d", c.BaseURL, schemeCode))
	if err != nil {
		return nil, err
	}

	var env fundEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	details := &FundDetails{}
	if env.Meta != nil {
		details.SchemeName = env.Meta.SchemeName
		details.FundHouse = env.Meta.FundHouse
		details.SchemeType = env.Meta.SchemeType
		details.SchemeCategory = env.Meta.SchemeCategory
	}
	if details.SchemeName == "" {
		details.SchemeName = env.SchemeName
	}
	if details.SchemeName == "" {
		return nil, fmt.Errorf("%w: no metadata for scheme %d", ErrNotFound, schemeCode)
	}

	if c.CacheHandler != nil {
		_ = c.CacheHandler.Set(cacheKey, details, detailsCacheTTL)
	}
	return details, nil
}

// GetNavHistory returns up to limit recent NAV rows for a scheme, newest
// first, as reported by the external source.
func (c *MFAPIServiceClient) GetNavHistory(ctx context.Context, schemeCode, limit int) ([]NavEntry, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d", c.BaseURL, schemeCode))
	if err != nil {
		return nil, err
	}

	var env struct {
		Data []navRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	entries := make([]NavEntry, 0, limit)
	for _, record := range env.Data {
		if len(entries) == limit {
			break
		}
		nav, err := parseNavValue(record.Nav)
		if err != nil {
			continue
		}
		entries = append(entries, NavEntry{Nav: nav, Date: record.Date})
	}
	return entries, nil
}

// ListFunds fetches the master fund list, served from cache when warm.
func (c *MFAPIServiceClient) ListFunds(ctx context.Context) ([]FundSummary, error) {
	var cached []FundSummary
	if c.CacheHandler != nil && c.CacheHandler.Get(fundListCacheKey, &cached) == nil {
		return cached, nil
	}

	body, err := c.get(ctx, c.BaseURL)
	if err != nil {
		return nil, err
	}

	var raw []masterListFund
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	funds := make([]FundSummary, 0, len(raw))
	for _, f := range raw {
		funds = append(funds, FundSummary(f))
	}

	if c.CacheHandler != nil {
		_ = c.CacheHandler.Set(fundListCacheKey, funds, fundListCacheTTL)
	}
	return funds, nil
}

func (c *MFAPIServiceClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := c.API.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, endpoint)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return body, nil
}

func parseNavValue(v navValue) (float64, error) {
	nav, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: nav %q is not numeric", ErrMalformed, v)
	}
	return nav, nil
}
