package controllers

import (
	"context"
	"strings"

	"fundtrack/src/clients/mfapi"
	"fundtrack/src/repositories"
	"fundtrack/src/schemas"
	"fundtrack/src/utils"
)

const navHistoryLimit = 30

type FundsControllerI interface {
	ListFunds(ctx context.Context, search string, page, limit int) (*schemas.FundListResponse, error)
	GetNavHistory(ctx context.Context, schemeCode int) (*schemas.FundNavHistoryResponse, error)
}

type FundsController struct {
	client        mfapi.MFAPIServiceClientI
	fundRepo      repositories.FundRepository
	latestNavRepo repositories.LatestNavRepository
	historyRepo   repositories.NavHistoryRepository
}

func NewFundsController(
	client mfapi.MFAPIServiceClientI,
	fundRepo repositories.FundRepository,
	latestNavRepo repositories.LatestNavRepository,
	historyRepo repositories.NavHistoryRepository,
) *FundsController {
	return &FundsController{
		client:        client,
		fundRepo:      fundRepo,
		latestNavRepo: latestNavRepo,
		historyRepo:   historyRepo,
	}
}

// ListFunds searches the cached master list by scheme name or fund house.
func (c *FundsController) ListFunds(ctx context.Context, search string, page, limit int) (*schemas.FundListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	funds, err := c.client.ListFunds(ctx)
	if err != nil {
		return nil, err
	}

	if search != "" {
		q := strings.ToLower(search)
		filtered := funds[:0:0]
		for _, f := range funds {
			if strings.Contains(strings.ToLower(f.SchemeName), q) ||
				strings.Contains(strings.ToLower(f.FundHouse), q) {
				filtered = append(filtered, f)
			}
		}
		funds = filtered
	}

	total := len(funds)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	paged := make([]schemas.FundSummary, 0, end-start)
	for _, f := range funds[start:end] {
		paged = append(paged, schemas.FundSummary{
			SchemeCode:     f.SchemeCode,
			SchemeName:     f.SchemeName,
			FundHouse:      f.FundHouse,
			SchemeType:     f.SchemeType,
			SchemeCategory: f.SchemeCategory,
		})
	}

	return &schemas.FundListResponse{
		Funds: paged,
		Pagination: schemas.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalFunds:  total,
		},
	}, nil
}

// GetNavHistory prefers the external source and falls back to the local
// NAV records when the source is unavailable.
func (c *FundsController) GetNavHistory(ctx context.Context, schemeCode int) (*schemas.FundNavHistoryResponse, error) {
	if schemeCode <= 0 {
		return nil, utils.BadRequest("schemeCode required")
	}

	entries, err := c.client.GetNavHistory(ctx, schemeCode, navHistoryLimit)
	if err == nil {
		resp := &schemas.FundNavHistoryResponse{
			SchemeCode: schemeCode,
			History:    make([]schemas.NavHistoryPoint, 0, len(entries)),
		}
		for _, e := range entries {
			resp.History = append(resp.History, schemas.NavHistoryPoint{Date: e.Date, Nav: e.Nav})
		}
		if len(entries) > 0 {
			resp.CurrentNav = &entries[0].Nav
			resp.AsOn = &entries[0].Date
		}
		if details, err := c.client.GetFundDetails(ctx, schemeCode); err == nil {
			resp.SchemeName = &details.SchemeName
		}
		return resp, nil
	}

	utils.LoggerFromContext(ctx).
		WithField("schemeCode", schemeCode).
		WithError(err).
		Warn("external NAV history unavailable, using local records")

	return c.localNavHistory(ctx, schemeCode)
}

func (c *FundsController) localNavHistory(ctx context.Context, schemeCode int) (*schemas.FundNavHistoryResponse, error) {
	entries, err := c.historyRepo.GetBySchemeCode(ctx, schemeCode, navHistoryLimit)
	if err != nil {
		return nil, err
	}

	resp := &schemas.FundNavHistoryResponse{
		SchemeCode: schemeCode,
		History:    make([]schemas.NavHistoryPoint, 0, len(entries)),
	}
	for _, e := range entries {
		resp.History = append(resp.History, schemas.NavHistoryPoint{Date: e.Date, Nav: e.Nav})
	}

	latest, err := c.latestNavRepo.GetBySchemeCode(ctx, schemeCode)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		resp.CurrentNav = &latest.Nav
		resp.AsOn = &latest.Date
	}

	fund, err := c.fundRepo.GetBySchemeCode(ctx, schemeCode)
	if err != nil {
		return nil, err
	}
	if fund != nil {
		resp.SchemeName = &fund.SchemeName
	}
	return resp, nil
}
