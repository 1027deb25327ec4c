package controllers

import (
	"context"
	"time"

	"fundtrack/src/clients/mfapi"
	"fundtrack/src/models"
	"fundtrack/src/repositories"
	"fundtrack/src/schemas"
	"fundtrack/src/services"
	"fundtrack/src/utils"
)

type PortfolioControllerI interface {
	AddHolding(ctx context.Context, userID int, req schemas.AddHoldingRequest) (*schemas.AddHoldingResponse, error)
	ListHoldings(ctx context.Context, userID int) (*schemas.PortfolioListResponse, error)
	RemoveHolding(ctx context.Context, userID, schemeCode int) error
	Value(ctx context.Context, userID int) (*schemas.ValuationResponse, error)
	History(ctx context.Context, userID int) ([]schemas.HistoryPoint, error)
}

type PortfolioController struct {
	holdingRepo   repositories.HoldingRepository
	latestNavRepo repositories.LatestNavRepository
	fundRepo      repositories.FundRepository
	client        mfapi.MFAPIServiceClientI
	valuation     services.ValuationServiceI
}

func NewPortfolioController(
	holdingRepo repositories.HoldingRepository,
	latestNavRepo repositories.LatestNavRepository,
	fundRepo repositories.FundRepository,
	client mfapi.MFAPIServiceClientI,
	valuation services.ValuationServiceI,
) *PortfolioController {
	return &PortfolioController{
		holdingRepo:   holdingRepo,
		latestNavRepo: latestNavRepo,
		fundRepo:      fundRepo,
		client:        client,
		valuation:     valuation,
	}
}

// AddHolding records a position at the current NAV. The invested amount
// is frozen here and never recomputed, even if NAV data is corrected
// later.
func (c *PortfolioController) AddHolding(ctx context.Context, userID int, req schemas.AddHoldingRequest) (*schemas.AddHoldingResponse, error) {
	if req.SchemeCode <= 0 || req.Units <= 0 {
		return nil, utils.BadRequest("Invalid input")
	}

	entry, err := c.client.GetLatestNav(ctx, req.SchemeCode)
	if err != nil {
		return nil, utils.BadRequest("Unable to fetch NAV for scheme")
	}

	// Snapshot the NAV so valuation has a latest record even before the
	// next sync run.
	if err := c.latestNavRepo.Upsert(ctx, &models.LatestNav{
		SchemeCode: req.SchemeCode,
		Nav:        entry.Nav,
		Date:       entry.Date,
	}); err != nil {
		return nil, err
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return nil, utils.BadRequest("Invalid purchase date, expected YYYY-MM-DD")
		}
		purchaseDate = parsed
	}

	holding := &models.Holding{
		UserID:         userID,
		SchemeCode:     req.SchemeCode,
		Units:          req.Units,
		PurchaseDate:   purchaseDate,
		PurchaseNav:    entry.Nav,
		InvestedAmount: req.Units * entry.Nav,
	}
	if err := c.holdingRepo.Create(ctx, holding); err != nil {
		return nil, err
	}

	c.upsertFundMetadata(ctx, req.SchemeCode)

	return &schemas.AddHoldingResponse{
		ID:             holding.ID,
		SchemeCode:     holding.SchemeCode,
		Units:          holding.Units,
		PurchaseDate:   holding.PurchaseDate,
		PurchaseNav:    holding.PurchaseNav,
		InvestedAmount: holding.InvestedAmount,
	}, nil
}

// upsertFundMetadata is best effort: a metadata failure never fails the
// purchase.
func (c *PortfolioController) upsertFundMetadata(ctx context.Context, schemeCode int) {
	logger := utils.LoggerFromContext(ctx).WithField("schemeCode", schemeCode)

	details, err := c.client.GetFundDetails(ctx, schemeCode)
	if err != nil {
		logger.WithError(err).Warn("fund metadata fetch failed")
		return
	}
	if err := c.fundRepo.Upsert(ctx, &models.Fund{
		SchemeCode:     schemeCode,
		SchemeName:     details.SchemeName,
		FundHouse:      details.FundHouse,
		SchemeType:     details.SchemeType,
		SchemeCategory: details.SchemeCategory,
	}); err != nil {
		logger.WithError(err).Warn("fund metadata update failed")
	}
}

func (c *PortfolioController) ListHoldings(ctx context.Context, userID int) (*schemas.PortfolioListResponse, error) {
	holdings, err := c.holdingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	codes := make([]int, 0, len(holdings))
	seen := make(map[int]bool)
	for _, h := range holdings {
		if !seen[h.SchemeCode] {
			seen[h.SchemeCode] = true
			codes = append(codes, h.SchemeCode)
		}
	}

	navs, err := c.latestNavRepo.GetBySchemeCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	navByScheme := make(map[int]float64, len(navs))
	for _, n := range navs {
		navByScheme[n.SchemeCode] = n.Nav
	}

	out := make([]schemas.HoldingResponse, 0, len(holdings))
	for _, h := range holdings {
		resp := schemas.HoldingResponse{
			ID:           h.ID,
			SchemeCode:   h.SchemeCode,
			Units:        h.Units,
			PurchaseDate: h.PurchaseDate.Format("2006-01-02"),
		}
		if nav, ok := navByScheme[h.SchemeCode]; ok {
			value := utils.Round2(h.Units * nav)
			resp.CurrentNav = &nav
			resp.CurrentValue = &value
		}
		out = append(out, resp)
	}

	return &schemas.PortfolioListResponse{
		TotalHoldings: len(out),
		Holdings:      out,
	}, nil
}

func (c *PortfolioController) RemoveHolding(ctx context.Context, userID, schemeCode int) error {
	if schemeCode <= 0 {
		return utils.BadRequest("schemeCode required")
	}
	_, err := c.holdingRepo.DeleteByUserAndScheme(ctx, userID, schemeCode)
	return err
}

func (c *PortfolioController) Value(ctx context.Context, userID int) (*schemas.ValuationResponse, error) {
	return c.valuation.ComputeValue(ctx, userID)
}

func (c *PortfolioController) History(ctx context.Context, userID int) ([]schemas.HistoryPoint, error) {
	return c.valuation.History(ctx, userID)
}
