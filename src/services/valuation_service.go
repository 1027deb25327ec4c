package services

import (
	"context"

	"fundtrack/src/models"
	"fundtrack/src/repositories"
	"fundtrack/src/schemas"
	"fundtrack/src/utils"
)

// historyScanLimit caps how many ledger rows one valuation query walks.
const historyScanLimit = 1000

type ValuationServiceI interface {
	ComputeValue(ctx context.Context, userID int) (*schemas.ValuationResponse, error)
	History(ctx context.Context, userID int) ([]schemas.HistoryPoint, error)
}

// ValuationService joins a user's holdings against the synced NAV records.
// It never fails on missing prices: a holding without a latest NAV is
// valued at zero.
type ValuationService struct {
	holdingRepo   repositories.HoldingRepository
	latestNavRepo repositories.LatestNavRepository
	historyRepo   repositories.NavHistoryRepository
}

func NewValuationService(
	holdingRepo repositories.HoldingRepository,
	latestNavRepo repositories.LatestNavRepository,
	historyRepo repositories.NavHistoryRepository,
) *ValuationService {
	return &ValuationService{
		holdingRepo:   holdingRepo,
		latestNavRepo: latestNavRepo,
		historyRepo:   historyRepo,
	}
}

func (s *ValuationService) ComputeValue(ctx context.Context, userID int) (*schemas.ValuationResponse, error) {
	holdings, err := s.holdingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return &schemas.ValuationResponse{Holdings: []schemas.HoldingValuation{}}, nil
	}

	navs, err := s.latestNavRepo.GetBySchemeCodes(ctx, distinctSchemeCodes(holdings))
	if err != nil {
		return nil, err
	}

	navByScheme := make(map[int]float64, len(navs))
	for _, n := range navs {
		navByScheme[n.SchemeCode] = n.Nav
	}

	// Rows come back most recently updated first, so the head row carries
	// the freshest as-of date across the user's funds.
	var asOn *string
	if len(navs) > 0 {
		asOn = &navs[0].Date
	}

	var totalInvestment, currentValue float64
	perHolding := make([]schemas.HoldingValuation, 0, len(holdings))

	for _, h := range holdings {
		var currentNav *float64
		currentVal := 0.0
		if nav, ok := navByScheme[h.SchemeCode]; ok {
			nav := nav
			currentNav = &nav
			currentVal = h.Units * nav
		}

		totalInvestment += h.InvestedAmount
		currentValue += currentVal

		perHolding = append(perHolding, schemas.HoldingValuation{
			SchemeCode:     h.SchemeCode,
			Units:          h.Units,
			PurchaseNav:    h.PurchaseNav,
			InvestedAmount: h.InvestedAmount,
			CurrentNav:     currentNav,
			CurrentValue:   utils.Round2(currentVal),
			ProfitLoss:     utils.Round2(currentVal - h.InvestedAmount),
		})
	}

	profitLoss := currentValue - totalInvestment
	profitLossPercent := 0.0
	if totalInvestment != 0 {
		profitLossPercent = utils.Round2(profitLoss / totalInvestment * 100)
	}

	return &schemas.ValuationResponse{
		TotalInvestment:   utils.Round2(totalInvestment),
		CurrentValue:      utils.Round2(currentValue),
		ProfitLoss:        utils.Round2(profitLoss),
		ProfitLossPercent: profitLossPercent,
		AsOn:              asOn,
		Holdings:          perHolding,
	}, nil
}

// History aggregates the NAV ledger across the user's funds: for each
// date, the sum of units held × that day's NAV. At most the 30 most
// recent distinct dates are returned, oldest first.
func (s *ValuationService) History(ctx context.Context, userID int) ([]schemas.HistoryPoint, error) {
	holdings, err := s.holdingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return []schemas.HistoryPoint{}, nil
	}

	unitsByScheme := make(map[int]float64)
	for _, h := range holdings {
		unitsByScheme[h.SchemeCode] += h.Units
	}

	entries, err := s.historyRepo.GetBySchemeCodes(ctx, distinctSchemeCodes(holdings), historyScanLimit)
	if err != nil {
		return nil, err
	}

	// Dates are opaque strings; ordering follows ledger insertion order,
	// which the repository returns oldest first.
	totalsByDate := make(map[string]float64)
	var dates []string
	for _, e := range entries {
		if _, seen := totalsByDate[e.Date]; !seen {
			dates = append(dates, e.Date)
		}
		totalsByDate[e.Date] += unitsByScheme[e.SchemeCode] * e.Nav
	}

	if len(dates) > 30 {
		dates = dates[len(dates)-30:]
	}

	points := make([]schemas.HistoryPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, schemas.HistoryPoint{
			Date:       date,
			TotalValue: utils.Round2(totalsByDate[date]),
		})
	}
	return points, nil
}

func distinctSchemeCodes(holdings []models.Holding) []int {
	seen := make(map[int]bool, len(holdings))
	var codes []int
	for _, h := range holdings {
		if !seen[h.SchemeCode] {
			seen[h.SchemeCode] = true
			codes = append(codes, h.SchemeCode)
		}
	}
	return codes
}
