package controllers

import (
	"context"

	"fundtrack/src/repositories"
	"fundtrack/src/schemas"
	"fundtrack/src/services"
)

const popularFundsLimit = 10

type AdminControllerI interface {
	ListUsers(ctx context.Context) ([]schemas.UserResponse, error)
	ListHoldings(ctx context.Context) ([]schemas.AdminHolding, error)
	PopularFunds(ctx context.Context) ([]schemas.PopularFund, error)
	Stats(ctx context.Context) (*schemas.SystemStats, error)
	TriggerNavSync(ctx context.Context) (*schemas.NavSyncRunResponse, error)
}

type AdminController struct {
	userRepo    repositories.UserRepository
	holdingRepo repositories.HoldingRepository
	fundRepo    repositories.FundRepository
	navSync     services.NavSyncServiceI
}

func NewAdminController(
	userRepo repositories.UserRepository,
	holdingRepo repositories.HoldingRepository,
	fundRepo repositories.FundRepository,
	navSync services.NavSyncServiceI,
) *AdminController {
	return &AdminController{
		userRepo:    userRepo,
		holdingRepo: holdingRepo,
		fundRepo:    fundRepo,
		navSync:     navSync,
	}
}

// ListUsers returns every account without its password hash.
func (c *AdminController) ListUsers(ctx context.Context) ([]schemas.UserResponse, error) {
	users, err := c.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]schemas.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, schemas.UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  string(u.Role),
		})
	}
	return out, nil
}

func (c *AdminController) ListHoldings(ctx context.Context) ([]schemas.AdminHolding, error) {
	holdings, err := c.holdingRepo.ListWithUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]schemas.AdminHolding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, schemas.AdminHolding{
			ID:         h.ID,
			SchemeCode: h.SchemeCode,
			Units:      h.Units,
			UserName:   h.UserName,
			UserEmail:  h.UserEmail,
		})
	}
	return out, nil
}

func (c *AdminController) PopularFunds(ctx context.Context) ([]schemas.PopularFund, error) {
	funds, err := c.holdingRepo.PopularFunds(ctx, popularFundsLimit)
	if err != nil {
		return nil, err
	}

	out := make([]schemas.PopularFund, 0, len(funds))
	for _, f := range funds {
		out = append(out, schemas.PopularFund{
			SchemeCode: f.SchemeCode,
			TotalUnits: f.TotalUnits,
			Count:      f.Count,
		})
	}
	return out, nil
}

func (c *AdminController) Stats(ctx context.Context) (*schemas.SystemStats, error) {
	users, err := c.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	holdings, err := c.holdingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	funds, err := c.fundRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &schemas.SystemStats{
		Users:    users,
		Holdings: holdings,
		Funds:    funds,
	}, nil
}

// TriggerNavSync runs a full reconciliation immediately, outside the
// schedule.
func (c *AdminController) TriggerNavSync(ctx context.Context) (*schemas.NavSyncRunResponse, error) {
	results, err := c.navSync.SyncAllHoldings(ctx)
	if err != nil {
		return nil, err
	}

	resp := &schemas.NavSyncRunResponse{Results: results}
	for _, r := range results {
		if r.Success {
			resp.Synced++
		} else {
			resp.Failed++
		}
	}
	return resp, nil
}
