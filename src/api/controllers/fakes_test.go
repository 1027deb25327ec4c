package controllers_test

import (
	"context"

	"fundtrack/src/clients/mfapi"
	"fundtrack/src/models"
	"fundtrack/src/schemas"
)

type fakeUserRepo struct {
	users     map[string]models.User
	createErr error
	nextID    int
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.users == nil {
		f.users = make(map[string]models.User)
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.Email] = *u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) { return len(f.users), nil }

type fakeHoldingRepo struct {
	holdings []models.Holding
	deleted  int64
	nextID   int
}

func (f *fakeHoldingRepo) Create(_ context.Context, h *models.Holding) error {
	f.nextID++
	h.ID = f.nextID
	f.holdings = append(f.holdings, *h)
	return nil
}

func (f *fakeHoldingRepo) GetByUserID(_ context.Context, userID int) ([]models.Holding, error) {
	var out []models.Holding
	for _, h := range f.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHoldingRepo) DeleteByUserAndScheme(_ context.Context, userID, schemeCode int) (int64, error) {
	kept := f.holdings[:0]
	var removed int64
	for _, h := range f.holdings {
		if h.UserID == userID && h.SchemeCode == schemeCode {
			removed++
			continue
		}
		kept = append(kept, h)
	}
	f.holdings = kept
	f.deleted += removed
	return removed, nil
}

func (f *fakeHoldingRepo) DistinctSchemeCodes(_ context.Context) ([]int, error) { return nil, nil }

func (f *fakeHoldingRepo) ListWithUsers(_ context.Context) ([]models.HoldingWithUser, error) {
	return nil, nil
}

func (f *fakeHoldingRepo) PopularFunds(_ context.Context, _ int) ([]models.FundPopularity, error) {
	return nil, nil
}

func (f *fakeHoldingRepo) Count(_ context.Context) (int, error) { return len(f.holdings), nil }

type fakeLatestNavRepo struct {
	navs    []models.LatestNav
	upserts []models.LatestNav
}

func (f *fakeLatestNavRepo) Upsert(_ context.Context, nav *models.LatestNav) error {
	f.upserts = append(f.upserts, *nav)
	return nil
}

func (f *fakeLatestNavRepo) GetBySchemeCode(_ context.Context, schemeCode int) (*models.LatestNav, error) {
	for i := range f.navs {
		if f.navs[i].SchemeCode == schemeCode {
			return &f.navs[i], nil
		}
	}
	return nil, nil
}

func (f *fakeLatestNavRepo) GetBySchemeCodes(_ context.Context, _ []int) ([]models.LatestNav, error) {
	return f.navs, nil
}

type fakeNavHistoryRepo struct {
	entries []models.NavHistoryEntry
}

func (f *fakeNavHistoryRepo) InsertIfAbsent(_ context.Context, entry *models.NavHistoryEntry) (bool, error) {
	f.entries = append(f.entries, *entry)
	return true, nil
}

func (f *fakeNavHistoryRepo) GetBySchemeCodes(_ context.Context, _ []int, _ int) ([]models.NavHistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeNavHistoryRepo) GetBySchemeCode(_ context.Context, _, _ int) ([]models.NavHistoryEntry, error) {
	return f.entries, nil
}

type fakeFundRepo struct {
	funds   map[int]models.Fund
	upserts []models.Fund
}

func (f *fakeFundRepo) GetBySchemeCode(_ context.Context, schemeCode int) (*models.Fund, error) {
	if fund, ok := f.funds[schemeCode]; ok {
		return &fund, nil
	}
	return nil, nil
}

func (f *fakeFundRepo) Upsert(_ context.Context, fund *models.Fund) error {
	if f.funds == nil {
		f.funds = make(map[int]models.Fund)
	}
	f.funds[fund.SchemeCode] = *fund
	f.upserts = append(f.upserts, *fund)
	return nil
}

func (f *fakeFundRepo) Count(_ context.Context) (int, error) { return len(f.funds), nil }

type fakeMFAPIClient struct {
	latestNavFn func(ctx context.Context, schemeCode int) (*mfapi.NavEntry, error)
	detailsFn   func(ctx context.Context, schemeCode int) (*mfapi.FundDetails, error)
	listFn      func(ctx context.Context) ([]mfapi.FundSummary, error)
	historyFn   func(ctx context.Context, schemeCode, limit int) ([]mfapi.NavEntry, error)
}

func (f *fakeMFAPIClient) GetLatestNav(ctx context.Context, schemeCode int) (*mfapi.NavEntry, error) {
	return f.latestNavFn(ctx, schemeCode)
}

func (f *fakeMFAPIClient) GetFundDetails(ctx context.Context, schemeCode int) (*mfapi.FundDetails, error) {
	if f.detailsFn == nil {
		return nil, mfapi.ErrNotFound
	}
	return f.detailsFn(ctx, schemeCode)
}

func (f *fakeMFAPIClient) GetNavHistory(ctx context.Context, schemeCode, limit int) ([]mfapi.NavEntry, error) {
	if f.historyFn == nil {
		return nil, nil
	}
	return f.historyFn(ctx, schemeCode, limit)
}

func (f *fakeMFAPIClient) ListFunds(ctx context.Context) ([]mfapi.FundSummary, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

type fakeValuationService struct {
	value   *schemas.ValuationResponse
	history []schemas.HistoryPoint
}

func (f *fakeValuationService) ComputeValue(_ context.Context, _ int) (*schemas.ValuationResponse, error) {
	return f.value, nil
}

func (f *fakeValuationService) History(_ context.Context, _ int) ([]schemas.HistoryPoint, error) {
	return f.history, nil
}
