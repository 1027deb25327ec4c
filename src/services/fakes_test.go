package services_test

import (
	"context"
	"fmt"
	"sync"

	"fundtrack/src/clients/mfapi"
	"fundtrack/src/models"
)

type fakeHoldingRepo struct {
	holdings    []models.Holding
	holdingsErr error
	codes       []int
	codesErr    error
}

func (f *fakeHoldingRepo) Create(_ context.Context, h *models.Holding) error { return nil }

func (f *fakeHoldingRepo) GetByUserID(_ context.Context, _ int) ([]models.Holding, error) {
	return f.holdings, f.holdingsErr
}

func (f *fakeHoldingRepo) DeleteByUserAndScheme(_ context.Context, _, _ int) (int64, error) {
	return 0, nil
}

func (f *fakeHoldingRepo) DistinctSchemeCodes(_ context.Context) ([]int, error) {
	return f.codes, f.codesErr
}

func (f *fakeHoldingRepo) ListWithUsers(_ context.Context) ([]models.HoldingWithUser, error) {
	return nil, nil
}

func (f *fakeHoldingRepo) PopularFunds(_ context.Context, _ int) ([]models.FundPopularity, error) {
	return nil, nil
}

func (f *fakeHoldingRepo) Count(_ context.Context) (int, error) { return len(f.holdings), nil }

type fakeLatestNavRepo struct {
	mu        sync.Mutex
	navs      []models.LatestNav
	upserts   []models.LatestNav
	upsertErr error
}

func (f *fakeLatestNavRepo) Upsert(_ context.Context, nav *models.LatestNav) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
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
	mu        sync.Mutex
	seen      map[string]bool
	inserted  []models.NavHistoryEntry
	entries   []models.NavHistoryEntry
	insertErr error
}

func (f *fakeNavHistoryRepo) InsertIfAbsent(_ context.Context, entry *models.NavHistoryEntry) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	key := fmt.Sprintf("%d|%s", entry.SchemeCode, entry.Date)
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	f.inserted = append(f.inserted, *entry)
	return true, nil
}

func (f *fakeNavHistoryRepo) GetBySchemeCodes(_ context.Context, _ []int, _ int) ([]models.NavHistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeNavHistoryRepo) GetBySchemeCode(_ context.Context, _, _ int) ([]models.NavHistoryEntry, error) {
	return f.entries, nil
}

type fakeFundRepo struct {
	mu        sync.Mutex
	funds     map[int]models.Fund
	upserts   []models.Fund
	getErr    error
	upsertErr error
}

func (f *fakeFundRepo) GetBySchemeCode(_ context.Context, schemeCode int) (*models.Fund, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if fund, ok := f.funds[schemeCode]; ok {
		return &fund, nil
	}
	return nil, nil
}

func (f *fakeFundRepo) Upsert(_ context.Context, fund *models.Fund) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
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

func (f *fakeMFAPIClient) GetNavHistory(_ context.Context, _, _ int) ([]mfapi.NavEntry, error) {
	return nil, nil
}

func (f *fakeMFAPIClient) ListFunds(_ context.Context) ([]mfapi.FundSummary, error) {
	return nil, nil
}
