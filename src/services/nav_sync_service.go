package services

import (
	"context"
	"errors"
	"fmt"

	"fundtrack/src/clients/mfapi"
	"fundtrack/src/config"
	"fundtrack/src/models"
	"fundtrack/src/repositories"
	"fundtrack/src/scheduler"
	"fundtrack/src/schemas"
	"fundtrack/src/utils"

	"github.com/sourcegraph/conc/pool"
)

type NavSyncServiceI interface {
	SyncFund(ctx context.Context, schemeCode int) schemas.NavSyncResult
	SyncAllHoldings(ctx context.Context) ([]schemas.NavSyncResult, error)
	Start(ctx context.Context) error
	Stop()
}

// NavSyncService reconciles the latest NAV per held scheme into the
// latest_navs table and the append-only nav_histories ledger. It owns the
// recurring schedule: one run at startup, then per cron spec.
type NavSyncService struct {
	latestNavRepo repositories.LatestNavRepository
	historyRepo   repositories.NavHistoryRepository
	fundRepo      repositories.FundRepository
	holdingRepo   repositories.HoldingRepository

	client mfapi.MFAPIServiceClientI

	retryPolicy utils.RetryPolicy
	cronSpec    string
	concurrency int

	task *scheduler.ScheduledTask
}

func NewNavSyncService(
	cfg *config.Config,
	latestNavRepo repositories.LatestNavRepository,
	historyRepo repositories.NavHistoryRepository,
	fundRepo repositories.FundRepository,
	holdingRepo repositories.HoldingRepository,
	client mfapi.MFAPIServiceClientI,
) *NavSyncService {
	concurrency := cfg.NavSync.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &NavSyncService{
		latestNavRepo: latestNavRepo,
		historyRepo:   historyRepo,
		fundRepo:      fundRepo,
		holdingRepo:   holdingRepo,
		client:        client,
		retryPolicy: utils.RetryPolicy{
			MaxAttempts: cfg.NavSync.MaxAttempts,
			BaseDelay:   cfg.NavSync.BaseDelay,
		},
		cronSpec:    cfg.NavSync.CronSpec,
		concurrency: concurrency,
	}
}

// SyncFund reconciles a single scheme. The external fetch goes through
// the retry executor; once it fails for good nothing is written. Metadata
// backfill runs last and can never fail the reconciliation.
func (s *NavSyncService) SyncFund(ctx context.Context, schemeCode int) schemas.NavSyncResult {
	logger := utils.LoggerFromContext(ctx).WithField("schemeCode", schemeCode)
	result := schemas.NavSyncResult{SchemeCode: schemeCode}

	entry, err := utils.Retry(ctx, s.retryPolicy, func(ctx context.Context) (*mfapi.NavEntry, error) {
		return s.client.GetLatestNav(ctx, schemeCode)
	})
	if err != nil {
		logger.WithError(err).Error("failed to fetch latest NAV")
		result.Error = err.Error()
		return result
	}

	if err := s.latestNavRepo.Upsert(ctx, &models.LatestNav{
		SchemeCode: schemeCode,
		Nav:        entry.Nav,
		Date:       entry.Date,
	}); err != nil {
		logger.WithError(err).Error("failed to upsert latest NAV")
		result.Error = err.Error()
		return result
	}

	inserted, err := s.historyRepo.InsertIfAbsent(ctx, &models.NavHistoryEntry{
		SchemeCode: schemeCode,
		Nav:        entry.Nav,
		Date:       entry.Date,
	})
	if err != nil {
		logger.WithError(err).Error("failed to append NAV history")
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.Nav = entry.Nav
	result.Date = entry.Date
	result.Metadata = s.backfillMetadata(ctx, schemeCode)

	logger.WithField("nav", entry.Nav).
		WithField("date", entry.Date).
		WithField("historyAppended", inserted).
		Info("synced NAV")
	return result
}

// backfillMetadata stores fund metadata when the funds row is missing.
// Any failure here is logged and swallowed; the returned metadata is nil
// unless this call actually backfilled the record.
func (s *NavSyncService) backfillMetadata(ctx context.Context, schemeCode int) *schemas.FundMetadata {
	logger := utils.LoggerFromContext(ctx).WithField("schemeCode", schemeCode)

	fund, err := s.fundRepo.GetBySchemeCode(ctx, schemeCode)
	if err != nil {
		logger.WithError(err).Warn("metadata backfill: fund lookup failed")
		return nil
	}
	if fund != nil {
		return nil
	}

	details, err := s.client.GetFundDetails(ctx, schemeCode)
	if err != nil {
		logger.WithError(err).Warn("metadata backfill: fetch failed")
		return nil
	}

	if err := s.fundRepo.Upsert(ctx, &models.Fund{
		SchemeCode:     schemeCode,
		SchemeName:     details.SchemeName,
		FundHouse:      details.FundHouse,
		SchemeType:     details.SchemeType,
		SchemeCategory: details.SchemeCategory,
	}); err != nil {
		logger.WithError(err).Warn("metadata backfill: store failed")
		return nil
	}

	return &schemas.FundMetadata{
		SchemeName:     details.SchemeName,
		FundHouse:      details.FundHouse,
		SchemeType:     details.SchemeType,
		SchemeCategory: details.SchemeCategory,
	}
}

// SyncAllHoldings reconciles every scheme referenced by at least one
// holding. Schemes are independent: failures are collected per scheme and
// never abort the run. The worker pool bounds load on the price source.
func (s *NavSyncService) SyncAllHoldings(ctx context.Context) ([]schemas.NavSyncResult, error) {
	logger := utils.LoggerFromContext(ctx)

	codes, err := s.holdingRepo.DistinctSchemeCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate held schemes: %w", err)
	}
	if len(codes) == 0 {
		logger.Info("no held schemes, skipping NAV sync")
		return nil, nil
	}

	results := make([]schemas.NavSyncResult, len(codes))
	p := pool.New().WithMaxGoroutines(s.concurrency)
	for i, code := range codes {
		i, code := i, code
		p.Go(func() {
			results[i] = s.SyncFund(ctx, code)
		})
	}
	p.Wait()

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	logger.WithField("schemes", len(codes)).
		WithField("failed", failed).
		Info("NAV sync run completed")
	return results, nil
}

// Start fires one sync immediately and registers the recurring schedule.
func (s *NavSyncService) Start(ctx context.Context) error {
	if s.task != nil {
		return errors.New("nav sync already started")
	}

	logger := utils.LoggerFromContext(ctx)
	job := func() {
		jobCtx := utils.WithLogger(context.Background(), logger)
		if _, err := s.SyncAllHoldings(jobCtx); err != nil {
			logger.WithError(err).Error("NAV sync run failed")
		}
	}

	task, err := scheduler.NewScheduledTask(s.cronSpec, true, job)
	if err != nil {
		return fmt.Errorf("failed to schedule NAV sync: %w", err)
	}
	s.task = task
	logger.WithField("cronSpec", s.cronSpec).Info("NAV sync scheduled")
	return nil
}

func (s *NavSyncService) Stop() {
	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}
}
