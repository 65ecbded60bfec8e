package dashboard

import (
	"context"
	"time"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// HighValue loads every request with a revenue estimate and applies SelectHighValue.
func (a *Aggregator) HighValue(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.Request, error) {
	requests, err := uow.RequestRepository().FindAll(ctx, specification.WithExpectedRevenue{})
	if err != nil {
		return nil, err
	}
	return SelectHighValue(requests), nil
}

// StageTransitions buckets the transitions of the last days (clamped) ending at now.
func (a *Aggregator) StageTransitions(ctx context.Context, uow unitofwork.UnitOfWork, days int, now time.Time) (int, []Bucket, error) {
	windowDays := ClampWindowDays(days)
	start := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	recent, err := uow.StageHistoryRepository().FindAll(ctx, specification.EnteredSince{Since: start})
	if err != nil {
		return windowDays, nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var requestIds []uuid.UUID
	for _, h := range recent {
		if !seen[h.RequestId] {
			seen[h.RequestId] = true
			requestIds = append(requestIds, h.RequestId)
		}
	}
	if len(requestIds) == 0 {
		return windowDays, BucketTransitions(nil, nil, start), nil
	}

	all, err := uow.StageHistoryRepository().FindAll(ctx,
		specification.ByRequestIDs{RequestIDs: requestIds},
		specification.OrderBy{Field: "entered_at", Desc: false},
	)
	if err != nil {
		return windowDays, nil, err
	}

	requests, err := uow.RequestRepository().FindAll(ctx, specification.ByIDs{IDs: requestIds})
	if err != nil {
		return windowDays, nil, err
	}
	info := make(map[uuid.UUID]RequestInfo, len(requests))
	for _, r := range requests {
		info[r.Id] = RequestInfo{
			Title:        r.Title,
			CustomerName: r.CustomerName,
			ProductArea:  r.ProductArea,
			CurrentStage: r.CurrentStage,
		}
	}

	a.logger.Debug("DASHBOARD", "Stage transitions aggregated", map[string]interface{}{
		"window_days": windowDays,
		"requests":    len(requestIds),
		"rows":        len(all),
	})

	return windowDays, BucketTransitions(all, info, start), nil
}

// KeywordStats counts keywords of requests submitted since January 1st of now's year.
func (a *Aggregator) KeywordStats(ctx context.Context, uow unitofwork.UnitOfWork, now time.Time) ([]*entity.KeywordCount, error) {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return uow.RequestKeywordRepository().CountSince(ctx, yearStart.UTC())
}

// RDGroupLoad counts requests in active stages per RD group.
func (a *Aggregator) RDGroupLoad(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.RDGroupLoad, error) {
	return uow.RequestRDGroupRepository().CountActiveByGroup(ctx, entity.ActiveStages())
}
