package service

import (
	"context"
	"time"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/pkg/dashboard"
)

const (
	statsKeyKeywords = "keywords"
	statsKeyRDGroups = "rd-groups"
)

// statsCacheKeys are dropped after every committed request mutation.
var statsCacheKeys = []string{statsKeyKeywords, statsKeyRDGroups}

type IStatsService interface {
	KeywordStats(ctx context.Context) ([]*dto.KeywordStatResponse, error)
	RDGroupLoad(ctx context.Context) ([]*dto.RDGroupLoadResponse, error)
	StageTransitions(ctx context.Context, days int) (*dto.StageTransitionsResponse, error)
}

type statsService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      contract.StatsCache
	aggregator *dashboard.Aggregator
	logger     logger.ILogger
	now        func() time.Time
}

func NewStatsService(uowFactory unitofwork.RepositoryFactory, cache contract.StatsCache, logger logger.ILogger) IStatsService {
	return &statsService{
		uowFactory: uowFactory,
		cache:      cache,
		aggregator: dashboard.NewAggregator(logger),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *statsService) KeywordStats(ctx context.Context) ([]*dto.KeywordStatResponse, error) {
	var cached []*dto.KeywordStatResponse
	if s.fromCache(ctx, statsKeyKeywords, &cached) {
		return cached, nil
	}

	counts, err := s.aggregator.KeywordStats(ctx, s.uowFactory.NewUnitOfWork(ctx), s.now())
	if err != nil {
		return nil, err
	}

	result := make([]*dto.KeywordStatResponse, 0, len(counts))
	for _, c := range counts {
		result = append(result, &dto.KeywordStatResponse{Keyword: c.Keyword, Count: c.Count})
	}
	s.toCache(ctx, statsKeyKeywords, result)
	return result, nil
}

func (s *statsService) RDGroupLoad(ctx context.Context) ([]*dto.RDGroupLoadResponse, error) {
	var cached []*dto.RDGroupLoadResponse
	if s.fromCache(ctx, statsKeyRDGroups, &cached) {
		return cached, nil
	}

	loads, err := s.aggregator.RDGroupLoad(ctx, s.uowFactory.NewUnitOfWork(ctx))
	if err != nil {
		return nil, err
	}

	result := make([]*dto.RDGroupLoadResponse, 0, len(loads))
	for _, l := range loads {
		result = append(result, &dto.RDGroupLoadResponse{
			Id:             l.RDGroupId,
			Group:          l.Name,
			Category:       l.Category,
			ActiveRequests: l.ActiveRequests,
		})
	}
	s.toCache(ctx, statsKeyRDGroups, result)
	return result, nil
}

// StageTransitions is windowed on the current time and never cached.
func (s *statsService) StageTransitions(ctx context.Context, days int) (*dto.StageTransitionsResponse, error) {
	windowDays, buckets, err := s.aggregator.StageTransitions(ctx, s.uowFactory.NewUnitOfWork(ctx), days, s.now())
	if err != nil {
		return nil, err
	}
	return &dto.StageTransitionsResponse{WindowDays: windowDays, Transitions: buckets}, nil
}

// Cache failures degrade to a fresh computation.
func (s *statsService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("STATS", "Stats cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return found
}

func (s *statsService) toCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("STATS", "Stats cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
