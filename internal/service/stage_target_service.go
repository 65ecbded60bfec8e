package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/pkg/metrics"
	"rnd-intake-be/pkg/notify"

	"github.com/google/uuid"
)

type IStageTargetService interface {
	SetStageTarget(ctx context.Context, actor entity.Actor, req *dto.SetStageTargetRequest) (*dto.StageTargetsResponse, error)
	ListStageTargets(ctx context.Context, requestId uuid.UUID) (*dto.StageTargetsResponse, error)
}

type stageTargetService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   notify.Publisher
	metrics    *metrics.Metrics
	logger     logger.ILogger
	now        func() time.Time
}

func NewStageTargetService(
	uowFactory unitofwork.RepositoryFactory,
	notifier notify.Publisher,
	metrics *metrics.Metrics,
	logger logger.ILogger,
) IStageTargetService {
	return &stageTargetService{
		uowFactory: uowFactory,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *stageTargetService) SetStageTarget(ctx context.Context, actor entity.Actor, req *dto.SetStageTargetRequest) (*dto.StageTargetsResponse, error) {
	if strings.TrimSpace(req.Stage) == "" || strings.TrimSpace(req.TargetDate) == "" {
		return nil, apperror.Validation("stage and target_date are required")
	}
	stage, err := entity.ParseStage(req.Stage)
	if err != nil {
		return nil, apperror.Validation("invalid stage")
	}
	targetDate, err := dto.ParseDate(req.TargetDate)
	if err != nil {
		return nil, apperror.Validation("invalid target_date")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: req.RequestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("request not found")
	}

	existing, err := uow.StageTargetRepository().FindOne(ctx,
		specification.ByRequestID{RequestID: request.Id},
		specification.ByStage{Stage: stage},
	)
	if err != nil {
		return nil, err
	}
	var previous *time.Time
	if existing != nil {
		prev := existing.TargetDate
		previous = &prev
	}

	now := s.now()
	target := &entity.StageTarget{
		RequestId:   request.Id,
		Stage:       stage,
		TargetDate:  targetDate,
		SetByUserId: actor.UserIdPtr(),
		SetByName:   actor.NamePtr(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.StageTargetRepository().Upsert(ctx, target); err != nil {
		return nil, fmt.Errorf("upsert stage target: %w", err)
	}
	if err := uow.StageTargetHistoryRepository().Create(ctx, &entity.StageTargetHistory{
		RequestId:       request.Id,
		Stage:           stage,
		PreviousTarget:  previous,
		NewTarget:       targetDate,
		ChangedByUserId: actor.UserIdPtr(),
		ChangedByName:   actor.NamePtr(),
		ChangedAt:       now,
	}); err != nil {
		return nil, fmt.Errorf("create stage target history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.metrics.StageTargetUpdated()
	s.notifier.PublishStageTargetUpdated(ctx, request, target, previous, actor)

	s.logger.Info("STAGE_TARGET", "Stage target set", map[string]interface{}{
		"request_id":  request.Id.String(),
		"stage":       string(stage),
		"target_date": targetDate.Format(time.RFC3339),
		"actor":       actor.UserId,
	})

	res, err := s.load(ctx, uow, request.Id)
	if err != nil {
		return nil, err
	}
	current := toStageTargetResponse(target)
	res.Target = &current
	return res, nil
}

func (s *stageTargetService) ListStageTargets(ctx context.Context, requestId uuid.UUID) (*dto.StageTargetsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.RequestRepository().Count(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperror.NotFound("request not found")
	}
	return s.load(ctx, uow, requestId)
}

func (s *stageTargetService) load(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID) (*dto.StageTargetsResponse, error) {
	targets, err := uow.StageTargetRepository().FindAll(ctx, specification.ByRequestID{RequestID: requestId})
	if err != nil {
		return nil, err
	}
	history, err := uow.StageTargetHistoryRepository().FindAll(ctx,
		specification.ByRequestID{RequestID: requestId},
		specification.OrderBy{Field: "changed_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.StageTargetsResponse{
		Targets: make([]dto.StageTargetResponse, 0, len(targets)),
		History: make([]dto.StageTargetHistoryResponse, 0, len(history)),
	}
	for _, t := range targets {
		res.Targets = append(res.Targets, toStageTargetResponse(t))
	}
	for _, h := range history {
		res.History = append(res.History, toStageTargetHistoryResponse(h))
	}
	return res, nil
}
