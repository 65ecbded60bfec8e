package service

import (
	"context"
	"fmt"
	"time"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// StageChange describes one committed transition, for metrics.
type StageChange struct {
	RequestId uuid.UUID
	From      entity.Stage
	To        entity.Stage
	At        time.Time
}

// ChangeStage moves request to newStage inside the caller's transaction:
// the request row is updated, every open history row is closed at now and a
// new open row is appended. request.CurrentStage is updated in place.
func ChangeStage(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.Request, newStage entity.Stage, now time.Time) (*StageChange, error) {
	to := entity.NormalizeStage(string(newStage))
	if !to.IsValid() {
		return nil, apperror.Validation("unknown stage %q", string(newStage))
	}
	from := entity.NormalizeStage(string(request.CurrentStage))
	if from == to {
		return nil, apperror.Validation("request is already in stage %s", to)
	}

	if err := uow.RequestRepository().UpdateStage(ctx, request.Id, to); err != nil {
		return nil, fmt.Errorf("update current stage: %w", err)
	}
	if _, err := uow.StageHistoryRepository().CloseOpen(ctx, request.Id, now); err != nil {
		return nil, fmt.Errorf("close open stage history: %w", err)
	}
	if err := uow.StageHistoryRepository().Create(ctx, &entity.StageHistory{
		RequestId: request.Id,
		Stage:     to,
		EnteredAt: now,
	}); err != nil {
		return nil, fmt.Errorf("append stage history: %w", err)
	}

	request.CurrentStage = to
	return &StageChange{RequestId: request.Id, From: from, To: to, At: now}, nil
}
