package contract

import (
	"context"
	"time"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/repository/specification"

	"github.com/google/uuid"
)

type StageHistoryRepository interface {
	Create(ctx context.Context, history *entity.StageHistory) error
	// CloseOpen stamps exited_at on every open row of the request and
	// returns how many rows it touched.
	CloseOpen(ctx context.Context, requestId uuid.UUID, exitedAt time.Time) (int64, error)
	DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StageHistory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type StageTargetRepository interface {
	Upsert(ctx context.Context, target *entity.StageTarget) error
	DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StageTarget, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StageTarget, error)
}

type StageTargetHistoryRepository interface {
	Create(ctx context.Context, history *entity.StageTargetHistory) error
	DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StageTargetHistory, error)
}
