package contract

import (
	"context"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request) error
	Update(ctx context.Context, request *entity.Request) error
	UpdateStage(ctx context.Context, id uuid.UUID, stage entity.Stage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Request, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Request, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
