package contract

import (
	"context"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/repository/specification"
)

type RDGroupRepository interface {
	Create(ctx context.Context, group *entity.RDGroup) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RDGroup, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RDGroup, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
