package contract

import (
	"context"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/repository/specification"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, log *entity.NotificationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotificationLog, error)
}
