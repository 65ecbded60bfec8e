package contract

import (
	"context"
	"time"

	"rnd-intake-be/internal/entity"

	"github.com/google/uuid"
)

// Child collections of a request are replaced wholesale, so the contracts
// only expose bulk insert, bulk delete and batch lookup.

type RequestKeywordRepository interface {
	CreateMany(ctx context.Context, keywords []*entity.RequestKeyword) error
	DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error
	FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestKeyword, error)
	CountSince(ctx context.Context, since time.Time) ([]*entity.KeywordCount, error)
}

type RequestTechAreaRepository interface {
	CreateMany(ctx context.Context, areas []*entity.RequestTechArea) error
	DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error
	FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestTechArea, error)
}

type RequestAttachmentRepository interface {
	CreateMany(ctx context.Context, attachments []*entity.RequestAttachment) error
	DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error
	FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestAttachment, error)
}

type RequestRDGroupRepository interface {
	CreateMany(ctx context.Context, links []*entity.RequestRDGroup) error
	DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error
	FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestRDGroup, error)
	CountActiveByGroup(ctx context.Context, stages []entity.Stage) ([]*entity.RDGroupLoad, error)
}
