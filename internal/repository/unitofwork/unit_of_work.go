package unitofwork

import (
	"context"

	"rnd-intake-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RequestRepository() contract.RequestRepository
	RequestKeywordRepository() contract.RequestKeywordRepository
	RequestTechAreaRepository() contract.RequestTechAreaRepository
	RequestAttachmentRepository() contract.RequestAttachmentRepository
	RequestRDGroupRepository() contract.RequestRDGroupRepository

	StageHistoryRepository() contract.StageHistoryRepository
	StageTargetRepository() contract.StageTargetRepository
	StageTargetHistoryRepository() contract.StageTargetHistoryRepository

	RDGroupRepository() contract.RDGroupRepository
	NotificationLogRepository() contract.NotificationLogRepository
}
