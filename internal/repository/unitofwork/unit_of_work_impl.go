package unitofwork

import (
	"context"
	"fmt"

	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) RequestRepository() contract.RequestRepository {
	return implementation.NewRequestRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RequestKeywordRepository() contract.RequestKeywordRepository {
	return implementation.NewRequestKeywordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RequestTechAreaRepository() contract.RequestTechAreaRepository {
	return implementation.NewRequestTechAreaRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RequestAttachmentRepository() contract.RequestAttachmentRepository {
	return implementation.NewRequestAttachmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RequestRDGroupRepository() contract.RequestRDGroupRepository {
	return implementation.NewRequestRDGroupRepository(u.getDB())
}

func (u *UnitOfWorkImpl) StageHistoryRepository() contract.StageHistoryRepository {
	return implementation.NewStageHistoryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) StageTargetRepository() contract.StageTargetRepository {
	return implementation.NewStageTargetRepository(u.getDB())
}

func (u *UnitOfWorkImpl) StageTargetHistoryRepository() contract.StageTargetHistoryRepository {
	return implementation.NewStageTargetHistoryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RDGroupRepository() contract.RDGroupRepository {
	return implementation.NewRDGroupRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationLogRepository() contract.NotificationLogRepository {
	return implementation.NewNotificationLogRepository(u.getDB())
}
