package implementation

import (
	"context"
	"fmt"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/mapper"
	"rnd-intake-be/internal/model"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationLogRepository(db *gorm.DB) contract.NotificationLogRepository {
	return &NotificationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationLogRepositoryImpl) Create(ctx context.Context, log *entity.NotificationLog) error {
	if log.Id == uuid.Nil {
		log.Id = uuid.New()
	}
	m, err := r.mapper.ToModel(log)
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *NotificationLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotificationLog, error) {
	var logs []*model.NotificationLog
	query := specification.Apply(r.db.WithContext(ctx).Model(&model.NotificationLog{}), specs...)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(logs), nil
}
