package implementation

import (
	"context"
	"errors"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/mapper"
	"rnd-intake-be/internal/model"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RDGroupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RDGroupMapper
}

func NewRDGroupRepository(db *gorm.DB) contract.RDGroupRepository {
	return &RDGroupRepositoryImpl{
		db:     db,
		mapper: mapper.NewRDGroupMapper(),
	}
}

func (r *RDGroupRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.Apply(db, specs...)
}

func (r *RDGroupRepositoryImpl) Create(ctx context.Context, group *entity.RDGroup) error {
	if group.Id == uuid.Nil {
		group.Id = uuid.New()
	}
	m := r.mapper.ToModel(group)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateWriteError(err)
	}
	*group = *r.mapper.ToEntity(m)
	return nil
}

func (r *RDGroupRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RDGroup, error) {
	var m model.RDGroup
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RDGroup{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RDGroupRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RDGroup, error) {
	var models []*model.RDGroup
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RDGroup{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RDGroupRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RDGroup{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
