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

type RequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewRequestRepository(db *gorm.DB) contract.RequestRepository {
	return &RequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewRequestMapper(),
	}
}

func (r *RequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.Apply(db, specs...)
}

func (r *RequestRepositoryImpl) Create(ctx context.Context, request *entity.Request) error {
	if request.Id == uuid.Nil {
		request.Id = uuid.New()
	}
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RequestRepositoryImpl) Update(ctx context.Context, request *entity.Request) error {
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *RequestRepositoryImpl) UpdateStage(ctx context.Context, id uuid.UUID, stage entity.Stage) error {
	return r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ?", id).
		Update("current_stage", string(entity.NormalizeStage(string(stage)))).Error
}

func (r *RequestRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Request{}, "id = ?", id).Error
}

func (r *RequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Request, error) {
	var m model.Request
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Request{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Request, error) {
	var models []*model.Request
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Request{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Request{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
