package implementation

import (
	"context"
	"errors"
	"time"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/mapper"
	"rnd-intake-be/internal/model"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func applyStageSpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.Apply(db, specs...)
}

// ============================================================================
// Stage history
// ============================================================================

type StageHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StageMapper
}

func NewStageHistoryRepository(db *gorm.DB) contract.StageHistoryRepository {
	return &StageHistoryRepositoryImpl{db: db, mapper: mapper.NewStageMapper()}
}

func (r *StageHistoryRepositoryImpl) Create(ctx context.Context, history *entity.StageHistory) error {
	if history.Id == uuid.Nil {
		history.Id = uuid.New()
	}
	m := r.mapper.HistoryToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.HistoryToEntity(m)
	return nil
}

func (r *StageHistoryRepositoryImpl) CloseOpen(ctx context.Context, requestId uuid.UUID, exitedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.StageHistory{}).
		Where("request_id = ? AND exited_at IS NULL", requestId).
		Update("exited_at", exitedAt)
	return result.RowsAffected, result.Error
}

func (r *StageHistoryRepositoryImpl) DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestId).Delete(&model.StageHistory{}).Error
}

func (r *StageHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StageHistory, error) {
	var models []*model.StageHistory
	query := applyStageSpecifications(r.db.WithContext(ctx).Model(&model.StageHistory{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.HistoriesToEntities(models), nil
}

func (r *StageHistoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applyStageSpecifications(r.db.WithContext(ctx).Model(&model.StageHistory{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ============================================================================
// Stage targets
// ============================================================================

type StageTargetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StageMapper
}

func NewStageTargetRepository(db *gorm.DB) contract.StageTargetRepository {
	return &StageTargetRepositoryImpl{db: db, mapper: mapper.NewStageMapper()}
}

// Upsert writes the target for (request_id, stage). On conflict the
// existing row keeps its id and created_at; target is reloaded either way.
func (r *StageTargetRepositoryImpl) Upsert(ctx context.Context, target *entity.StageTarget) error {
	if target.Id == uuid.Nil {
		target.Id = uuid.New()
	}
	now := time.Now().UTC()
	m := r.mapper.TargetToModel(target)
	m.CreatedAt = now
	m.UpdatedAt = now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "request_id"}, {Name: "stage"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"target_date",
			"set_by_user_id",
			"set_by_name",
			"updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	var stored model.StageTarget
	if err := r.db.WithContext(ctx).
		Where("request_id = ? AND stage = ?", m.RequestId, m.Stage).
		First(&stored).Error; err != nil {
		return err
	}
	*target = *r.mapper.TargetToEntity(&stored)
	return nil
}

func (r *StageTargetRepositoryImpl) DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestId).Delete(&model.StageTarget{}).Error
}

func (r *StageTargetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StageTarget, error) {
	var m model.StageTarget
	query := applyStageSpecifications(r.db.WithContext(ctx).Model(&model.StageTarget{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TargetToEntity(&m), nil
}

func (r *StageTargetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StageTarget, error) {
	var models []*model.StageTarget
	query := applyStageSpecifications(r.db.WithContext(ctx).Model(&model.StageTarget{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TargetsToEntities(models), nil
}

// ============================================================================
// Stage target history
// ============================================================================

type StageTargetHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StageMapper
}

func NewStageTargetHistoryRepository(db *gorm.DB) contract.StageTargetHistoryRepository {
	return &StageTargetHistoryRepositoryImpl{db: db, mapper: mapper.NewStageMapper()}
}

func (r *StageTargetHistoryRepositoryImpl) Create(ctx context.Context, history *entity.StageTargetHistory) error {
	if history.Id == uuid.Nil {
		history.Id = uuid.New()
	}
	m := r.mapper.TargetHistoryToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.TargetHistoryToEntity(m)
	return nil
}

func (r *StageTargetHistoryRepositoryImpl) DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestId).Delete(&model.StageTargetHistory{}).Error
}

func (r *StageTargetHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StageTargetHistory, error) {
	var models []*model.StageTargetHistory
	query := applyStageSpecifications(r.db.WithContext(ctx).Model(&model.StageTargetHistory{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TargetHistoriesToEntities(models), nil
}
