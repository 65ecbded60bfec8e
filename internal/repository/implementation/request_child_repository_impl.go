package implementation

import (
	"context"
	"time"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/mapper"
	"rnd-intake-be/internal/model"
	"rnd-intake-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================================
// Keywords
// ============================================================================

type RequestKeywordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewRequestKeywordRepository(db *gorm.DB) contract.RequestKeywordRepository {
	return &RequestKeywordRepositoryImpl{db: db, mapper: mapper.NewRequestMapper()}
}

func (r *RequestKeywordRepositoryImpl) CreateMany(ctx context.Context, keywords []*entity.RequestKeyword) error {
	if len(keywords) == 0 {
		return nil
	}
	models := make([]*model.RequestKeyword, len(keywords))
	for i, k := range keywords {
		if k.Id == uuid.Nil {
			k.Id = uuid.New()
		}
		models[i] = r.mapper.KeywordToModel(k)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *RequestKeywordRepositoryImpl) DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestId).Delete(&model.RequestKeyword{}).Error
}

func (r *RequestKeywordRepositoryImpl) FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestKeyword, error) {
	if len(requestIds) == 0 {
		return nil, nil
	}
	var models []*model.RequestKeyword
	if err := r.db.WithContext(ctx).Where("request_id IN ?", requestIds).Order("keyword ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.RequestKeyword, len(models))
	for i, m := range models {
		out[i] = r.mapper.KeywordToEntity(m)
	}
	return out, nil
}

func (r *RequestKeywordRepositoryImpl) CountSince(ctx context.Context, since time.Time) ([]*entity.KeywordCount, error) {
	var rows []struct {
		Keyword string
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Table("request_keywords").
		Select("request_keywords.keyword AS keyword, COUNT(*) AS count").
		Joins("JOIN requests ON requests.id = request_keywords.request_id").
		Where("requests.submitted_at >= ?", since).
		Group("request_keywords.keyword").
		Order("count DESC, keyword ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.KeywordCount, len(rows))
	for i, row := range rows {
		out[i] = &entity.KeywordCount{Keyword: row.Keyword, Count: row.Count}
	}
	return out, nil
}

// ============================================================================
// Tech areas
// ============================================================================

type RequestTechAreaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewRequestTechAreaRepository(db *gorm.DB) contract.RequestTechAreaRepository {
	return &RequestTechAreaRepositoryImpl{db: db, mapper: mapper.NewRequestMapper()}
}

func (r *RequestTechAreaRepositoryImpl) CreateMany(ctx context.Context, areas []*entity.RequestTechArea) error {
	if len(areas) == 0 {
		return nil
	}
	models := make([]*model.RequestTechArea, len(areas))
	for i, a := range areas {
		if a.Id == uuid.Nil {
			a.Id = uuid.New()
		}
		models[i] = r.mapper.TechAreaToModel(a)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *RequestTechAreaRepositoryImpl) DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestId).Delete(&model.RequestTechArea{}).Error
}

func (r *RequestTechAreaRepositoryImpl) FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestTechArea, error) {
	if len(requestIds) == 0 {
		return nil, nil
	}
	var models []*model.RequestTechArea
	if err := r.db.WithContext(ctx).Where("request_id IN ?", requestIds).Order("group_name ASC, code ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.RequestTechArea, len(models))
	for i, m := range models {
		out[i] = r.mapper.TechAreaToEntity(m)
	}
	return out, nil
}

// ============================================================================
// Attachments
// ============================================================================

type RequestAttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RequestMapper
}

func NewRequestAttachmentRepository(db *gorm.DB) contract.RequestAttachmentRepository {
	return &RequestAttachmentRepositoryImpl{db: db, mapper: mapper.NewRequestMapper()}
}

func (r *RequestAttachmentRepositoryImpl) CreateMany(ctx context.Context, attachments []*entity.RequestAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	models := make([]*model.RequestAttachment, len(attachments))
	for i, a := range attachments {
		if a.Id == uuid.Nil {
			a.Id = uuid.New()
		}
		models[i] = r.mapper.AttachmentToModel(a)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *RequestAttachmentRepositoryImpl) DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestId).Delete(&model.RequestAttachment{}).Error
}

func (r *RequestAttachmentRepositoryImpl) FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestAttachment, error) {
	if len(requestIds) == 0 {
		return nil, nil
	}
	var models []*model.RequestAttachment
	if err := r.db.WithContext(ctx).Where("request_id IN ?", requestIds).Order("filename ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.RequestAttachment, len(models))
	for i, m := range models {
		out[i] = r.mapper.AttachmentToEntity(m)
	}
	return out, nil
}

// ============================================================================
// RD group links
// ============================================================================

type RequestRDGroupRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RDGroupMapper
}

func NewRequestRDGroupRepository(db *gorm.DB) contract.RequestRDGroupRepository {
	return &RequestRDGroupRepositoryImpl{db: db, mapper: mapper.NewRDGroupMapper()}
}

func (r *RequestRDGroupRepositoryImpl) CreateMany(ctx context.Context, links []*entity.RequestRDGroup) error {
	if len(links) == 0 {
		return nil
	}
	models := make([]*model.RequestRDGroup, len(links))
	for i, l := range links {
		if l.Id == uuid.Nil {
			l.Id = uuid.New()
		}
		models[i] = r.mapper.LinkToModel(l)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *RequestRDGroupRepositoryImpl) DeleteByRequestID(ctx context.Context, requestId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("request_id = ?", requestId).Delete(&model.RequestRDGroup{}).Error
}

func (r *RequestRDGroupRepositoryImpl) FindByRequestIDs(ctx context.Context, requestIds []uuid.UUID) ([]*entity.RequestRDGroup, error) {
	if len(requestIds) == 0 {
		return nil, nil
	}
	var models []*model.RequestRDGroup
	if err := r.db.WithContext(ctx).Where("request_id IN ?", requestIds).Order("role ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.RequestRDGroup, len(models))
	for i, m := range models {
		out[i] = r.mapper.LinkToEntity(m)
	}
	return out, nil
}

// CountActiveByGroup returns one row per RD group, including groups with no
// active work.
func (r *RequestRDGroupRepositoryImpl) CountActiveByGroup(ctx context.Context, stages []entity.Stage) ([]*entity.RDGroupLoad, error) {
	values := make([]string, len(stages))
	for i, s := range stages {
		values[i] = string(s)
	}

	var rows []struct {
		RDGroupId      uuid.UUID `gorm:"column:rd_group_id"`
		Name           string    `gorm:"column:name"`
		Category       string    `gorm:"column:category"`
		ActiveRequests int64     `gorm:"column:active_requests"`
	}
	err := r.db.WithContext(ctx).
		Table("rd_groups").
		Select("rd_groups.id AS rd_group_id, rd_groups.name AS name, rd_groups.category AS category, COUNT(DISTINCT requests.id) AS active_requests").
		Joins("LEFT JOIN request_rd_groups ON request_rd_groups.rd_group_id = rd_groups.id").
		Joins("LEFT JOIN requests ON requests.id = request_rd_groups.request_id AND requests.current_stage IN ?", values).
		Group("rd_groups.id, rd_groups.name, rd_groups.category").
		Order("rd_groups.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.RDGroupLoad, len(rows))
	for i, row := range rows {
		out[i] = &entity.RDGroupLoad{
			RDGroupId:      row.RDGroupId,
			Name:           row.Name,
			Category:       row.Category,
			ActiveRequests: row.ActiveRequests,
		}
	}
	return out, nil
}
