package mapper

import (
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/model"
)

type RequestMapper struct{}

func NewRequestMapper() *RequestMapper {
	return &RequestMapper{}
}

func (m *RequestMapper) ToEntity(r *model.Request) *entity.Request {
	if r == nil {
		return nil
	}

	return &entity.Request{
		Id:                    r.Id,
		Title:                 r.Title,
		CustomerName:          r.CustomerName,
		ProductArea:           entity.ProductArea(r.ProductArea),
		ProductModel:          r.ProductModel,
		Category:              entity.Category(r.Category),
		Region:                r.Region,
		ExpectedRevenue:       r.ExpectedRevenue,
		RevenueEstimateStatus: toEnumPtr[entity.RevenueEstimateStatus](r.RevenueEstimateStatus),
		RevenueEstimateNote:   r.RevenueEstimateNote,
		ImportanceFlag:        entity.Importance(r.ImportanceFlag),
		RiceReach:             r.RiceReach,
		RiceImpact:            r.RiceImpact,
		RiceConfidence:        r.RiceConfidence,
		RiceEffort:            r.RiceEffort,
		RiceScore:             r.RiceScore,
		InfluenceRevenue:      r.InfluenceRevenue,
		InfluenceKol:          r.InfluenceKol,
		InfluenceReuse:        r.InfluenceReuse,
		InfluenceStrategic:    r.InfluenceStrategic,
		InfluenceTender:       r.InfluenceTender,
		InfluenceScore:        r.InfluenceScore,
		InfluenceDetail:       r.InfluenceDetail,
		RegulatoryRequired:    r.RegulatoryRequired,
		RegulatoryRiskLevel:   toEnumPtr[entity.RegulatoryRiskLevel](r.RegulatoryRiskLevel),
		RegulatoryNotes:       r.RegulatoryNotes,
		StrategicAlignment:    r.StrategicAlignment,
		ResourceEstimateWeeks: r.ResourceEstimateWeeks,
		KpiMetric:             r.KpiMetric,
		KpiTarget:             r.KpiTarget,
		TechnicalNotes:        r.TechnicalNotes,
		// Rows written before the RELEASE rename still carry COMPLETE.
		CurrentStage:     entity.NormalizeStage(r.CurrentStage),
		CurrentStatus:    r.CurrentStatus,
		CreatedByDept:    r.CreatedByDept,
		CreatedByUserId:  r.CreatedByUserId,
		CreatedByName:    r.CreatedByName,
		SubmittedAt:      r.SubmittedAt,
		CustomerDeadline: r.CustomerDeadline,
		RawCustomerText:  r.RawCustomerText,
		SalesSummary:     r.SalesSummary,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (m *RequestMapper) ToModel(r *entity.Request) *model.Request {
	if r == nil {
		return nil
	}

	return &model.Request{
		Id:                    r.Id,
		Title:                 r.Title,
		CustomerName:          r.CustomerName,
		ProductArea:           string(r.ProductArea),
		ProductModel:          r.ProductModel,
		Category:              string(r.Category),
		Region:                r.Region,
		ExpectedRevenue:       r.ExpectedRevenue,
		RevenueEstimateStatus: fromEnumPtr(r.RevenueEstimateStatus),
		RevenueEstimateNote:   r.RevenueEstimateNote,
		ImportanceFlag:        string(r.ImportanceFlag),
		RiceReach:             r.RiceReach,
		RiceImpact:            r.RiceImpact,
		RiceConfidence:        r.RiceConfidence,
		RiceEffort:            r.RiceEffort,
		RiceScore:             r.RiceScore,
		InfluenceRevenue:      r.InfluenceRevenue,
		InfluenceKol:          r.InfluenceKol,
		InfluenceReuse:        r.InfluenceReuse,
		InfluenceStrategic:    r.InfluenceStrategic,
		InfluenceTender:       r.InfluenceTender,
		InfluenceScore:        r.InfluenceScore,
		InfluenceDetail:       r.InfluenceDetail,
		RegulatoryRequired:    r.RegulatoryRequired,
		RegulatoryRiskLevel:   fromEnumPtr(r.RegulatoryRiskLevel),
		RegulatoryNotes:       r.RegulatoryNotes,
		StrategicAlignment:    r.StrategicAlignment,
		ResourceEstimateWeeks: r.ResourceEstimateWeeks,
		KpiMetric:             r.KpiMetric,
		KpiTarget:             r.KpiTarget,
		TechnicalNotes:        r.TechnicalNotes,
		CurrentStage:          string(entity.NormalizeStage(string(r.CurrentStage))),
		CurrentStatus:         r.CurrentStatus,
		CreatedByDept:         r.CreatedByDept,
		CreatedByUserId:       r.CreatedByUserId,
		CreatedByName:         r.CreatedByName,
		SubmittedAt:           r.SubmittedAt,
		CustomerDeadline:      r.CustomerDeadline,
		RawCustomerText:       r.RawCustomerText,
		SalesSummary:          r.SalesSummary,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

func (m *RequestMapper) ToEntities(requests []*model.Request) []*entity.Request {
	entities := make([]*entity.Request, len(requests))
	for i, r := range requests {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *RequestMapper) KeywordToEntity(k *model.RequestKeyword) *entity.RequestKeyword {
	return &entity.RequestKeyword{Id: k.Id, RequestId: k.RequestId, Keyword: k.Keyword}
}

func (m *RequestMapper) KeywordToModel(k *entity.RequestKeyword) *model.RequestKeyword {
	return &model.RequestKeyword{Id: k.Id, RequestId: k.RequestId, Keyword: k.Keyword}
}

func (m *RequestMapper) TechAreaToEntity(t *model.RequestTechArea) *entity.RequestTechArea {
	return &entity.RequestTechArea{Id: t.Id, RequestId: t.RequestId, GroupName: t.GroupName, Code: t.Code, Label: t.Label}
}

func (m *RequestMapper) TechAreaToModel(t *entity.RequestTechArea) *model.RequestTechArea {
	return &model.RequestTechArea{Id: t.Id, RequestId: t.RequestId, GroupName: t.GroupName, Code: t.Code, Label: t.Label}
}

func (m *RequestMapper) AttachmentToEntity(a *model.RequestAttachment) *entity.RequestAttachment {
	return &entity.RequestAttachment{Id: a.Id, RequestId: a.RequestId, Filename: a.Filename, Url: a.Url}
}

func (m *RequestMapper) AttachmentToModel(a *entity.RequestAttachment) *model.RequestAttachment {
	return &model.RequestAttachment{Id: a.Id, RequestId: a.RequestId, Filename: a.Filename, Url: a.Url}
}

func toEnumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func fromEnumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
