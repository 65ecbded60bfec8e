package service

import (
	"context"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// requestChildren groups every child row of a batch of requests by request id.
type requestChildren struct {
	keywords      map[uuid.UUID][]string
	rdGroups      map[uuid.UUID][]dto.RequestRDGroupResponse
	techAreas     map[uuid.UUID][]dto.TechAreaResponse
	attachments   map[uuid.UUID][]dto.AttachmentResponse
	history       map[uuid.UUID][]dto.StageHistoryResponse
	targets       map[uuid.UUID][]dto.StageTargetResponse
	targetHistory map[uuid.UUID][]dto.StageTargetHistoryResponse
}

// loadChildren batch-loads the child collections of requests. Stage targets
// and their history are only loaded for detail views.
func loadChildren(ctx context.Context, uow unitofwork.UnitOfWork, requests []*entity.Request, withTargets bool) (*requestChildren, error) {
	c := &requestChildren{
		keywords:      make(map[uuid.UUID][]string),
		rdGroups:      make(map[uuid.UUID][]dto.RequestRDGroupResponse),
		techAreas:     make(map[uuid.UUID][]dto.TechAreaResponse),
		attachments:   make(map[uuid.UUID][]dto.AttachmentResponse),
		history:       make(map[uuid.UUID][]dto.StageHistoryResponse),
		targets:       make(map[uuid.UUID][]dto.StageTargetResponse),
		targetHistory: make(map[uuid.UUID][]dto.StageTargetHistoryResponse),
	}
	if len(requests) == 0 {
		return c, nil
	}

	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.Id
	}

	keywords, err := uow.RequestKeywordRepository().FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, k := range keywords {
		c.keywords[k.RequestId] = append(c.keywords[k.RequestId], k.Keyword)
	}

	links, err := uow.RequestRDGroupRepository().FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		groupIds := make([]uuid.UUID, 0, len(links))
		for _, l := range links {
			groupIds = append(groupIds, l.RDGroupId)
		}
		groups, err := uow.RDGroupRepository().FindAll(ctx, specification.ByIDs{IDs: groupIds})
		if err != nil {
			return nil, err
		}
		byId := make(map[uuid.UUID]*entity.RDGroup, len(groups))
		for _, g := range groups {
			byId[g.Id] = g
		}
		for _, l := range links {
			res := dto.RequestRDGroupResponse{Id: l.Id, RDGroupId: l.RDGroupId, Role: string(l.Role)}
			if g, ok := byId[l.RDGroupId]; ok {
				res.Name = g.Name
				res.Category = g.Category
			}
			c.rdGroups[l.RequestId] = append(c.rdGroups[l.RequestId], res)
		}
	}

	areas, err := uow.RequestTechAreaRepository().FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range areas {
		c.techAreas[a.RequestId] = append(c.techAreas[a.RequestId], dto.TechAreaResponse{
			GroupName: a.GroupName,
			Code:      a.Code,
			Label:     a.Label,
		})
	}

	attachments, err := uow.RequestAttachmentRepository().FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range attachments {
		c.attachments[a.RequestId] = append(c.attachments[a.RequestId], dto.AttachmentResponse{
			Id:       a.Id,
			Filename: a.Filename,
			Url:      a.Url,
		})
	}

	history, err := uow.StageHistoryRepository().FindAll(ctx,
		specification.ByRequestIDs{RequestIDs: ids},
		specification.OrderBy{Field: "entered_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	for _, h := range history {
		c.history[h.RequestId] = append(c.history[h.RequestId], toStageHistoryResponse(h))
	}

	if !withTargets {
		return c, nil
	}

	targets, err := uow.StageTargetRepository().FindAll(ctx, specification.ByRequestIDs{RequestIDs: ids})
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		c.targets[t.RequestId] = append(c.targets[t.RequestId], toStageTargetResponse(t))
	}

	targetHistory, err := uow.StageTargetHistoryRepository().FindAll(ctx,
		specification.ByRequestIDs{RequestIDs: ids},
		specification.OrderBy{Field: "changed_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	for _, h := range targetHistory {
		c.targetHistory[h.RequestId] = append(c.targetHistory[h.RequestId], toStageTargetHistoryResponse(h))
	}

	return c, nil
}

func (c *requestChildren) response(r *entity.Request) *dto.RequestResponse {
	res := toRequestResponse(r)
	res.Keywords = orEmpty(c.keywords[r.Id])
	res.RDGroups = orEmpty(c.rdGroups[r.Id])
	res.TechAreas = orEmpty(c.techAreas[r.Id])
	res.Attachments = orEmpty(c.attachments[r.Id])
	res.StageHistory = orEmpty(c.history[r.Id])
	res.StageTargets = c.targets[r.Id]
	res.StageTargetHistory = c.targetHistory[r.Id]
	return res
}

func (c *requestChildren) responses(requests []*entity.Request) []*dto.RequestResponse {
	out := make([]*dto.RequestResponse, len(requests))
	for i, r := range requests {
		out[i] = c.response(r)
	}
	return out
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func toRequestResponse(r *entity.Request) *dto.RequestResponse {
	return &dto.RequestResponse{
		Id:                    r.Id,
		Title:                 r.Title,
		CustomerName:          r.CustomerName,
		ProductArea:           string(r.ProductArea),
		ProductModel:          r.ProductModel,
		Category:              string(r.Category),
		Region:                r.Region,
		ExpectedRevenue:       r.ExpectedRevenue,
		RevenueEstimateStatus: enumString(r.RevenueEstimateStatus),
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
		RegulatoryRiskLevel:   enumString(r.RegulatoryRiskLevel),
		RegulatoryNotes:       r.RegulatoryNotes,
		StrategicAlignment:    r.StrategicAlignment,
		ResourceEstimateWeeks: r.ResourceEstimateWeeks,
		KpiMetric:             r.KpiMetric,
		KpiTarget:             r.KpiTarget,
		TechnicalNotes:        r.TechnicalNotes,
		CurrentStage:          string(r.CurrentStage),
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

func toStageHistoryResponse(h *entity.StageHistory) dto.StageHistoryResponse {
	return dto.StageHistoryResponse{
		Id:        h.Id,
		Stage:     string(h.Stage),
		EnteredAt: h.EnteredAt,
		ExitedAt:  h.ExitedAt,
	}
}

func toStageTargetResponse(t *entity.StageTarget) dto.StageTargetResponse {
	return dto.StageTargetResponse{
		Id:          t.Id,
		Stage:       string(t.Stage),
		TargetDate:  t.TargetDate,
		SetByUserId: t.SetByUserId,
		SetByName:   t.SetByName,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toStageTargetHistoryResponse(h *entity.StageTargetHistory) dto.StageTargetHistoryResponse {
	return dto.StageTargetHistoryResponse{
		Id:              h.Id,
		Stage:           string(h.Stage),
		PreviousTarget:  h.PreviousTarget,
		NewTarget:       h.NewTarget,
		ChangedByUserId: h.ChangedByUserId,
		ChangedByName:   h.ChangedByName,
		ChangedAt:       h.ChangedAt,
	}
}

func enumString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
