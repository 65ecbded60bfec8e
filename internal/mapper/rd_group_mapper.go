package mapper

import (
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/model"
)

type RDGroupMapper struct{}

func NewRDGroupMapper() *RDGroupMapper {
	return &RDGroupMapper{}
}

func (m *RDGroupMapper) ToEntity(g *model.RDGroup) *entity.RDGroup {
	if g == nil {
		return nil
	}
	return &entity.RDGroup{Id: g.Id, Name: g.Name, Category: g.Category}
}

func (m *RDGroupMapper) ToModel(g *entity.RDGroup) *model.RDGroup {
	if g == nil {
		return nil
	}
	return &model.RDGroup{Id: g.Id, Name: g.Name, Category: g.Category}
}

func (m *RDGroupMapper) ToEntities(groups []*model.RDGroup) []*entity.RDGroup {
	out := make([]*entity.RDGroup, len(groups))
	for i, g := range groups {
		out[i] = m.ToEntity(g)
	}
	return out
}

func (m *RDGroupMapper) LinkToEntity(l *model.RequestRDGroup) *entity.RequestRDGroup {
	return &entity.RequestRDGroup{
		Id:        l.Id,
		RequestId: l.RequestId,
		RDGroupId: l.RDGroupId,
		Role:      entity.RDGroupRole(l.Role),
	}
}

func (m *RDGroupMapper) LinkToModel(l *entity.RequestRDGroup) *model.RequestRDGroup {
	return &model.RequestRDGroup{
		Id:        l.Id,
		RequestId: l.RequestId,
		RDGroupId: l.RDGroupId,
		Role:      string(l.Role),
	}
}
