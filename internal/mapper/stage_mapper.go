package mapper

import (
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/model"
)

// StageMapper converts stage history and stage target rows. Stage names are
// normalized on the way in and out so legacy COMPLETE rows read as RELEASE.
type StageMapper struct{}

func NewStageMapper() *StageMapper {
	return &StageMapper{}
}

func (m *StageMapper) HistoryToEntity(h *model.StageHistory) *entity.StageHistory {
	if h == nil {
		return nil
	}
	return &entity.StageHistory{
		Id:        h.Id,
		RequestId: h.RequestId,
		Stage:     entity.NormalizeStage(h.Stage),
		EnteredAt: h.EnteredAt,
		ExitedAt:  h.ExitedAt,
	}
}

func (m *StageMapper) HistoryToModel(h *entity.StageHistory) *model.StageHistory {
	if h == nil {
		return nil
	}
	return &model.StageHistory{
		Id:        h.Id,
		RequestId: h.RequestId,
		Stage:     string(entity.NormalizeStage(string(h.Stage))),
		EnteredAt: h.EnteredAt,
		ExitedAt:  h.ExitedAt,
	}
}

func (m *StageMapper) HistoriesToEntities(rows []*model.StageHistory) []*entity.StageHistory {
	out := make([]*entity.StageHistory, len(rows))
	for i, h := range rows {
		out[i] = m.HistoryToEntity(h)
	}
	return out
}

func (m *StageMapper) TargetToEntity(t *model.StageTarget) *entity.StageTarget {
	if t == nil {
		return nil
	}
	return &entity.StageTarget{
		Id:          t.Id,
		RequestId:   t.RequestId,
		Stage:       entity.NormalizeStage(t.Stage),
		TargetDate:  t.TargetDate,
		SetByUserId: t.SetByUserId,
		SetByName:   t.SetByName,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *StageMapper) TargetToModel(t *entity.StageTarget) *model.StageTarget {
	if t == nil {
		return nil
	}
	return &model.StageTarget{
		Id:          t.Id,
		RequestId:   t.RequestId,
		Stage:       string(entity.NormalizeStage(string(t.Stage))),
		TargetDate:  t.TargetDate,
		SetByUserId: t.SetByUserId,
		SetByName:   t.SetByName,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (m *StageMapper) TargetsToEntities(rows []*model.StageTarget) []*entity.StageTarget {
	out := make([]*entity.StageTarget, len(rows))
	for i, t := range rows {
		out[i] = m.TargetToEntity(t)
	}
	return out
}

func (m *StageMapper) TargetHistoryToEntity(h *model.StageTargetHistory) *entity.StageTargetHistory {
	if h == nil {
		return nil
	}
	return &entity.StageTargetHistory{
		Id:              h.Id,
		RequestId:       h.RequestId,
		Stage:           entity.NormalizeStage(h.Stage),
		PreviousTarget:  h.PreviousTarget,
		NewTarget:       h.NewTarget,
		ChangedByUserId: h.ChangedByUserId,
		ChangedByName:   h.ChangedByName,
		ChangedAt:       h.ChangedAt,
	}
}

func (m *StageMapper) TargetHistoryToModel(h *entity.StageTargetHistory) *model.StageTargetHistory {
	if h == nil {
		return nil
	}
	return &model.StageTargetHistory{
		Id:              h.Id,
		RequestId:       h.RequestId,
		Stage:           string(entity.NormalizeStage(string(h.Stage))),
		PreviousTarget:  h.PreviousTarget,
		NewTarget:       h.NewTarget,
		ChangedByUserId: h.ChangedByUserId,
		ChangedByName:   h.ChangedByName,
		ChangedAt:       h.ChangedAt,
	}
}

func (m *StageMapper) TargetHistoriesToEntities(rows []*model.StageTargetHistory) []*entity.StageTargetHistory {
	out := make([]*entity.StageTargetHistory, len(rows))
	for i, h := range rows {
		out[i] = m.TargetHistoryToEntity(h)
	}
	return out
}
