package mapper

import (
	"encoding/json"
	"strings"

	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/model"

	"gorm.io/datatypes"
)

// NotificationMapper stores recipients comma-joined and the payload as JSON.
type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(l *model.NotificationLog) *entity.NotificationLog {
	if l == nil {
		return nil
	}

	var recipients []string
	if l.Recipients != "" {
		recipients = strings.Split(l.Recipients, ",")
	}

	var payload map[string]interface{}
	if len(l.Payload) > 0 {
		// a corrupt payload still yields the rest of the row
		_ = json.Unmarshal(l.Payload, &payload)
	}

	return &entity.NotificationLog{
		Id:         l.Id,
		EventType:  l.EventType,
		Recipients: recipients,
		Subject:    l.Subject,
		Status:     entity.NotificationStatus(l.Status),
		Error:      l.Error,
		Payload:    payload,
		CreatedAt:  l.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(l *entity.NotificationLog) (*model.NotificationLog, error) {
	if l == nil {
		return nil, nil
	}

	out := &model.NotificationLog{
		Id:         l.Id,
		EventType:  l.EventType,
		Recipients: strings.Join(l.Recipients, ","),
		Subject:    l.Subject,
		Status:     string(l.Status),
		Error:      l.Error,
		CreatedAt:  l.CreatedAt,
	}
	if l.Payload != nil {
		raw, err := json.Marshal(l.Payload)
		if err != nil {
			return nil, err
		}
		out.Payload = datatypes.JSON(raw)
	}
	return out, nil
}

func (m *NotificationMapper) ToEntities(logs []*model.NotificationLog) []*entity.NotificationLog {
	out := make([]*entity.NotificationLog, len(logs))
	for i, l := range logs {
		out[i] = m.ToEntity(l)
	}
	return out
}
