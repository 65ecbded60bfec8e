package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationLogResponse struct {
	Id         uuid.UUID              `json:"id"`
	EventType  string                 `json:"event_type"`
	Recipients []string               `json:"recipients"`
	Subject    string                 `json:"subject"`
	Status     string                 `json:"status"`
	Error      *string                `json:"error,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
