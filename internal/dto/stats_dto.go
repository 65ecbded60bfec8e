package dto

import (
	"rnd-intake-be/pkg/dashboard"

	"github.com/google/uuid"
)

type KeywordStatResponse struct {
	Keyword string `json:"keyword"`
	Count   int64  `json:"count"`
}

type RDGroupLoadResponse struct {
	Id             uuid.UUID `json:"id"`
	Group          string    `json:"group"`
	Category       string    `json:"category"`
	ActiveRequests int64     `json:"active_requests"`
}

type StageTransitionsResponse struct {
	WindowDays  int                `json:"window_days"`
	Transitions []dashboard.Bucket `json:"transitions"`
}

type RDGroupResponse struct {
	Id       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type CreateRDGroupRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}
