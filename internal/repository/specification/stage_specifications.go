package specification

import (
	"time"

	"rnd-intake-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRequestID struct {
	RequestID uuid.UUID
}

func (s ByRequestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("request_id = ?", s.RequestID)
}

type ByRequestIDs struct {
	RequestIDs []uuid.UUID
}

func (s ByRequestIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("request_id IN ?", s.RequestIDs)
}

type ByStage struct {
	Stage entity.Stage
}

func (s ByStage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stage = ?", string(s.Stage))
}

type EnteredSince struct {
	Since time.Time
}

func (s EnteredSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entered_at >= ?", s.Since)
}

type OpenStage struct{}

func (s OpenStage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("exited_at IS NULL")
}
