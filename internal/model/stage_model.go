package model

import (
	"time"

	"github.com/google/uuid"
)

type StageHistory struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequestId uuid.UUID  `gorm:"type:uuid;not null;index:idx_stage_histories_request_entered,priority:1"`
	Stage     string     `gorm:"type:varchar(16);not null"`
	EnteredAt time.Time  `gorm:"not null;index:idx_stage_histories_request_entered,priority:2;index:idx_stage_histories_entered_at"`
	ExitedAt  *time.Time `gorm:"index"`
}

func (StageHistory) TableName() string {
	return "stage_histories"
}

type StageTarget struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stage_targets_request_stage,priority:1"`
	Stage       string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_stage_targets_request_stage,priority:2"`
	TargetDate  time.Time `gorm:"not null"`
	SetByUserId *string   `gorm:"type:varchar(64)"`
	SetByName   *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (StageTarget) TableName() string {
	return "request_stage_targets"
}

type StageTargetHistory struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequestId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Stage           string     `gorm:"type:varchar(16);not null"`
	PreviousTarget  *time.Time
	NewTarget       time.Time `gorm:"not null"`
	ChangedByUserId *string   `gorm:"type:varchar(64)"`
	ChangedByName   *string   `gorm:"type:varchar(255)"`
	ChangedAt       time.Time `gorm:"not null;index"`
}

func (StageTargetHistory) TableName() string {
	return "request_stage_target_histories"
}
