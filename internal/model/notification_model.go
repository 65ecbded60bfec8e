package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationLog records every dispatch attempt of the email sink.
type NotificationLog struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EventType  string         `gorm:"type:varchar(64);not null;index"`
	Recipients string         `gorm:"type:text"`
	Subject    string         `gorm:"type:varchar(255)"`
	Status     string         `gorm:"type:varchar(16);not null;index"`
	Error      *string        `gorm:"type:text"`
	Payload    datatypes.JSON
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
