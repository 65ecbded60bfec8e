package model

import (
	"github.com/google/uuid"
)

type RDGroup struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Category string    `gorm:"type:varchar(64);not null"`
}

func (RDGroup) TableName() string {
	return "rd_groups"
}

type RequestRDGroup struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId uuid.UUID `gorm:"type:uuid;not null;index"`
	RDGroupId uuid.UUID `gorm:"column:rd_group_id;type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(16);not null"`
}

func (RequestRDGroup) TableName() string {
	return "request_rd_groups"
}
