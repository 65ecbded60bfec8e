package model

import (
	"time"

	"github.com/google/uuid"
)

type Request struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"type:varchar(255);not null"`
	CustomerName string    `gorm:"type:varchar(255);not null"`
	ProductArea  string    `gorm:"type:varchar(32);not null;index"`
	ProductModel *string   `gorm:"type:varchar(255)"`
	Category     string    `gorm:"type:varchar(32);not null"`
	Region       *string   `gorm:"type:varchar(32)"`

	ExpectedRevenue       *int64  `gorm:"index"`
	RevenueEstimateStatus *string `gorm:"type:varchar(16)"`
	RevenueEstimateNote   *string `gorm:"type:text"`

	ImportanceFlag string `gorm:"type:varchar(16);not null"`
	RiceReach      *int
	RiceImpact     *int
	RiceConfidence *int
	RiceEffort     *int
	RiceScore      *float64

	InfluenceRevenue   *float64
	InfluenceKol       *float64
	InfluenceReuse     *float64
	InfluenceStrategic *float64
	InfluenceTender    *float64
	InfluenceScore     *float64
	InfluenceDetail    *string `gorm:"type:varchar(64)"`

	RegulatoryRequired  bool    `gorm:"not null"`
	RegulatoryRiskLevel *string `gorm:"type:varchar(16)"`
	RegulatoryNotes     *string `gorm:"type:text"`

	StrategicAlignment    *int
	ResourceEstimateWeeks *int
	KpiMetric             *string `gorm:"type:varchar(255)"`
	KpiTarget             *int
	TechnicalNotes        *string `gorm:"type:text"`

	CurrentStage  string `gorm:"type:varchar(16);not null;index"`
	CurrentStatus string `gorm:"type:varchar(64);not null"`

	CreatedByDept   string  `gorm:"type:varchar(255);not null"`
	CreatedByUserId string  `gorm:"type:varchar(64);not null;index"`
	CreatedByName   *string `gorm:"type:varchar(255)"`

	SubmittedAt      time.Time `gorm:"not null;index"`
	CustomerDeadline time.Time `gorm:"not null;index"`

	RawCustomerText string `gorm:"type:text;not null"`
	SalesSummary    string `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Request) TableName() string {
	return "requests"
}

type RequestKeyword struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId uuid.UUID `gorm:"type:uuid;not null;index"`
	Keyword   string    `gorm:"type:varchar(255);not null;index"`
}

func (RequestKeyword) TableName() string {
	return "request_keywords"
}

type RequestTechArea struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId uuid.UUID `gorm:"type:uuid;not null;index"`
	GroupName string    `gorm:"type:varchar(255);not null"`
	Code      string    `gorm:"type:varchar(64);not null"`
	Label     string    `gorm:"type:text;not null"`
}

func (RequestTechArea) TableName() string {
	return "request_tech_areas"
}

type RequestAttachment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename  string    `gorm:"type:varchar(255);not null"`
	Url       *string   `gorm:"type:text"`
}

func (RequestAttachment) TableName() string {
	return "request_attachments"
}
