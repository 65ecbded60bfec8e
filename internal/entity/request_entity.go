package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProductArea string
type Category string
type Importance string
type RevenueEstimateStatus string
type RegulatoryRiskLevel string

const (
	ProductAreaCArm        ProductArea = "C_ARM"
	ProductAreaMammo       ProductArea = "MAMMO"
	ProductAreaDental      ProductArea = "DENTAL"
	ProductAreaCArmNew     ProductArea = "C_ARM_NEW"
	ProductAreaMammoNew    ProductArea = "MAMMO_NEW"
	ProductAreaDentalNew   ProductArea = "DENTAL_NEW"
	ProductAreaNewBusiness ProductArea = "NEW_BUSINESS"

	CategoryNewProduct         Category = "NEW_PRODUCT"
	CategoryProductImprovement Category = "PRODUCT_IMPROVEMENT"
	CategoryCustomization      Category = "CUSTOMIZATION"

	ImportanceMust   Importance = "MUST"
	ImportanceShould Importance = "SHOULD"
	ImportanceNice   Importance = "NICE"

	RevenueEstimateNumeric RevenueEstimateStatus = "NUMERIC"
	RevenueEstimateUnknown RevenueEstimateStatus = "UNKNOWN"

	RegulatoryRiskLow    RegulatoryRiskLevel = "LOW"
	RegulatoryRiskMedium RegulatoryRiskLevel = "MEDIUM"
	RegulatoryRiskHigh   RegulatoryRiskLevel = "HIGH"

	DefaultStatus = "SUBMITTED"
)

// Rank orders importance flags; higher is more important.
func (i Importance) Rank() int {
	switch i {
	case ImportanceMust:
		return 3
	case ImportanceShould:
		return 2
	case ImportanceNice:
		return 1
	}
	return 0
}

type Request struct {
	Id           uuid.UUID
	Title        string
	CustomerName string
	ProductArea  ProductArea
	ProductModel *string
	Category     Category
	Region       *string

	ExpectedRevenue       *int64
	RevenueEstimateStatus *RevenueEstimateStatus
	RevenueEstimateNote   *string

	ImportanceFlag Importance
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
	InfluenceDetail    *string

	RegulatoryRequired  bool
	RegulatoryRiskLevel *RegulatoryRiskLevel
	RegulatoryNotes     *string

	StrategicAlignment    *int
	ResourceEstimateWeeks *int
	KpiMetric             *string
	KpiTarget             *int
	TechnicalNotes        *string

	CurrentStage  Stage
	CurrentStatus string

	CreatedByDept   string
	CreatedByUserId string
	CreatedByName   *string

	SubmittedAt      time.Time
	CustomerDeadline time.Time

	RawCustomerText string
	SalesSummary    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RequestKeyword struct {
	Id        uuid.UUID
	RequestId uuid.UUID
	Keyword   string
}

type RequestTechArea struct {
	Id        uuid.UUID
	RequestId uuid.UUID
	GroupName string
	Code      string
	Label     string
}

type RequestAttachment struct {
	Id        uuid.UUID
	RequestId uuid.UUID
	Filename  string
	Url       *string
}

// KeywordCount is one row of the keyword frequency statistic.
type KeywordCount struct {
	Keyword string
	Count   int64
}
