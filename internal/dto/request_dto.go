package dto

import (
	"time"

	"github.com/google/uuid"
)

type TechAreaInput struct {
	GroupName string `json:"group_name" validate:"required"`
	Code      string `json:"code" validate:"required"`
	Label     string `json:"label"`
}

type AttachmentInput struct {
	Filename string  `json:"filename" validate:"required"`
	Url      *string `json:"url"`
}

type CreateRequestRequest struct {
	Title        string  `json:"title" validate:"required"`
	CustomerName string  `json:"customer_name" validate:"required"`
	ProductArea  string  `json:"product_area" validate:"required,oneof=C_ARM MAMMO DENTAL C_ARM_NEW MAMMO_NEW DENTAL_NEW NEW_BUSINESS"`
	ProductModel *string `json:"product_model"`
	Category     string  `json:"category" validate:"omitempty,oneof=NEW_PRODUCT PRODUCT_IMPROVEMENT CUSTOMIZATION"`
	Region       *string `json:"region"`

	ExpectedRevenue       *int64  `json:"expected_revenue" validate:"omitempty,min=0"`
	RevenueEstimateStatus *string `json:"revenue_estimate_status" validate:"omitempty,oneof=NUMERIC UNKNOWN"`
	RevenueEstimateNote   *string `json:"revenue_estimate_note"`

	ImportanceFlag string `json:"importance_flag" validate:"omitempty,oneof=MUST SHOULD NICE"`
	RiceReach      *int   `json:"rice_reach" validate:"omitempty,gt=0"`
	RiceImpact     *int   `json:"rice_impact" validate:"omitempty,gt=0"`
	RiceConfidence *int   `json:"rice_confidence" validate:"omitempty,gt=0"`
	RiceEffort     *int   `json:"rice_effort" validate:"omitempty,gt=0"`

	InfluenceRevenue   *float64 `json:"influence_revenue"`
	InfluenceKol       *float64 `json:"influence_kol"`
	InfluenceReuse     *float64 `json:"influence_reuse"`
	InfluenceStrategic *float64 `json:"influence_strategic"`
	InfluenceTender    *float64 `json:"influence_tender"`

	RegulatoryRequired  *bool   `json:"regulatory_required"`
	RegulatoryRiskLevel *string `json:"regulatory_risk_level" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	RegulatoryNotes     *string `json:"regulatory_notes"`

	StrategicAlignment    *int    `json:"strategic_alignment" validate:"omitempty,gt=0"`
	ResourceEstimateWeeks *int    `json:"resource_estimate_weeks" validate:"omitempty,gt=0"`
	KpiMetric             *string `json:"kpi_metric"`
	KpiTarget             *int    `json:"kpi_target" validate:"omitempty,gt=0"`
	TechnicalNotes        *string `json:"technical_notes"`

	CustomerDeadline *string `json:"customer_deadline"`
	CurrentStatus    *string `json:"current_status"`
	CreatedByDept    *string `json:"created_by_dept"`
	CreatedByUserId  *string `json:"created_by_user_id"`
	CreatedByName    *string `json:"created_by_name"`

	RawCustomerText string `json:"raw_customer_text" validate:"required"`
	SalesSummary    string `json:"sales_summary" validate:"required"`

	RDGroupIds        []uuid.UUID       `json:"rd_group_ids"`
	SupportRDGroupIds []uuid.UUID       `json:"support_rd_group_ids"`
	Keywords          []string          `json:"keywords"`
	TechAreas         []TechAreaInput   `json:"tech_areas" validate:"omitempty,dive"`
	Attachments       []AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}

// UpdateRequestRequest is a partial update: nil means "leave as is". Child
// collections, when present, replace the stored ones wholesale.
type UpdateRequestRequest struct {
	Id uuid.UUID `json:"-"`

	Title        *string `json:"title" validate:"omitempty,min=1"`
	CustomerName *string `json:"customer_name" validate:"omitempty,min=1"`
	ProductArea  *string `json:"product_area" validate:"omitempty,oneof=C_ARM MAMMO DENTAL C_ARM_NEW MAMMO_NEW DENTAL_NEW NEW_BUSINESS"`
	ProductModel *string `json:"product_model"`
	Category     *string `json:"category" validate:"omitempty,oneof=NEW_PRODUCT PRODUCT_IMPROVEMENT CUSTOMIZATION"`
	Region       *string `json:"region"`

	ExpectedRevenue       *int64  `json:"expected_revenue" validate:"omitempty,min=0"`
	RevenueEstimateStatus *string `json:"revenue_estimate_status" validate:"omitempty,oneof=NUMERIC UNKNOWN"`
	RevenueEstimateNote   *string `json:"revenue_estimate_note"`

	ImportanceFlag *string `json:"importance_flag" validate:"omitempty,oneof=MUST SHOULD NICE"`
	RiceReach      *int    `json:"rice_reach" validate:"omitempty,gt=0"`
	RiceImpact     *int    `json:"rice_impact" validate:"omitempty,gt=0"`
	RiceConfidence *int    `json:"rice_confidence" validate:"omitempty,gt=0"`
	RiceEffort     *int    `json:"rice_effort" validate:"omitempty,gt=0"`

	InfluenceRevenue   *float64 `json:"influence_revenue"`
	InfluenceKol       *float64 `json:"influence_kol"`
	InfluenceReuse     *float64 `json:"influence_reuse"`
	InfluenceStrategic *float64 `json:"influence_strategic"`
	InfluenceTender    *float64 `json:"influence_tender"`

	RegulatoryRequired  *bool   `json:"regulatory_required"`
	RegulatoryRiskLevel *string `json:"regulatory_risk_level" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	RegulatoryNotes     *string `json:"regulatory_notes"`

	StrategicAlignment    *int    `json:"strategic_alignment" validate:"omitempty,gt=0"`
	ResourceEstimateWeeks *int    `json:"resource_estimate_weeks" validate:"omitempty,gt=0"`
	KpiMetric             *string `json:"kpi_metric"`
	KpiTarget             *int    `json:"kpi_target" validate:"omitempty,gt=0"`
	TechnicalNotes        *string `json:"technical_notes"`

	CustomerDeadline *string `json:"customer_deadline"`
	CurrentStage     *string `json:"current_stage"`
	CurrentStatus    *string `json:"current_status"`
	CreatedByDept    *string `json:"created_by_dept"`
	CreatedByName    *string `json:"created_by_name"`

	RawCustomerText *string `json:"raw_customer_text" validate:"omitempty,min=1"`
	SalesSummary    *string `json:"sales_summary" validate:"omitempty,min=1"`

	RDGroupIds        *[]uuid.UUID       `json:"rd_group_ids"`
	SupportRDGroupIds *[]uuid.UUID       `json:"support_rd_group_ids"`
	Keywords          *[]string          `json:"keywords"`
	TechAreas         *[]TechAreaInput   `json:"tech_areas" validate:"omitempty,dive"`
	Attachments       *[]AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}

type ChangeStageRequest struct {
	Id    uuid.UUID `json:"-"`
	Stage string    `json:"stage" validate:"required"`
}

type SetStageTargetRequest struct {
	RequestId  uuid.UUID `json:"-"`
	Stage      string    `json:"stage" validate:"required"`
	TargetDate string    `json:"target_date" validate:"required"`
}

type RequestRDGroupResponse struct {
	Id        uuid.UUID `json:"id"`
	RDGroupId uuid.UUID `json:"rd_group_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Role      string    `json:"role"`
}

type TechAreaResponse struct {
	GroupName string `json:"group_name"`
	Code      string `json:"code"`
	Label     string `json:"label"`
}

type AttachmentResponse struct {
	Id       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Url      *string   `json:"url"`
}

type StageHistoryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Stage     string     `json:"stage"`
	EnteredAt time.Time  `json:"entered_at"`
	ExitedAt  *time.Time `json:"exited_at"`
}

type StageTargetResponse struct {
	Id          uuid.UUID `json:"id"`
	Stage       string    `json:"stage"`
	TargetDate  time.Time `json:"target_date"`
	SetByUserId *string   `json:"set_by_user_id"`
	SetByName   *string   `json:"set_by_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type StageTargetHistoryResponse struct {
	Id              uuid.UUID  `json:"id"`
	Stage           string     `json:"stage"`
	PreviousTarget  *time.Time `json:"previous_target"`
	NewTarget       time.Time  `json:"new_target"`
	ChangedByUserId *string    `json:"changed_by_user_id"`
	ChangedByName   *string    `json:"changed_by_name"`
	ChangedAt       time.Time  `json:"changed_at"`
}

type RequestResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	CustomerName string    `json:"customer_name"`
	ProductArea  string    `json:"product_area"`
	ProductModel *string   `json:"product_model"`
	Category     string    `json:"category"`
	Region       *string   `json:"region"`

	ExpectedRevenue       *int64  `json:"expected_revenue"`
	RevenueEstimateStatus *string `json:"revenue_estimate_status"`
	RevenueEstimateNote   *string `json:"revenue_estimate_note"`

	ImportanceFlag string   `json:"importance_flag"`
	RiceReach      *int     `json:"rice_reach"`
	RiceImpact     *int     `json:"rice_impact"`
	RiceConfidence *int     `json:"rice_confidence"`
	RiceEffort     *int     `json:"rice_effort"`
	RiceScore      *float64 `json:"rice_score"`

	InfluenceRevenue   *float64 `json:"influence_revenue"`
	InfluenceKol       *float64 `json:"influence_kol"`
	InfluenceReuse     *float64 `json:"influence_reuse"`
	InfluenceStrategic *float64 `json:"influence_strategic"`
	InfluenceTender    *float64 `json:"influence_tender"`
	InfluenceScore     *float64 `json:"influence_score"`
	InfluenceDetail    *string  `json:"influence_detail"`

	RegulatoryRequired  bool    `json:"regulatory_required"`
	RegulatoryRiskLevel *string `json:"regulatory_risk_level"`
	RegulatoryNotes     *string `json:"regulatory_notes"`

	StrategicAlignment    *int    `json:"strategic_alignment"`
	ResourceEstimateWeeks *int    `json:"resource_estimate_weeks"`
	KpiMetric             *string `json:"kpi_metric"`
	KpiTarget             *int    `json:"kpi_target"`
	TechnicalNotes        *string `json:"technical_notes"`

	CurrentStage    string  `json:"current_stage"`
	CurrentStatus   string  `json:"current_status"`
	CreatedByDept   string  `json:"created_by_dept"`
	CreatedByUserId string  `json:"created_by_user_id"`
	CreatedByName   *string `json:"created_by_name"`

	SubmittedAt      time.Time `json:"submitted_at"`
	CustomerDeadline time.Time `json:"customer_deadline"`
	RawCustomerText  string    `json:"raw_customer_text"`
	SalesSummary     string    `json:"sales_summary"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Keywords     []string                 `json:"keywords"`
	RDGroups     []RequestRDGroupResponse `json:"rd_groups"`
	TechAreas    []TechAreaResponse       `json:"tech_areas"`
	Attachments  []AttachmentResponse     `json:"attachments"`
	StageHistory []StageHistoryResponse   `json:"stage_history"`

	StageTargets       []StageTargetResponse        `json:"stage_targets,omitempty"`
	StageTargetHistory []StageTargetHistoryResponse `json:"stage_target_history,omitempty"`
}

type ListRequestsResponse struct {
	Items  []*RequestResponse `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

type SimilarRequestResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	ProductArea  string    `json:"product_area"`
	SubmittedAt  time.Time `json:"submitted_at"`
	CurrentStage string    `json:"current_stage"`
}

type StageTargetsResponse struct {
	Target  *StageTargetResponse         `json:"target,omitempty"`
	Targets []StageTargetResponse        `json:"targets"`
	History []StageTargetHistoryResponse `json:"history"`
}

type DeleteRequestResponse struct {
	Id uuid.UUID `json:"id"`
}
