package specification

import (
	"strings"
	"time"

	"rnd-intake-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByProductAreas struct {
	ProductAreas []entity.ProductArea
}

func (s ByProductAreas) Apply(db *gorm.DB) *gorm.DB {
	values := make([]string, len(s.ProductAreas))
	for i, p := range s.ProductAreas {
		values[i] = string(p)
	}
	return db.Where("requests.product_area IN ?", values)
}

type ByProductArea struct {
	ProductArea entity.ProductArea
}

func (s ByProductArea) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requests.product_area = ?", string(s.ProductArea))
}

type ByCurrentStages struct {
	Stages []entity.Stage
}

func (s ByCurrentStages) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requests.current_stage IN ?", stageValues(s.Stages))
}

// SubmittedBetween is inclusive on both ends; a zero bound is open.
type SubmittedBetween struct {
	From time.Time
	To   time.Time
}

func (s SubmittedBetween) Apply(db *gorm.DB) *gorm.DB {
	if !s.From.IsZero() {
		db = db.Where("requests.submitted_at >= ?", s.From)
	}
	if !s.To.IsZero() {
		db = db.Where("requests.submitted_at <= ?", s.To)
	}
	return db
}

type SubmittedSince struct {
	Since time.Time
}

func (s SubmittedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requests.submitted_at >= ?", s.Since)
}

// TextSearch matches title, raw customer text or sales summary.
type TextSearch struct {
	Query string
}

func (s TextSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := likePattern(s.Query)
	return db.Where(
		"("+contains("requests.title")+" OR "+contains("requests.raw_customer_text")+" OR "+contains("requests.sales_summary")+")",
		pattern, pattern, pattern,
	)
}

// TitleOrRawText is the narrower match used for duplicate lookups.
type TitleOrRawText struct {
	Query string
}

func (s TitleOrRawText) Apply(db *gorm.DB) *gorm.DB {
	pattern := likePattern(s.Query)
	return db.Where("("+contains("requests.title")+" OR "+contains("requests.raw_customer_text")+")", pattern, pattern)
}

type HasKeyword struct {
	Keyword string
}

func (s HasKeyword) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM request_keywords rk WHERE rk.request_id = requests.id AND "+contains("rk.keyword")+")",
		likePattern(s.Keyword),
	)
}

type InRDGroup struct {
	RDGroupID uuid.UUID
}

func (s InRDGroup) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM request_rd_groups rrg WHERE rrg.request_id = requests.id AND rrg.rd_group_id = ?)",
		s.RDGroupID,
	)
}

type WithExpectedRevenue struct{}

func (s WithExpectedRevenue) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requests.expected_revenue IS NOT NULL")
}

// stageValues also matches legacy COMPLETE rows when RELEASE is requested.
func stageValues(stages []entity.Stage) []string {
	values := make([]string, 0, len(stages)+1)
	for _, st := range stages {
		st = entity.NormalizeStage(string(st))
		values = append(values, string(st))
		if st == entity.StageRelease {
			values = append(values, legacyReleaseStage)
		}
	}
	return values
}

const legacyReleaseStage = "COMPLETE"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains is a case-insensitive substring test on column, bound with
// likePattern.
func contains(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

// likePattern escapes LIKE wildcards so q only ever matches literally.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
