package specification

import (
	"time"

	"rnd-intake-be/internal/entity"

	"github.com/google/uuid"
)

// RequestFilter is the parsed request list filter. Every supplied field
// becomes one specification; the repository AND-s them together.
type RequestFilter struct {
	ProductAreas []entity.ProductArea
	Stages       []entity.Stage
	From         time.Time
	To           time.Time
	Query        string
	Keyword      string
	RDGroupID    *uuid.UUID
}

func (f RequestFilter) Specifications() []Specification {
	specs := make([]Specification, 0, 6)
	if len(f.ProductAreas) > 0 {
		specs = append(specs, ByProductAreas{ProductAreas: f.ProductAreas})
	}
	if len(f.Stages) > 0 {
		specs = append(specs, ByCurrentStages{Stages: f.Stages})
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		specs = append(specs, SubmittedBetween{From: f.From, To: f.To})
	}
	if f.Query != "" {
		specs = append(specs, TextSearch{Query: f.Query})
	}
	if f.Keyword != "" {
		specs = append(specs, HasKeyword{Keyword: f.Keyword})
	}
	if f.RDGroupID != nil {
		specs = append(specs, InRDGroup{RDGroupID: *f.RDGroupID})
	}
	return specs
}
