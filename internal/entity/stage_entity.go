package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageIdeation Stage = "IDEATION"
	StageReview   Stage = "REVIEW"
	StageConfirm  Stage = "CONFIRM"
	StageProject  Stage = "PROJECT"
	StageRelease  Stage = "RELEASE"
	StageRejected Stage = "REJECTED"

	// stageCompleteAlias was used interchangeably with RELEASE in older rows.
	stageCompleteAlias = "COMPLETE"
)

var stageOrder = []Stage{StageIdeation, StageReview, StageConfirm, StageProject, StageRelease, StageRejected}

// ActiveStages are the stages that still consume R&D capacity.
func ActiveStages() []Stage {
	return []Stage{StageIdeation, StageReview, StageConfirm, StageProject}
}

// AllStages returns the pipeline in order, REJECTED last.
func AllStages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// NormalizeStage trims and upper-cases raw input and folds COMPLETE into RELEASE.
// It does not validate; use ParseStage for that.
func NormalizeStage(raw string) Stage {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == stageCompleteAlias {
		return StageRelease
	}
	return Stage(s)
}

func ParseStage(raw string) (Stage, error) {
	s := NormalizeStage(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown stage %q", raw)
	}
	return s, nil
}

func (s Stage) IsValid() bool {
	for _, known := range stageOrder {
		if s == known {
			return true
		}
	}
	return false
}

func (s Stage) String() string {
	return string(s)
}

type StageHistory struct {
	Id        uuid.UUID
	RequestId uuid.UUID
	Stage     Stage
	EnteredAt time.Time
	ExitedAt  *time.Time
}

// IsOpen reports whether this row is the request's current stage interval.
func (h StageHistory) IsOpen() bool {
	return h.ExitedAt == nil
}

type StageTarget struct {
	Id          uuid.UUID
	RequestId   uuid.UUID
	Stage       Stage
	TargetDate  time.Time
	SetByUserId *string
	SetByName   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type StageTargetHistory struct {
	Id              uuid.UUID
	RequestId       uuid.UUID
	Stage           Stage
	PreviousTarget  *time.Time
	NewTarget       time.Time
	ChangedByUserId *string
	ChangedByName   *string
	ChangedAt       time.Time
}
