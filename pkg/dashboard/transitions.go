package dashboard

import (
	"sort"
	"time"

	"rnd-intake-be/internal/entity"

	"github.com/google/uuid"
)

const (
	DefaultWindowDays = 7
	MaxWindowDays     = 365
)

type BucketKey string

const (
	BucketIdeationToReview BucketKey = "IDEATION_TO_REVIEW"
	BucketReviewToConfirm  BucketKey = "REVIEW_TO_CONFIRM"
	BucketConfirmToProject BucketKey = "CONFIRM_TO_PROJECT"
	BucketProjectToRelease BucketKey = "PROJECT_TO_RELEASE"
	BucketAnyToRejected    BucketKey = "ANY_TO_REJECTED"
)

var bucketOrder = []struct {
	key   BucketKey
	label string
}{
	{BucketIdeationToReview, "Ideation → Review"},
	{BucketReviewToConfirm, "Review → Confirm"},
	{BucketConfirmToProject, "Confirm → Project"},
	{BucketProjectToRelease, "Project → Release"},
	{BucketAnyToRejected, "Rejected (any stage)"},
}

// RequestInfo is the request context attached to each transition record.
type RequestInfo struct {
	Title        string
	CustomerName string
	ProductArea  entity.ProductArea
	CurrentStage entity.Stage
}

type Transition struct {
	RequestId    uuid.UUID          `json:"request_id"`
	Title        string             `json:"title"`
	CustomerName string             `json:"customer_name"`
	ProductArea  entity.ProductArea `json:"product_area"`
	CurrentStage entity.Stage       `json:"current_stage"`
	FromStage    *entity.Stage      `json:"from_stage"`
	ToStage      entity.Stage       `json:"to_stage"`
	EnteredAt    time.Time          `json:"entered_at"`
}

type Bucket struct {
	Key   BucketKey    `json:"key"`
	Label string       `json:"label"`
	Items []Transition `json:"items"`
}

// ClampWindowDays maps a requested window onto [1, MaxWindowDays]; anything
// non-positive falls back to DefaultWindowDays.
func ClampWindowDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}

// BucketTransitions replays every request's history in entry order and files
// each transition entered at or after start into its bucket. Only the latest
// transition per request is kept in a bucket and items are newest first. The
// result always carries all five buckets in a fixed order.
func BucketTransitions(histories []*entity.StageHistory, info map[uuid.UUID]RequestInfo, start time.Time) []Bucket {
	byRequest := make(map[uuid.UUID][]*entity.StageHistory)
	var order []uuid.UUID
	for _, h := range histories {
		if _, ok := byRequest[h.RequestId]; !ok {
			order = append(order, h.RequestId)
		}
		byRequest[h.RequestId] = append(byRequest[h.RequestId], h)
	}

	latest := make(map[BucketKey]map[uuid.UUID]Transition, len(bucketOrder))
	for _, b := range bucketOrder {
		latest[b.key] = make(map[uuid.UUID]Transition)
	}

	for _, requestId := range order {
		rows := byRequest[requestId]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].EnteredAt.Before(rows[j].EnteredAt)
		})

		var prev *entity.Stage
		for _, h := range rows {
			to := entity.NormalizeStage(string(h.Stage))
			if h.EnteredAt.Before(start) {
				prev = &to
				continue
			}

			rec := Transition{
				RequestId: requestId,
				FromStage: prev,
				ToStage:   to,
				EnteredAt: h.EnteredAt,
			}
			if ri, ok := info[requestId]; ok {
				rec.Title = ri.Title
				rec.CustomerName = ri.CustomerName
				rec.ProductArea = ri.ProductArea
				rec.CurrentStage = entity.NormalizeStage(string(ri.CurrentStage))
			}
			if rec.CurrentStage == "" {
				rec.CurrentStage = to
			}

			if key, ok := classify(prev, to); ok {
				existing, seen := latest[key][requestId]
				if !seen || rec.EnteredAt.After(existing.EnteredAt) {
					latest[key][requestId] = rec
				}
			}
			prev = &to
		}
	}

	buckets := make([]Bucket, 0, len(bucketOrder))
	for _, b := range bucketOrder {
		items := make([]Transition, 0, len(latest[b.key]))
		for _, rec := range latest[b.key] {
			items = append(items, rec)
		}
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].EnteredAt.Equal(items[j].EnteredAt) {
				return items[i].RequestId.String() < items[j].RequestId.String()
			}
			return items[i].EnteredAt.After(items[j].EnteredAt)
		})
		buckets = append(buckets, Bucket{Key: b.key, Label: b.label, Items: items})
	}
	return buckets
}

func classify(from *entity.Stage, to entity.Stage) (BucketKey, bool) {
	if to == entity.StageRejected {
		return BucketAnyToRejected, true
	}
	if from == nil {
		return "", false
	}
	switch {
	case *from == entity.StageIdeation && to == entity.StageReview:
		return BucketIdeationToReview, true
	case *from == entity.StageReview && to == entity.StageConfirm:
		return BucketReviewToConfirm, true
	case *from == entity.StageConfirm && to == entity.StageProject:
		return BucketConfirmToProject, true
	case *from == entity.StageProject && to == entity.StageRelease:
		return BucketProjectToRelease, true
	}
	return "", false
}
