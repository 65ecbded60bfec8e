package dashboard

import (
	"sort"

	"rnd-intake-be/internal/entity"
)

// HighValueShare is the fraction of revenue-bearing requests reported as high value.
const HighValueShare = 0.2

// SelectHighValue keeps the top HighValueShare of requests by expected
// revenue (at least one when any carry revenue) and returns them ordered by
// customer deadline, earliest first. Requests without revenue are ignored.
func SelectHighValue(requests []*entity.Request) []*entity.Request {
	withRevenue := make([]*entity.Request, 0, len(requests))
	for _, r := range requests {
		if r.ExpectedRevenue != nil {
			withRevenue = append(withRevenue, r)
		}
	}
	if len(withRevenue) == 0 {
		return []*entity.Request{}
	}

	sort.SliceStable(withRevenue, func(i, j int) bool {
		return *withRevenue[i].ExpectedRevenue > *withRevenue[j].ExpectedRevenue
	})

	topCount := int(float64(len(withRevenue)) * HighValueShare)
	if topCount < 1 {
		topCount = 1
	}
	top := append([]*entity.Request(nil), withRevenue[:topCount]...)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].CustomerDeadline.Before(top[j].CustomerDeadline)
	})
	return top
}
