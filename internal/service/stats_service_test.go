package service

import (
	"context"
	"testing"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/pkg/dashboard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keywordCounts(items []*dto.KeywordStatResponse) map[string]int64 {
	out := make(map[string]int64, len(items))
	for _, k := range items {
		out[k.Keyword] = k.Count
	}
	return out
}

func TestStatsService_KeywordStatsCachedUntilMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, func(r *dto.CreateRequestRequest) { r.Keywords = []string{"UI 개선", "Footswitch"} })
	f.create(t, func(r *dto.CreateRequestRequest) { r.Keywords = []string{"UI 개선"} })

	first, err := f.stats.KeywordStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"UI 개선": 2, "Footswitch": 1}, keywordCounts(first))
	assert.Equal(t, "UI 개선", first[0].Keyword)

	// A direct write bypasses invalidation, so the cached value is served.
	uow := f.factory.NewUnitOfWork(ctx)
	requests, err := uow.RequestRepository().FindAll(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.RequestKeywordRepository().CreateMany(ctx, []*entity.RequestKeyword{
		{RequestId: requests[0].Id, Keyword: "Dose reduction"},
	}))

	cached, err := f.stats.KeywordStats(ctx)
	require.NoError(t, err)
	assert.NotContains(t, keywordCounts(cached), "Dose reduction")

	f.create(t, func(r *dto.CreateRequestRequest) { r.Keywords = []string{"Dose reduction"} })

	fresh, err := f.stats.KeywordStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), keywordCounts(fresh)["Dose reduction"])
}

func TestStatsService_RDGroupLoadCountsActiveOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	busy := f.group(t, "소프트웨어 플랫폼", "Platform")
	idle := f.group(t, "클라우드/연동", "Platform")

	f.create(t, func(r *dto.CreateRequestRequest) {
		r.RDGroupIds = []uuid.UUID{busy.Id}
	})
	released := f.create(t, func(r *dto.CreateRequestRequest) {
		r.RDGroupIds = []uuid.UUID{busy.Id}
		r.SupportRDGroupIds = []uuid.UUID{idle.Id}
	})
	_, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: released.Id, Stage: "RELEASE"})
	require.NoError(t, err)

	loads, err := f.stats.RDGroupLoad(ctx)
	require.NoError(t, err)
	require.Len(t, loads, 2)

	byName := map[string]int64{}
	for _, l := range loads {
		byName[l.Group] = l.ActiveRequests
	}
	assert.Equal(t, int64(1), byName[busy.Name])
	assert.Equal(t, int64(0), byName[idle.Name])
}

func TestStatsService_StageTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, nil)
	_, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "REVIEW"})
	require.NoError(t, err)

	res, err := f.stats.StageTransitions(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, dashboard.DefaultWindowDays, res.WindowDays)
	require.Len(t, res.Transitions, 5)

	review := res.Transitions[0]
	assert.Equal(t, dashboard.BucketIdeationToReview, review.Key)
	require.Len(t, review.Items, 1)
	assert.Equal(t, created.Id, review.Items[0].RequestId)
	assert.Equal(t, created.Title, review.Items[0].Title)
	assert.Equal(t, entity.StageReview, review.Items[0].CurrentStage)

	wide, err := f.stats.StageTransitions(ctx, 10000)
	require.NoError(t, err)
	assert.Equal(t, dashboard.MaxWindowDays, wide.WindowDays)
}
