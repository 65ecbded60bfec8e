package service

import (
	"context"
	"testing"
	"time"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageTargetService_RepeatedSetsKeepOneTarget(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)
	ctx := context.Background()

	dates := []string{"2026-11-01", "2026-11-15", "2026-12-01T09:00:00Z"}
	var res *dto.StageTargetsResponse
	for _, d := range dates {
		var err error
		res, err = f.targets.SetStageTarget(ctx, rdActor, &dto.SetStageTargetRequest{
			RequestId:  created.Id,
			Stage:      "project",
			TargetDate: d,
		})
		require.NoError(t, err)
	}

	require.NotNil(t, res.Target)
	assert.Equal(t, "PROJECT", res.Target.Stage)
	assert.Equal(t, time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC), res.Target.TargetDate.UTC())
	require.NotNil(t, res.Target.SetByUserId)
	assert.Equal(t, rdActor.UserId, *res.Target.SetByUserId)

	require.Len(t, res.Targets, 1)
	require.Len(t, res.History, 3)
	assert.Equal(t, int64(1), f.count(t, "request_stage_targets"))

	// Newest change first; each row points at the target it replaced.
	newest, middle, oldest := res.History[0], res.History[1], res.History[2]
	assert.Nil(t, oldest.PreviousTarget)
	require.NotNil(t, middle.PreviousTarget)
	assert.Equal(t, oldest.NewTarget.UTC(), middle.PreviousTarget.UTC())
	require.NotNil(t, newest.PreviousTarget)
	assert.Equal(t, middle.NewTarget.UTC(), newest.PreviousTarget.UTC())

	assert.Len(t, f.publisher.targets, 3)
}

func TestStageTargetService_TargetsPerStage(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)
	ctx := context.Background()

	for _, stage := range []string{"REVIEW", "CONFIRM"} {
		_, err := f.targets.SetStageTarget(ctx, rdActor, &dto.SetStageTargetRequest{RequestId: created.Id, Stage: stage, TargetDate: "2026-11-20"})
		require.NoError(t, err)
	}

	res, err := f.targets.ListStageTargets(ctx, created.Id)
	require.NoError(t, err)
	assert.Nil(t, res.Target)
	assert.Len(t, res.Targets, 2)
	assert.Len(t, res.History, 2)

	shown, err := f.requests.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Len(t, shown.StageTargets, 2)
	assert.Len(t, shown.StageTargetHistory, 2)
}

func TestStageTargetService_Rejects(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.SetStageTargetRequest
		kind apperror.Kind
	}{
		{"missing stage", dto.SetStageTargetRequest{RequestId: created.Id, TargetDate: "2026-11-01"}, apperror.KindValidation},
		{"unknown stage", dto.SetStageTargetRequest{RequestId: created.Id, Stage: "LAUNCH", TargetDate: "2026-11-01"}, apperror.KindValidation},
		{"bad date", dto.SetStageTargetRequest{RequestId: created.Id, Stage: "REVIEW", TargetDate: "soon"}, apperror.KindValidation},
		{"unknown request", dto.SetStageTargetRequest{RequestId: uuid.New(), Stage: "REVIEW", TargetDate: "2026-11-01"}, apperror.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := f.targets.SetStageTarget(ctx, rdActor, &req)
			assert.True(t, apperror.Is(err, tc.kind), "got %v", err)
		})
	}

	assert.Equal(t, int64(0), f.count(t, "request_stage_target_histories"))
	assert.Empty(t, f.publisher.targets)

	_, err := f.targets.ListStageTargets(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
