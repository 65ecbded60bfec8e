package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRows(history []dto.StageHistoryResponse) int {
	n := 0
	for _, h := range history {
		if h.ExitedAt == nil {
			n++
		}
	}
	return n
}

func TestRequestService_CreateAppliesDefaults(t *testing.T) {
	f := newFixture(t)

	res := f.create(t, func(r *dto.CreateRequestRequest) {
		r.Keywords = []string{"Footswitch", " Footswitch ", "", "UI 개선"}
		r.TechAreas = []dto.TechAreaInput{{GroupName: "전자그룹", Code: "PCB_CHANGE", Label: "PCB/보드 변경"}}
		r.Attachments = []dto.AttachmentInput{{Filename: "drawing.pdf"}}
	})

	assert.Equal(t, string(entity.CategoryCustomization), res.Category)
	assert.Equal(t, string(entity.ImportanceMust), res.ImportanceFlag)
	assert.Equal(t, entity.DefaultStatus, res.CurrentStatus)
	assert.Equal(t, string(entity.StageIdeation), res.CurrentStage)
	assert.Equal(t, salesActor.UserId, res.CreatedByUserId)
	assert.Equal(t, salesActor.Organization, res.CreatedByDept)
	require.NotNil(t, res.CreatedByName)
	assert.Equal(t, salesActor.Name, *res.CreatedByName)
	assert.Equal(t, res.SubmittedAt, res.CustomerDeadline)
	assert.Nil(t, res.RiceScore)
	assert.Nil(t, res.InfluenceScore)

	assert.ElementsMatch(t, []string{"Footswitch", "UI 개선"}, res.Keywords)
	assert.Len(t, res.TechAreas, 1)
	assert.Len(t, res.Attachments, 1)
	assert.NotNil(t, res.StageTargets)
	assert.NotNil(t, res.StageTargetHistory)

	require.Len(t, res.StageHistory, 1)
	assert.Equal(t, string(entity.StageIdeation), res.StageHistory[0].Stage)
	assert.Nil(t, res.StageHistory[0].ExitedAt)

	require.Len(t, f.publisher.created, 1)
	assert.Equal(t, res.Id, f.publisher.created[0].Id)
}

func TestRequestService_CreateWithoutActorFallsBack(t *testing.T) {
	f := newFixture(t)

	req := baseCreate()
	req.CreatedByUserId = strp("legacy-user")
	res, err := f.requests.Create(context.Background(), entity.Actor{}, req)
	require.NoError(t, err)

	assert.Equal(t, "legacy-user", res.CreatedByUserId)
	assert.Equal(t, unknownDept, res.CreatedByDept)
	assert.Nil(t, res.CreatedByName)
}

func TestRequestService_CreateComputesScores(t *testing.T) {
	f := newFixture(t)

	res := f.create(t, func(r *dto.CreateRequestRequest) {
		r.RiceReach, r.RiceImpact, r.RiceConfidence, r.RiceEffort = intp(5), intp(6), intp(7), intp(3)
		r.InfluenceRevenue = floatp(2)
		r.InfluenceKol = floatp(1)
		r.CustomerDeadline = strp("2026-12-31")
	})

	require.NotNil(t, res.RiceScore)
	assert.InDelta(t, 70.0, *res.RiceScore, 1e-9)
	require.NotNil(t, res.InfluenceScore)
	assert.InDelta(t, 3.0, *res.InfluenceScore, 1e-9)
	require.NotNil(t, res.InfluenceDetail)
	assert.Equal(t, "①2 ②1 ③0 ④0 ⑤0", *res.InfluenceDetail)
	assert.Equal(t, 2026, res.CustomerDeadline.Year())
}

func TestRequestService_CreateRejectsBadDeadline(t *testing.T) {
	f := newFixture(t)

	req := baseCreate()
	req.CustomerDeadline = strp("next week")
	_, err := f.requests.Create(context.Background(), salesActor, req)

	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRequestService_CreateRejectsUnknownRDGroup(t *testing.T) {
	f := newFixture(t)
	lead := f.group(t, "AI/딥러닝", "Platform")

	req := baseCreate()
	req.RDGroupIds = []uuid.UUID{lead.Id}
	req.SupportRDGroupIds = []uuid.UUID{uuid.New()}
	_, err := f.requests.Create(context.Background(), salesActor, req)

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, int64(0), f.count(t, "requests"))
	assert.Equal(t, int64(0), f.count(t, "request_rd_groups"))
	assert.Empty(t, f.publisher.created)
}

func TestRequestService_CreateLeadWinsOverSupport(t *testing.T) {
	f := newFixture(t)
	a := f.group(t, "UI/UX", "Platform")
	b := f.group(t, "기구 설계", "Core")

	res := f.create(t, func(r *dto.CreateRequestRequest) {
		r.RDGroupIds = []uuid.UUID{a.Id}
		r.SupportRDGroupIds = []uuid.UUID{a.Id, b.Id}
	})

	require.Len(t, res.RDGroups, 2)
	roles := map[uuid.UUID]string{}
	for _, g := range res.RDGroups {
		roles[g.RDGroupId] = g.Role
	}
	assert.Equal(t, string(entity.RDGroupRoleLead), roles[a.Id])
	assert.Equal(t, string(entity.RDGroupRoleSupport), roles[b.Id])
}

func TestRequestService_ShowNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.requests.Show(context.Background(), uuid.New())

	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestRequestService_ChangeStageKeepsSingleOpenRow(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)
	ctx := context.Background()

	_, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "review"})
	require.NoError(t, err)
	res, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "CONFIRM"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StageConfirm), res.CurrentStage)
	require.Len(t, res.StageHistory, 3)
	assert.Equal(t, 1, openRows(res.StageHistory))

	stages := []string{res.StageHistory[0].Stage, res.StageHistory[1].Stage, res.StageHistory[2].Stage}
	assert.Equal(t, []string{"IDEATION", "REVIEW", "CONFIRM"}, stages)
	assert.Nil(t, res.StageHistory[2].ExitedAt)
	require.NotNil(t, res.StageHistory[0].ExitedAt)
	assert.Equal(t, res.StageHistory[1].EnteredAt, *res.StageHistory[0].ExitedAt)
}

func TestRequestService_ChangeStageWithoutOpenRow(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)
	ctx := context.Background()

	require.NoError(t, f.db.Exec("UPDATE stage_histories SET exited_at = ? WHERE request_id = ?", time.Now(), created.Id).Error)

	res, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "REVIEW"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StageReview), res.CurrentStage)
	require.Len(t, res.StageHistory, 2)
	assert.Equal(t, 1, openRows(res.StageHistory))
	assert.Equal(t, "REVIEW", res.StageHistory[1].Stage)
	assert.Nil(t, res.StageHistory[1].ExitedAt)
}

func TestRequestService_ChangeStageFoldsComplete(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)

	res, err := f.requests.ChangeStage(context.Background(), rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "COMPLETE"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StageRelease), res.CurrentStage)
}

func TestRequestService_ChangeStageRejects(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)
	ctx := context.Background()

	_, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "IDEATION"})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "same stage")

	_, err = f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "SHIPPED"})
	assert.True(t, apperror.Is(err, apperror.KindValidation), "unknown stage")

	_, err = f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: uuid.New(), Stage: "REVIEW"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	assert.Equal(t, int64(1), f.count(t, "stage_histories"))
}

func TestRequestService_UpdateRecomputesRice(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, func(r *dto.CreateRequestRequest) {
		r.RiceReach, r.RiceImpact, r.RiceConfidence, r.RiceEffort = intp(5), intp(6), intp(7), intp(3)
	})

	res, err := f.requests.Update(context.Background(), salesActor, &dto.UpdateRequestRequest{
		Id:         created.Id,
		RiceEffort: intp(6),
	})
	require.NoError(t, err)

	require.NotNil(t, res.RiceScore)
	assert.InDelta(t, 35.0, *res.RiceScore, 1e-9)
	assert.Equal(t, 5, *res.RiceReach)
}

func TestRequestService_UpdateMergesInfluence(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, func(r *dto.CreateRequestRequest) {
		r.InfluenceRevenue = floatp(3)
		r.InfluenceTender = floatp(1)
	})

	res, err := f.requests.Update(context.Background(), salesActor, &dto.UpdateRequestRequest{
		Id:           created.Id,
		InfluenceKol: floatp(2),
	})
	require.NoError(t, err)

	require.NotNil(t, res.InfluenceScore)
	assert.InDelta(t, 6.0, *res.InfluenceScore, 1e-9)
	assert.Equal(t, "①3 ②2 ③0 ④0 ⑤1", *res.InfluenceDetail)
}

func TestRequestService_UpdateFieldsAndChildren(t *testing.T) {
	f := newFixture(t)
	lead := f.group(t, "영상/알고리즘", "Platform")
	other := f.group(t, "인증/규제", "Compliance")
	created := f.create(t, func(r *dto.CreateRequestRequest) {
		r.Keywords = []string{"old"}
		r.Region = strp("KR")
		r.RDGroupIds = []uuid.UUID{lead.Id}
	})

	keywords := []string{"Dose reduction"}
	support := []uuid.UUID{other.Id}
	res, err := f.requests.Update(context.Background(), salesActor, &dto.UpdateRequestRequest{
		Id:                created.Id,
		Title:             strp("  Dose reduction mode  "),
		Region:            strp(""),
		CreatedByName:     strp("   "),
		Keywords:          &keywords,
		SupportRDGroupIds: &support,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dose reduction mode", res.Title)
	assert.Nil(t, res.Region)
	require.NotNil(t, res.CreatedByName)
	assert.Equal(t, salesActor.Name, *res.CreatedByName)
	assert.Equal(t, []string{"Dose reduction"}, res.Keywords)
	require.Len(t, res.RDGroups, 1)
	assert.Equal(t, other.Id, res.RDGroups[0].RDGroupId)
	assert.Equal(t, string(entity.RDGroupRoleSupport), res.RDGroups[0].Role)
}

func TestRequestService_UpdateStage(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, nil)
	ctx := context.Background()

	res, err := f.requests.Update(ctx, rdActor, &dto.UpdateRequestRequest{Id: created.Id, CurrentStage: strp("REVIEW")})
	require.NoError(t, err)
	assert.Equal(t, "REVIEW", res.CurrentStage)
	assert.Len(t, res.StageHistory, 2)

	// Same stage again is a no-op for history.
	res, err = f.requests.Update(ctx, rdActor, &dto.UpdateRequestRequest{Id: created.Id, CurrentStage: strp("review")})
	require.NoError(t, err)
	assert.Len(t, res.StageHistory, 2)
	assert.Equal(t, 1, openRows(res.StageHistory))

	_, err = f.requests.Update(ctx, rdActor, &dto.UpdateRequestRequest{Id: created.Id, CurrentStage: strp("DONE")})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRequestService_DeleteRemovesChildren(t *testing.T) {
	f := newFixture(t)
	g := f.group(t, "전자 하드웨어", "Core")
	created := f.create(t, func(r *dto.CreateRequestRequest) {
		r.Keywords = []string{"PCB"}
		r.RDGroupIds = []uuid.UUID{g.Id}
		r.TechAreas = []dto.TechAreaInput{{GroupName: "전자그룹", Code: "PCB_CHANGE"}}
		r.Attachments = []dto.AttachmentInput{{Filename: "board.png"}}
	})
	ctx := context.Background()
	_, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: created.Id, Stage: "REVIEW"})
	require.NoError(t, err)
	_, err = f.targets.SetStageTarget(ctx, rdActor, &dto.SetStageTargetRequest{RequestId: created.Id, Stage: "CONFIRM", TargetDate: "2026-11-30"})
	require.NoError(t, err)

	require.NoError(t, f.requests.Delete(ctx, entity.Actor{UserId: "admin", Role: entity.RoleAdmin}, created.Id))

	for _, table := range []string{
		"requests", "request_keywords", "request_rd_groups", "request_tech_areas", "request_attachments",
		"stage_histories", "request_stage_targets", "request_stage_target_histories",
	} {
		assert.Equal(t, int64(0), f.count(t, table), table)
	}
	assert.Equal(t, int64(1), f.count(t, "rd_groups"))

	err = f.requests.Delete(ctx, entity.Actor{}, created.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestRequestService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cArm := f.create(t, func(r *dto.CreateRequestRequest) { r.ProductArea = "C_ARM"; r.CustomerDeadline = strp("2026-12-01") })
	mammo := f.create(t, func(r *dto.CreateRequestRequest) { r.ProductArea = "MAMMO"; r.CustomerDeadline = strp("2026-11-01") })
	dental := f.create(t, func(r *dto.CreateRequestRequest) { r.ProductArea = "DENTAL" })
	f.create(t, func(r *dto.CreateRequestRequest) { r.ProductArea = "MAMMO" })

	for _, id := range []uuid.UUID{cArm.Id, mammo.Id, dental.Id} {
		_, err := f.requests.ChangeStage(ctx, rdActor, &dto.ChangeStageRequest{Id: id, Stage: "REVIEW"})
		require.NoError(t, err)
	}

	res, err := f.requests.List(ctx, specification.RequestFilter{
		ProductAreas: []entity.ProductArea{entity.ProductAreaCArm, entity.ProductAreaMammo},
		Stages:       []entity.Stage{entity.StageReview},
	}, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, DefaultListLimit, res.Limit)
	require.Len(t, res.Items, 2)
	// Ordered by customer deadline.
	assert.Equal(t, mammo.Id, res.Items[0].Id)
	assert.Equal(t, cArm.Id, res.Items[1].Id)
	assert.Nil(t, res.Items[0].StageTargets)

	page, err := f.requests.List(ctx, specification.RequestFilter{}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Len(t, page.Items, 1)

	clamped, err := f.requests.List(ctx, specification.RequestFilter{}, MaxListLimit+1, -5)
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, clamped.Limit)
	assert.Equal(t, 0, clamped.Offset)
}

func TestRequestService_ListByKeywordAndGroup(t *testing.T) {
	f := newFixture(t)
	g := f.group(t, "임베디드 펌웨어", "Core")

	tagged := f.create(t, func(r *dto.CreateRequestRequest) {
		r.Keywords = []string{"Footswitch"}
		r.RDGroupIds = []uuid.UUID{g.Id}
	})
	f.create(t, func(r *dto.CreateRequestRequest) { r.Keywords = []string{"Dose"} })

	res, err := f.requests.List(context.Background(), specification.RequestFilter{Keyword: "Footswitch", RDGroupID: &g.Id}, 10, 0)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, tagged.Id, res.Items[0].Id)
}

func TestRequestService_ListTextMatchIsLiteral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, func(r *dto.CreateRequestRequest) { r.Keywords = []string{"Footswitch"} })
	literal := f.create(t, func(r *dto.CreateRequestRequest) {
		r.Title = "Gain 50% lower"
		r.Keywords = []string{"AEC_mode"}
	})

	cases := []struct {
		name   string
		filter specification.RequestFilter
		want   []uuid.UUID
	}{
		{"percent", specification.RequestFilter{Query: "%"}, []uuid.UUID{literal.Id}},
		{"underscore", specification.RequestFilter{Query: "_"}, nil},
		{"wildcard inside", specification.RequestFilter{Query: "Foot%latency"}, nil},
		{"keyword underscore", specification.RequestFilter{Keyword: "_"}, []uuid.UUID{literal.Id}},
		{"keyword underscore as any char", specification.RequestFilter{Keyword: "Foot_witch"}, nil},
		{"backslash", specification.RequestFilter{Query: `\`}, nil},
		{"ignores case keyword", specification.RequestFilter{Keyword: "aec_MODE"}, []uuid.UUID{literal.Id}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := f.requests.List(ctx, tc.filter, 10, 0)
			require.NoError(t, err)

			var got []uuid.UUID
			for _, item := range res.Items {
				got = append(got, item.Id)
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, int64(len(tc.want)), res.Total)
		})
	}

	// the default raw text is "Footswitch response is slow during fluoroscopy"
	res, err := f.requests.List(ctx, specification.RequestFilter{Query: "FOOTSWITCH RESPONSE"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	similar, err := f.requests.Similar(ctx, "C_ARM", "%")
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, literal.Id, similar[0].Id)
}

func TestRequestService_Similar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	match := f.create(t, func(r *dto.CreateRequestRequest) { r.Title = "Dose reduction for pediatric" })
	f.create(t, func(r *dto.CreateRequestRequest) { r.Title = "Dose reduction"; r.ProductArea = "MAMMO" })
	f.create(t, func(r *dto.CreateRequestRequest) { r.Title = "Unrelated"; r.RawCustomerText = "nothing" })

	res, err := f.requests.Similar(ctx, "c_arm", "Dose")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, match.Id, res[0].Id)

	_, err = f.requests.Similar(ctx, "C_ARM", " ")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestRequestService_HighValue(t *testing.T) {
	f := newFixture(t)

	f.create(t, func(r *dto.CreateRequestRequest) { r.ExpectedRevenue = int64p(100) })
	top := f.create(t, func(r *dto.CreateRequestRequest) { r.ExpectedRevenue = int64p(900) })
	f.create(t, nil)

	res, err := f.requests.HighValue(context.Background())
	require.NoError(t, err)

	require.Len(t, res, 1)
	assert.Equal(t, top.Id, res[0].Id)
}

func TestRequestService_Export(t *testing.T) {
	f := newFixture(t)
	f.create(t, func(r *dto.CreateRequestRequest) { r.Keywords = []string{"UI 개선"} })

	var buf bytes.Buffer
	require.NoError(t, f.requests.Export(context.Background(), specification.RequestFilter{}, &buf))

	// xlsx is a zip archive.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}
