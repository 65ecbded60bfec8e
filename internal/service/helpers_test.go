package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/memory"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/internal/testutil"
	"rnd-intake-be/pkg/metrics"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu      sync.Mutex
	created []*entity.Request
	targets []*entity.StageTarget
}

func (p *recordingPublisher) PublishRequestCreated(_ context.Context, request *entity.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, request)
}

func (p *recordingPublisher) PublishStageTargetUpdated(_ context.Context, _ *entity.Request, target *entity.StageTarget, _ *time.Time, _ entity.Actor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.targets = append(p.targets, target)
}

// testClock hands out strictly increasing timestamps.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type fixture struct {
	db        *gorm.DB
	factory   unitofwork.RepositoryFactory
	cache     contract.StatsCache
	publisher *recordingPublisher
	clock     *testClock

	requests IRequestService
	targets  IStageTargetService
	stats    IStatsService
	groups   IRDGroupService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	cache := memory.NewStatsCache(time.Minute)
	publisher := &recordingPublisher{}
	m := metrics.New()
	log := logger.NewNopLogger()
	clock := &testClock{now: time.Now().UTC().Add(-time.Hour).Truncate(time.Second)}

	requests := NewRequestService(factory, publisher, m, cache, log)
	requests.(*requestService).now = clock.Now
	targets := NewStageTargetService(factory, publisher, m, log)
	targets.(*stageTargetService).now = clock.Now

	return &fixture{
		db:        db,
		factory:   factory,
		cache:     cache,
		publisher: publisher,
		clock:     clock,
		requests:  requests,
		targets:   targets,
		stats:     NewStatsService(factory, cache, log),
		groups:    NewRDGroupService(factory, cache, log),
	}
}

var (
	salesActor = entity.Actor{UserId: "sales-1", Name: "Kim Sales", Role: entity.RoleSales, Organization: "Domestic Sales"}
	rdActor    = entity.Actor{UserId: "rd-1", Name: "Lee RD", Role: entity.RoleRD, Organization: "R&D"}
)

func (f *fixture) group(t *testing.T, name, category string) *entity.RDGroup {
	t.Helper()
	g := &entity.RDGroup{Name: name, Category: category}
	require.NoError(t, f.factory.NewUnitOfWork(context.Background()).RDGroupRepository().Create(context.Background(), g))
	return g
}

func baseCreate() *dto.CreateRequestRequest {
	return &dto.CreateRequestRequest{
		Title:           "Footswitch latency",
		CustomerName:    "서울병원",
		ProductArea:     string(entity.ProductAreaCArm),
		RawCustomerText: "Footswitch response is slow during fluoroscopy",
		SalesSummary:    "Customer wants faster footswitch response",
	}
}

func (f *fixture) create(t *testing.T, mutate func(*dto.CreateRequestRequest)) *dto.RequestResponse {
	t.Helper()
	req := baseCreate()
	if mutate != nil {
		mutate(req)
	}
	res, err := f.requests.Create(context.Background(), salesActor, req)
	require.NoError(t, err)
	return res
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}

func intp(v int) *int { return &v }
func floatp(v float64) *float64 { return &v }
func strp(s string) *string { return &s }
func int64p(v int64) *int64 { return &v }
