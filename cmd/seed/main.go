package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"rnd-intake-be/internal/config"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/model"
	"rnd-intake-be/internal/pkg/serverutils"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/pkg/database"
	"rnd-intake-be/pkg/scoring"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	skipColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
	infoColor = color.New(color.FgCyan)
)

var rdGroupsData = []entity.RDGroup{
	{Name: "시스템 아키텍처", Category: "Core"},
	{Name: "임베디드 펌웨어", Category: "Core"},
	{Name: "전자 하드웨어", Category: "Core"},
	{Name: "기구 설계", Category: "Core"},
	{Name: "영상/알고리즘", Category: "Platform"},
	{Name: "AI/딥러닝", Category: "Platform"},
	{Name: "소프트웨어 플랫폼", Category: "Platform"},
	{Name: "UI/UX", Category: "Platform"},
	{Name: "클라우드/연동", Category: "Platform"},
	{Name: "인증/규제", Category: "Compliance"},
	{Name: "품질/검증(QA)", Category: "Quality"},
}

var seedActors = []entity.Actor{
	{UserId: "sales_user", Name: "Sales User", Role: entity.RoleSales, Organization: "Domestic Sales"},
	{UserId: "rd_owner", Name: "RD Owner", Role: entity.RoleRD, Organization: "R&D Program"},
	{UserId: "exec_user", Name: "Executive", Role: entity.RoleExec, Organization: "Executive Office"},
	{UserId: "admin_user", Name: "Admin", Role: entity.RoleAdmin, Organization: "Operations"},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)

	infoColor.Println("Seeding RD groups...")
	groups, err := seedRDGroups(ctx, factory)
	if err != nil {
		failColor.Printf("RD group seeding failed: %v\n", err)
		os.Exit(1)
	}

	infoColor.Println("Seeding requests...")
	if err := seedRequests(ctx, factory, groups, time.Now().UTC()); err != nil {
		failColor.Printf("Request seeding failed: %v\n", err)
		os.Exit(1)
	}

	infoColor.Println("Development tokens:")
	for _, a := range seedActors {
		token, err := serverutils.SignToken(cfg.Auth.JWTSecret, a)
		if err != nil {
			failColor.Printf("  %s: %v\n", a.UserId, err)
			continue
		}
		fmt.Printf("  %-6s %s\n", a.Role, token)
	}

	okColor.Println("Seeding completed!")
}

func seedRDGroups(ctx context.Context, factory unitofwork.RepositoryFactory) ([]*entity.RDGroup, error) {
	uow := factory.NewUnitOfWork(ctx)
	out := make([]*entity.RDGroup, 0, len(rdGroupsData))

	for _, g := range rdGroupsData {
		existing, err := uow.RDGroupRepository().FindOne(ctx, specification.Filter("name", g.Name))
		if err != nil {
			return nil, err
		}
		if existing != nil {
			skipColor.Printf("  RD group '%s' already exists, skipping...\n", g.Name)
			out = append(out, existing)
			continue
		}

		group := &entity.RDGroup{Name: g.Name, Category: g.Category}
		if err := uow.RDGroupRepository().Create(ctx, group); err != nil {
			return nil, fmt.Errorf("create rd group %s: %w", g.Name, err)
		}
		okColor.Printf("  Created RD group: %s (%s)\n", group.Name, group.Category)
		out = append(out, group)
	}
	return out, nil
}

func seedRequests(ctx context.Context, factory unitofwork.RepositoryFactory, groups []*entity.RDGroup, now time.Time) error {
	uow := factory.NewUnitOfWork(ctx)

	existing, err := uow.RequestRepository().Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		skipColor.Printf("  %d requests already present, skipping...\n", existing)
		return nil
	}

	addDays := func(d int) time.Time { return now.Add(time.Duration(d) * 24 * time.Hour) }
	sales := seedActors[0]
	pipeline := entity.ActiveStages()

	for i := 1; i <= 20; i++ {
		area := []entity.ProductArea{entity.ProductAreaCArm, entity.ProductAreaMammo, entity.ProductAreaDental, entity.ProductAreaNewBusiness}[i%4]
		stageIdx := i % 4

		req := &entity.Request{
			Title:                 fmt.Sprintf("Request %d: Improvement #%d", i, i),
			CustomerName:          either(i%2 == 0, "서울병원", "부산병원"),
			ProductArea:           area,
			ProductModel:          productModel(area),
			Category:              []entity.Category{entity.CategoryNewProduct, entity.CategoryProductImprovement, entity.CategoryCustomization}[i%3],
			Region:                strPtr(either(i%2 == 0, "KR", "US")),
			ImportanceFlag:        []entity.Importance{entity.ImportanceMust, entity.ImportanceShould, entity.ImportanceNice}[i%3],
			RiceReach:             intPtr(i%5 + 5),
			RiceImpact:            intPtr(i%4 + 6),
			RiceConfidence:        intPtr(i%3 + 7),
			RiceEffort:            intPtr(i%6 + 3),
			RegulatoryRequired:    i%4 == 0,
			StrategicAlignment:    intPtr(i%5 + 1),
			ResourceEstimateWeeks: intPtr(i%8 + 4),
			KpiMetric:             strPtr(either(i%2 == 0, "Install base retention", "New logo win rate")),
			KpiTarget:             intPtr(either(i%2 == 0, 5, 3)),
			CurrentStage:          pipeline[stageIdx],
			CurrentStatus:         seedStatus(i),
			CreatedByDept:         sales.Organization,
			CreatedByUserId:       sales.UserId,
			CreatedByName:         strPtr(sales.Name),
			SubmittedAt:           addDays(-30 - i),
			CustomerDeadline:      addDays(15 + i),
			RawCustomerText:       fmt.Sprintf("원문 요구사항 %d: UI 개선과 기능 추가 요청.", i),
			SalesSummary:          fmt.Sprintf("영업 요약 %d: 고객 UX 불만과 경쟁사 대비 기능 부족 보완 필요", i),
		}
		if i%5 == 0 {
			revenue := int64(i) * 100000000
			req.ExpectedRevenue = &revenue
		}
		risk := entity.RegulatoryRiskLow
		if i%4 == 0 {
			risk = entity.RegulatoryRiskMedium
			if i%8 == 0 {
				risk = entity.RegulatoryRiskHigh
			}
			req.RegulatoryNotes = strPtr("의료기기 변경 신고 필요 가능성")
		}
		req.RegulatoryRiskLevel = &risk
		req.RiceScore = scoring.RiceScore(req.RiceReach, req.RiceImpact, req.RiceConfidence, req.RiceEffort)

		if err := seedRequest(ctx, uow, req, groups, i, stageIdx, addDays); err != nil {
			return fmt.Errorf("seed request %d: %w", i, err)
		}
		okColor.Printf("  Created request: %s [%s]\n", req.Title, req.CurrentStage)
	}
	return nil
}

// seedRequest writes one request with children and a stage history that
// walks the pipeline up to its current stage.
func seedRequest(ctx context.Context, uow unitofwork.UnitOfWork, req *entity.Request, groups []*entity.RDGroup, i, stageIdx int, addDays func(int) time.Time) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RequestRepository().Create(ctx, req); err != nil {
		return err
	}

	keywords := []*entity.RequestKeyword{{RequestId: req.Id, Keyword: "UI 개선"}}
	if i%3 == 0 {
		keywords = append(keywords, &entity.RequestKeyword{RequestId: req.Id, Keyword: "Dose reduction"})
	}
	if i%4 == 0 {
		keywords = append(keywords, &entity.RequestKeyword{RequestId: req.Id, Keyword: "Footswitch"})
	}
	if err := uow.RequestKeywordRepository().CreateMany(ctx, keywords); err != nil {
		return err
	}

	if err := uow.RequestRDGroupRepository().CreateMany(ctx, []*entity.RequestRDGroup{
		{RequestId: req.Id, RDGroupId: groups[i%len(groups)].Id, Role: entity.RDGroupRoleLead},
		{RequestId: req.Id, RDGroupId: groups[(i+3)%len(groups)].Id, Role: entity.RDGroupRoleSupport},
	}); err != nil {
		return err
	}

	if err := uow.RequestTechAreaRepository().CreateMany(ctx, []*entity.RequestTechArea{
		{RequestId: req.Id, GroupName: "덴탈SW그룹", Code: "SW_UI", Label: "촬영 UI/워크플로우 변경"},
		{RequestId: req.Id, GroupName: "전자그룹", Code: "PCB_CHANGE", Label: "PCB/보드 변경"},
	}); err != nil {
		return err
	}

	pipeline := entity.ActiveStages()
	for s := 0; s <= stageIdx; s++ {
		h := &entity.StageHistory{
			RequestId: req.Id,
			Stage:     pipeline[s],
			EnteredAt: addDays(-30 + 10*s - i),
		}
		if s < stageIdx {
			exited := addDays(-30 + 10*(s+1) - i)
			h.ExitedAt = &exited
		}
		if err := uow.StageHistoryRepository().Create(ctx, h); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func productModel(area entity.ProductArea) *string {
	switch area {
	case entity.ProductAreaCArm:
		return strPtr("Oscar 15")
	case entity.ProductAreaMammo:
		return strPtr("Hestia")
	case entity.ProductAreaDental:
		return strPtr("Papaya Plus")
	}
	return nil
}

func seedStatus(i int) string {
	switch i % 4 {
	case 2:
		return "CTO_APPROVAL_PENDING"
	case 3:
		return "CEO_APPROVAL_PENDING"
	}
	return "IN_REVIEW"
}

func either[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }
