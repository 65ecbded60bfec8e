package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/repository/unitofwork"
	"rnd-intake-be/pkg/dashboard"
	"rnd-intake-be/pkg/export"
	"rnd-intake-be/pkg/metrics"
	"rnd-intake-be/pkg/notify"
	"rnd-intake-be/pkg/scoring"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
	SimilarLimit     = 10

	unknownUser = "unknown-user"
	unknownDept = "unknown-dept"
)

type IRequestService interface {
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.RequestResponse, error)
	Update(ctx context.Context, actor entity.Actor, req *dto.UpdateRequestRequest) (*dto.RequestResponse, error)
	ChangeStage(ctx context.Context, actor entity.Actor, req *dto.ChangeStageRequest) (*dto.RequestResponse, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	List(ctx context.Context, filter specification.RequestFilter, limit, offset int) (*dto.ListRequestsResponse, error)
	Similar(ctx context.Context, productArea, q string) ([]*dto.SimilarRequestResponse, error)
	HighValue(ctx context.Context) ([]*dto.RequestResponse, error)
	Export(ctx context.Context, filter specification.RequestFilter, w io.Writer) error
}

type requestService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   notify.Publisher
	metrics    *metrics.Metrics
	cache      contract.StatsCache
	aggregator *dashboard.Aggregator
	logger     logger.ILogger
	now        func() time.Time
}

func NewRequestService(
	uowFactory unitofwork.RepositoryFactory,
	notifier notify.Publisher,
	metrics *metrics.Metrics,
	cache contract.StatsCache,
	logger logger.ILogger,
) IRequestService {
	return &requestService{
		uowFactory: uowFactory,
		notifier:   notifier,
		metrics:    metrics,
		cache:      cache,
		aggregator: dashboard.NewAggregator(logger),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *requestService) Create(ctx context.Context, actor entity.Actor, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	now := s.now()

	deadline := now
	if req.CustomerDeadline != nil && strings.TrimSpace(*req.CustomerDeadline) != "" {
		parsed, err := dto.ParseDate(*req.CustomerDeadline)
		if err != nil {
			return nil, apperror.Validation("invalid customer_deadline")
		}
		deadline = parsed
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	links, err := resolveRDGroups(ctx, uow, req.RDGroupIds, req.SupportRDGroupIds)
	if err != nil {
		return nil, err
	}

	request := &entity.Request{
		Title:                 strings.TrimSpace(req.Title),
		CustomerName:          strings.TrimSpace(req.CustomerName),
		ProductArea:           entity.ProductArea(req.ProductArea),
		ProductModel:          trimmedOrNil(req.ProductModel),
		Category:              entity.Category(req.Category),
		Region:                trimmedOrNil(req.Region),
		ExpectedRevenue:       req.ExpectedRevenue,
		RevenueEstimateStatus: enumPtr[entity.RevenueEstimateStatus](req.RevenueEstimateStatus),
		RevenueEstimateNote:   trimmedOrNil(req.RevenueEstimateNote),
		ImportanceFlag:        entity.Importance(req.ImportanceFlag),
		RiceReach:             req.RiceReach,
		RiceImpact:            req.RiceImpact,
		RiceConfidence:        req.RiceConfidence,
		RiceEffort:            req.RiceEffort,
		RegulatoryRiskLevel:   enumPtr[entity.RegulatoryRiskLevel](req.RegulatoryRiskLevel),
		RegulatoryNotes:       trimmedOrNil(req.RegulatoryNotes),
		StrategicAlignment:    req.StrategicAlignment,
		ResourceEstimateWeeks: req.ResourceEstimateWeeks,
		KpiMetric:             trimmedOrNil(req.KpiMetric),
		KpiTarget:             req.KpiTarget,
		TechnicalNotes:        trimmedOrNil(req.TechnicalNotes),
		CurrentStage:          entity.StageIdeation,
		CurrentStatus:         entity.DefaultStatus,
		SubmittedAt:           now,
		CustomerDeadline:      deadline,
		RawCustomerText:       req.RawCustomerText,
		SalesSummary:          req.SalesSummary,
	}
	if request.Category == "" {
		request.Category = entity.CategoryCustomization
	}
	if request.ImportanceFlag == "" {
		request.ImportanceFlag = entity.ImportanceMust
	}
	if req.RegulatoryRequired != nil {
		request.RegulatoryRequired = *req.RegulatoryRequired
	}
	if status := trimmedOrNil(req.CurrentStatus); status != nil {
		request.CurrentStatus = *status
	}
	request.CreatedByUserId = firstNonBlank(actor.UserId, deref(req.CreatedByUserId), unknownUser)
	request.CreatedByDept = firstNonBlank(actor.Organization, deref(req.CreatedByDept), unknownDept)
	if name := firstNonBlank(actor.Name, deref(req.CreatedByName)); name != "" {
		request.CreatedByName = &name
	}

	applyInfluence(request, scoring.InfluenceFactors{
		Revenue:   req.InfluenceRevenue,
		Kol:       req.InfluenceKol,
		Reuse:     req.InfluenceReuse,
		Strategic: req.InfluenceStrategic,
		Tender:    req.InfluenceTender,
	})
	request.RiceScore = scoring.RiceScore(request.RiceReach, request.RiceImpact, request.RiceConfidence, request.RiceEffort)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.RequestRepository().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if err := replaceChildren(ctx, uow, request.Id, childSet{
		keywords:    &req.Keywords,
		techAreas:   &req.TechAreas,
		attachments: &req.Attachments,
		rdGroups:    links,
	}, false); err != nil {
		return nil, err
	}
	if err := uow.StageHistoryRepository().Create(ctx, &entity.StageHistory{
		RequestId: request.Id,
		Stage:     entity.StageIdeation,
		EnteredAt: now,
	}); err != nil {
		return nil, fmt.Errorf("create initial stage history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.metrics.RequestCreated(string(request.ProductArea))
	s.invalidateStats(ctx)
	s.notifier.PublishRequestCreated(ctx, request)

	s.logger.Info("REQUEST", "Request created", map[string]interface{}{
		"request_id":   request.Id.String(),
		"product_area": string(request.ProductArea),
		"created_by":   request.CreatedByUserId,
	})

	return s.Show(ctx, request.Id)
}

func (s *requestService) Show(ctx context.Context, id uuid.UUID) (*dto.RequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("request not found")
	}

	children, err := loadChildren(ctx, uow, []*entity.Request{request}, true)
	if err != nil {
		return nil, err
	}
	res := children.response(request)
	res.StageTargets = orEmpty(res.StageTargets)
	res.StageTargetHistory = orEmpty(res.StageTargetHistory)
	return res, nil
}

func (s *requestService) Update(ctx context.Context, actor entity.Actor, req *dto.UpdateRequestRequest) (*dto.RequestResponse, error) {
	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("request not found")
	}

	var newStage *entity.Stage
	if req.CurrentStage != nil {
		stage, err := entity.ParseStage(*req.CurrentStage)
		if err != nil {
			return nil, apperror.Validation("invalid current_stage")
		}
		if stage != request.CurrentStage {
			newStage = &stage
		}
	}

	if err := applyUpdate(request, req); err != nil {
		return nil, err
	}

	var links []*entity.RequestRDGroup
	replaceGroups := req.RDGroupIds != nil || req.SupportRDGroupIds != nil
	if replaceGroups {
		links, err = resolveRDGroups(ctx, uow, derefSlice(req.RDGroupIds), derefSlice(req.SupportRDGroupIds))
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	var change *StageChange
	if newStage != nil {
		change, err = ChangeStage(ctx, uow, request, *newStage, now)
		if err != nil {
			return nil, err
		}
	}
	if err := uow.RequestRepository().Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}

	children := childSet{
		keywords:    req.Keywords,
		techAreas:   req.TechAreas,
		attachments: req.Attachments,
	}
	if replaceGroups {
		children.rdGroups = links
	}
	if err := replaceChildren(ctx, uow, request.Id, children, true); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if change != nil {
		s.metrics.StageTransition(string(change.From), string(change.To))
	}
	s.invalidateStats(ctx)

	s.logger.Info("REQUEST", "Request updated", map[string]interface{}{
		"request_id": request.Id.String(),
		"actor":      actor.UserId,
		"stage":      string(request.CurrentStage),
	})

	return s.Show(ctx, request.Id)
}

func (s *requestService) ChangeStage(ctx context.Context, actor entity.Actor, req *dto.ChangeStageRequest) (*dto.RequestResponse, error) {
	stage, err := entity.ParseStage(req.Stage)
	if err != nil {
		return nil, apperror.Validation("invalid stage")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NotFound("request not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	change, err := ChangeStage(ctx, uow, request, stage, s.now())
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.metrics.StageTransition(string(change.From), string(change.To))
	s.invalidateStats(ctx)

	s.logger.Info("REQUEST", "Stage changed", map[string]interface{}{
		"request_id": request.Id.String(),
		"from":       string(change.From),
		"to":         string(change.To),
		"actor":      actor.UserId,
	})

	return s.Show(ctx, request.Id)
}

func (s *requestService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if request == nil {
		return apperror.NotFound("request not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	steps := []struct {
		name string
		fn   func(context.Context, uuid.UUID) error
	}{
		{"keywords", uow.RequestKeywordRepository().DeleteByRequestID},
		{"rd groups", uow.RequestRDGroupRepository().DeleteByRequestID},
		{"attachments", uow.RequestAttachmentRepository().DeleteByRequestID},
		{"tech areas", uow.RequestTechAreaRepository().DeleteByRequestID},
		{"stage history", uow.StageHistoryRepository().DeleteByRequestID},
		{"stage targets", uow.StageTargetRepository().DeleteByRequestID},
		{"stage target history", uow.StageTargetHistoryRepository().DeleteByRequestID},
	}
	for _, step := range steps {
		if err := step.fn(ctx, id); err != nil {
			return fmt.Errorf("delete %s: %w", step.name, err)
		}
	}
	if err := uow.RequestRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.invalidateStats(ctx)

	s.logger.Info("REQUEST", "Request deleted", map[string]interface{}{
		"request_id": id.String(),
		"actor":      actor.UserId,
	})
	return nil
}

func (s *requestService) List(ctx context.Context, filter specification.RequestFilter, limit, offset int) (*dto.ListRequestsResponse, error) {
	limit, offset = clampPage(limit, offset)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := filter.Specifications()
	total, err := uow.RequestRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(append([]specification.Specification{}, filters...),
		specification.OrderBy{Field: "requests.customer_deadline", Desc: false},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	requests, err := uow.RequestRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	children, err := loadChildren(ctx, uow, requests, false)
	if err != nil {
		return nil, err
	}

	return &dto.ListRequestsResponse{
		Items:  children.responses(requests),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *requestService) Similar(ctx context.Context, productArea, q string) ([]*dto.SimilarRequestResponse, error) {
	area := strings.ToUpper(strings.TrimSpace(productArea))
	query := strings.TrimSpace(q)
	if area == "" || query == "" {
		return nil, apperror.Validation("productArea and q are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.RequestRepository().FindAll(ctx,
		specification.ByProductArea{ProductArea: entity.ProductArea(area)},
		specification.TitleOrRawText{Query: query},
		specification.OrderBy{Field: "requests.submitted_at", Desc: true},
		specification.Pagination{Limit: SimilarLimit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SimilarRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, &dto.SimilarRequestResponse{
			Id:           r.Id,
			Title:        r.Title,
			ProductArea:  string(r.ProductArea),
			SubmittedAt:  r.SubmittedAt,
			CurrentStage: string(r.CurrentStage),
		})
	}
	return result, nil
}

func (s *requestService) HighValue(ctx context.Context) ([]*dto.RequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requests, err := s.aggregator.HighValue(ctx, uow)
	if err != nil {
		return nil, err
	}
	children, err := loadChildren(ctx, uow, requests, false)
	if err != nil {
		return nil, err
	}
	return children.responses(requests), nil
}

func (s *requestService) Export(ctx context.Context, filter specification.RequestFilter, w io.Writer) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := append(filter.Specifications(),
		specification.OrderBy{Field: "requests.customer_deadline", Desc: false},
		specification.Pagination{Limit: export.MaxRows},
	)
	requests, err := uow.RequestRepository().FindAll(ctx, specs...)
	if err != nil {
		return err
	}
	children, err := loadChildren(ctx, uow, requests, false)
	if err != nil {
		return err
	}

	rows := make([]export.Row, len(requests))
	for i, r := range requests {
		groups := make([]string, 0, len(children.rdGroups[r.Id]))
		for _, g := range children.rdGroups[r.Id] {
			groups = append(groups, g.Name)
		}
		rows[i] = export.Row{Request: r, Keywords: children.keywords[r.Id], RDGroups: groups}
	}

	s.logger.Debug("REQUEST", "Exporting requests", map[string]interface{}{"rows": len(rows)})
	return export.WriteRequests(w, rows)
}

func (s *requestService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCacheKeys...); err != nil {
		s.logger.Warn("REQUEST", "Failed to invalidate stats cache", map[string]interface{}{"error": err.Error()})
	}
}

// childSet holds the collections to replace; nil pointers are left untouched.
type childSet struct {
	keywords    *[]string
	techAreas   *[]dto.TechAreaInput
	attachments *[]dto.AttachmentInput
	rdGroups    []*entity.RequestRDGroup
}

func replaceChildren(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID, set childSet, replace bool) error {
	if set.keywords != nil {
		if replace {
			if err := uow.RequestKeywordRepository().DeleteByRequestID(ctx, requestId); err != nil {
				return fmt.Errorf("delete keywords: %w", err)
			}
		}
		rows := make([]*entity.RequestKeyword, 0, len(*set.keywords))
		seen := make(map[string]bool)
		for _, k := range *set.keywords {
			k = strings.TrimSpace(k)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			rows = append(rows, &entity.RequestKeyword{RequestId: requestId, Keyword: k})
		}
		if err := uow.RequestKeywordRepository().CreateMany(ctx, rows); err != nil {
			return fmt.Errorf("create keywords: %w", err)
		}
	}

	if set.techAreas != nil {
		if replace {
			if err := uow.RequestTechAreaRepository().DeleteByRequestID(ctx, requestId); err != nil {
				return fmt.Errorf("delete tech areas: %w", err)
			}
		}
		rows := make([]*entity.RequestTechArea, 0, len(*set.techAreas))
		for _, a := range *set.techAreas {
			rows = append(rows, &entity.RequestTechArea{
				RequestId: requestId,
				GroupName: strings.TrimSpace(a.GroupName),
				Code:      strings.TrimSpace(a.Code),
				Label:     strings.TrimSpace(a.Label),
			})
		}
		if err := uow.RequestTechAreaRepository().CreateMany(ctx, rows); err != nil {
			return fmt.Errorf("create tech areas: %w", err)
		}
	}

	if set.attachments != nil {
		if replace {
			if err := uow.RequestAttachmentRepository().DeleteByRequestID(ctx, requestId); err != nil {
				return fmt.Errorf("delete attachments: %w", err)
			}
		}
		rows := make([]*entity.RequestAttachment, 0, len(*set.attachments))
		for _, a := range *set.attachments {
			rows = append(rows, &entity.RequestAttachment{
				RequestId: requestId,
				Filename:  strings.TrimSpace(a.Filename),
				Url:       trimmedOrNil(a.Url),
			})
		}
		if err := uow.RequestAttachmentRepository().CreateMany(ctx, rows); err != nil {
			return fmt.Errorf("create attachments: %w", err)
		}
	}

	if set.rdGroups != nil {
		if replace {
			if err := uow.RequestRDGroupRepository().DeleteByRequestID(ctx, requestId); err != nil {
				return fmt.Errorf("delete rd group links: %w", err)
			}
		}
		for _, l := range set.rdGroups {
			l.RequestId = requestId
		}
		if err := uow.RequestRDGroupRepository().CreateMany(ctx, set.rdGroups); err != nil {
			return fmt.Errorf("create rd group links: %w", err)
		}
	}
	return nil
}

// resolveRDGroups builds LEAD then SUPPORT links; a group listed in both
// keeps the LEAD role. Any unknown id fails the whole selection.
func resolveRDGroups(ctx context.Context, uow unitofwork.UnitOfWork, lead, support []uuid.UUID) ([]*entity.RequestRDGroup, error) {
	links := make([]*entity.RequestRDGroup, 0, len(lead)+len(support))
	seen := make(map[uuid.UUID]bool)
	add := func(ids []uuid.UUID, role entity.RDGroupRole) {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			links = append(links, &entity.RequestRDGroup{RDGroupId: id, Role: role})
		}
	}
	add(lead, entity.RDGroupRoleLead)
	add(support, entity.RDGroupRoleSupport)

	if len(links) == 0 {
		return links, nil
	}

	ids := make([]uuid.UUID, len(links))
	for i, l := range links {
		ids[i] = l.RDGroupId
	}
	count, err := uow.RDGroupRepository().Count(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, apperror.Validation("invalid RD group selection")
	}
	return links, nil
}

// applyUpdate copies the supplied fields onto request and recomputes both
// scores from the merged factors.
func applyUpdate(request *entity.Request, req *dto.UpdateRequestRequest) error {
	setTrimmed(&request.Title, req.Title)
	setTrimmed(&request.CustomerName, req.CustomerName)
	setTrimmed(&request.RawCustomerText, req.RawCustomerText)
	setTrimmed(&request.SalesSummary, req.SalesSummary)
	setTrimmed(&request.CurrentStatus, req.CurrentStatus)
	setTrimmed(&request.CreatedByDept, req.CreatedByDept)

	if req.ProductArea != nil {
		request.ProductArea = entity.ProductArea(*req.ProductArea)
	}
	if req.Category != nil {
		request.Category = entity.Category(*req.Category)
	}
	if req.ImportanceFlag != nil {
		request.ImportanceFlag = entity.Importance(*req.ImportanceFlag)
	}
	if req.RevenueEstimateStatus != nil {
		request.RevenueEstimateStatus = enumPtr[entity.RevenueEstimateStatus](req.RevenueEstimateStatus)
	}
	if req.RegulatoryRiskLevel != nil {
		request.RegulatoryRiskLevel = enumPtr[entity.RegulatoryRiskLevel](req.RegulatoryRiskLevel)
	}
	if req.RegulatoryRequired != nil {
		request.RegulatoryRequired = *req.RegulatoryRequired
	}
	if req.ExpectedRevenue != nil {
		request.ExpectedRevenue = req.ExpectedRevenue
	}
	if req.CustomerDeadline != nil {
		deadline, err := dto.ParseDate(*req.CustomerDeadline)
		if err != nil {
			return apperror.Validation("invalid customer_deadline")
		}
		request.CustomerDeadline = deadline
	}

	setOptional(&request.ProductModel, req.ProductModel)
	setOptional(&request.Region, req.Region)
	setOptional(&request.RevenueEstimateNote, req.RevenueEstimateNote)
	setOptional(&request.RegulatoryNotes, req.RegulatoryNotes)
	setOptional(&request.KpiMetric, req.KpiMetric)
	setOptional(&request.TechnicalNotes, req.TechnicalNotes)

	if name := trimmedOrNil(req.CreatedByName); name != nil {
		request.CreatedByName = name
	}

	for _, f := range []struct {
		dst **int
		v   *int
	}{
		{&request.StrategicAlignment, req.StrategicAlignment},
		{&request.ResourceEstimateWeeks, req.ResourceEstimateWeeks},
		{&request.KpiTarget, req.KpiTarget},
	} {
		if f.v != nil {
			*f.dst = f.v
		}
	}

	if req.RiceReach != nil || req.RiceImpact != nil || req.RiceConfidence != nil || req.RiceEffort != nil {
		request.RiceReach = pick(request.RiceReach, req.RiceReach)
		request.RiceImpact = pick(request.RiceImpact, req.RiceImpact)
		request.RiceConfidence = pick(request.RiceConfidence, req.RiceConfidence)
		request.RiceEffort = pick(request.RiceEffort, req.RiceEffort)
		request.RiceScore = scoring.RiceScore(request.RiceReach, request.RiceImpact, request.RiceConfidence, request.RiceEffort)
	}

	update := scoring.InfluenceFactors{
		Revenue:   req.InfluenceRevenue,
		Kol:       req.InfluenceKol,
		Reuse:     req.InfluenceReuse,
		Strategic: req.InfluenceStrategic,
		Tender:    req.InfluenceTender,
	}
	if update.Provided() {
		applyInfluence(request, storedInfluence(request).Merge(update))
	}
	return nil
}

// storedInfluence reads the factor columns, falling back to the detail
// string for rows that only kept the rendered form.
func storedInfluence(r *entity.Request) scoring.InfluenceFactors {
	stored := scoring.InfluenceFactors{
		Revenue:   r.InfluenceRevenue,
		Kol:       r.InfluenceKol,
		Reuse:     r.InfluenceReuse,
		Strategic: r.InfluenceStrategic,
		Tender:    r.InfluenceTender,
	}
	if stored.Provided() || r.InfluenceDetail == nil {
		return stored
	}
	parsed, err := scoring.ParseDetail(*r.InfluenceDetail)
	if err != nil {
		return stored
	}
	return parsed
}

func applyInfluence(r *entity.Request, f scoring.InfluenceFactors) {
	if !f.Provided() {
		return
	}
	r.InfluenceRevenue = f.Revenue
	r.InfluenceKol = f.Kol
	r.InfluenceReuse = f.Reuse
	r.InfluenceStrategic = f.Strategic
	r.InfluenceTender = f.Tender
	score := f.Score()
	detail := f.Detail()
	r.InfluenceScore = &score
	r.InfluenceDetail = &detail
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func pick[T any](cur, upd *T) *T {
	if upd != nil {
		return upd
	}
	return cur
}

func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// setTrimmed overwrites dst with a supplied non-blank value.
func setTrimmed(dst *string, v *string) {
	if t := trimmedOrNil(v); t != nil {
		*dst = *t
	}
}

// setOptional overwrites dst when v is supplied; a blank value clears it.
func setOptional(dst **string, v *string) {
	if v != nil {
		*dst = trimmedOrNil(v)
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefSlice[T any](s *[]T) []T {
	if s == nil {
		return nil
	}
	return *s
}
