package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/pkg/logger"
	"rnd-intake-be/internal/repository/contract"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/repository/unitofwork"
)

type IRDGroupService interface {
	List(ctx context.Context) ([]*dto.RDGroupResponse, error)
	Create(ctx context.Context, actor entity.Actor, req *dto.CreateRDGroupRequest) (*dto.RDGroupResponse, error)
}

type rdGroupService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      contract.StatsCache
	logger     logger.ILogger
}

func NewRDGroupService(uowFactory unitofwork.RepositoryFactory, cache contract.StatsCache, logger logger.ILogger) IRDGroupService {
	return &rdGroupService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

func (s *rdGroupService) List(ctx context.Context) ([]*dto.RDGroupResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	groups, err := uow.RDGroupRepository().FindAll(ctx,
		specification.OrderBy{Field: "category", Desc: false},
		specification.OrderBy{Field: "name", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.RDGroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, &dto.RDGroupResponse{Id: g.Id, Name: g.Name, Category: g.Category})
	}
	return result, nil
}

func (s *rdGroupService) Create(ctx context.Context, actor entity.Actor, req *dto.CreateRDGroupRequest) (*dto.RDGroupResponse, error) {
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" || category == "" {
		return nil, apperror.Validation("name and category are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.RDGroupRepository().FindOne(ctx, specification.Filter("name", name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("rd group %q already exists", name)
	}

	group := &entity.RDGroup{Name: name, Category: category}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.RDGroupRepository().Create(ctx, group); err != nil {
		// lost a race with a concurrent create of the same name
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, apperror.Conflict("rd group %q already exists", name)
		}
		return nil, fmt.Errorf("create rd group: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, statsKeyRDGroups); err != nil {
		s.logger.Warn("RD_GROUP", "Failed to invalidate stats cache", map[string]interface{}{"error": err.Error()})
	}

	s.logger.Info("RD_GROUP", "RD group created", map[string]interface{}{
		"rd_group_id": group.Id.String(),
		"name":        group.Name,
		"actor":       actor.UserId,
	})

	return &dto.RDGroupResponse{Id: group.Id, Name: group.Name, Category: group.Category}, nil
}
