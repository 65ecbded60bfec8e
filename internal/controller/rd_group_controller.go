package controller

import (
	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/pkg/serverutils"
	"rnd-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRDGroupController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type rdGroupController struct {
	service service.IRDGroupService
	auth    fiber.Handler
}

func NewRDGroupController(service service.IRDGroupService, auth fiber.Handler) IRDGroupController {
	return &rdGroupController{service: service, auth: auth}
}

func (c *rdGroupController) RegisterRoutes(r fiber.Router) {
	r.Get("/requests/rd-groups", c.List)
	r.Get("/rd-groups", c.List)
	r.Post("/rd-groups", c.auth, serverutils.RequireRole(entity.RoleAdmin), c.Create)
}

func (c *rdGroupController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list rd groups", res))
}

func (c *rdGroupController) Create(ctx *fiber.Ctx) error {
	actor, _ := serverutils.ActorFromCtx(ctx)

	var req dto.CreateRDGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create rd group", res))
}
