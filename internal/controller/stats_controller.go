package controller

import (
	"rnd-intake-be/internal/pkg/serverutils"
	"rnd-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	Keywords(ctx *fiber.Ctx) error
	RDGroups(ctx *fiber.Ctx) error
	Updates(ctx *fiber.Ctx) error
}

type statsController struct {
	service service.IStatsService
}

func NewStatsController(service service.IStatsService) IStatsController {
	return &statsController{service: service}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/requests/stats")
	h.Get("/keywords", c.Keywords)
	h.Get("/rd-groups", c.RDGroups)
	h.Get("/updates", c.Updates)
}

func (c *statsController) Keywords(ctx *fiber.Ctx) error {
	res, err := c.service.KeywordStats(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get keyword stats", res))
}

func (c *statsController) RDGroups(ctx *fiber.Ctx) error {
	res, err := c.service.RDGroupLoad(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get rd group load", res))
}

// Updates reads ?days=; anything unparsable falls back to the default window.
func (c *statsController) Updates(ctx *fiber.Ctx) error {
	res, err := c.service.StageTransitions(ctx.UserContext(), ctx.QueryInt("days", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stage transitions", res))
}
