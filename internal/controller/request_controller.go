package controller

import (
	"bytes"
	"strings"

	"rnd-intake-be/internal/dto"
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/apperror"
	"rnd-intake-be/internal/pkg/serverutils"
	"rnd-intake-be/internal/repository/specification"
	"rnd-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type IRequestController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Similar(ctx *fiber.Ctx) error
	HighValue(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	StageTargets(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	ChangeStage(ctx *fiber.Ctx) error
	SetStageTarget(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type requestController struct {
	service            service.IRequestService
	stageTargetService service.IStageTargetService
	auth               fiber.Handler
}

func NewRequestController(
	service service.IRequestService,
	stageTargetService service.IStageTargetService,
	auth fiber.Handler,
) IRequestController {
	return &requestController{
		service:            service,
		stageTargetService: stageTargetService,
		auth:               auth,
	}
}

// RegisterRoutes mounts /requests. Static paths go first so they are not
// captured by /:id.
func (c *requestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/requests")
	h.Get("", c.List)
	h.Get("/export.xlsx", c.Export)
	h.Get("/similar", c.Similar)
	h.Get("/high-value", c.HighValue)

	h.Post("", c.auth, serverutils.RequireRole(entity.RoleSales, entity.RoleExec, entity.RoleAdmin), c.Create)

	h.Get("/:id", c.Show)
	h.Get("/:id/stage-targets", c.StageTargets)
	h.Patch("/:id", c.auth, c.Update)
	h.Patch("/:id/stage", c.auth, serverutils.RequireRole(entity.RoleRD, entity.RoleExec, entity.RoleAdmin), c.ChangeStage)
	h.Patch("/:id/stage-target", c.auth, serverutils.RequireRole(entity.RoleAdmin, entity.RoleExec, entity.RoleRD), c.SetStageTarget)
	h.Delete("/:id", c.auth, serverutils.RequireRole(entity.RoleAdmin), c.Delete)
}

func (c *requestController) List(ctx *fiber.Ctx) error {
	filter, err := parseRequestFilter(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), filter, ctx.QueryInt("limit", 0), ctx.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list requests", res))
}

func (c *requestController) Export(ctx *fiber.Ctx) error {
	filter, err := parseRequestFilter(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.service.Export(ctx.UserContext(), filter, &buf); err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="requests.xlsx"`)
	return ctx.Send(buf.Bytes())
}

func (c *requestController) Similar(ctx *fiber.Ctx) error {
	res, err := c.service.Similar(ctx.UserContext(), ctx.Query("productArea"), ctx.Query("q"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find similar requests", res))
}

func (c *requestController) HighValue(ctx *fiber.Ctx) error {
	res, err := c.service.HighValue(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list high value requests", res))
}

func (c *requestController) Show(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show request", res))
}

func (c *requestController) StageTargets(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	res, err := c.stageTargetService.ListStageTargets(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list stage targets", res))
}

func (c *requestController) Create(ctx *fiber.Ctx) error {
	actor, _ := serverutils.ActorFromCtx(ctx)

	var req dto.CreateRequestRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create request", res))
}

func (c *requestController) Update(ctx *fiber.Ctx) error {
	actor, _ := serverutils.ActorFromCtx(ctx)
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update request", res))
}

func (c *requestController) ChangeStage(ctx *fiber.Ctx) error {
	actor, _ := serverutils.ActorFromCtx(ctx)
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChangeStageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ChangeStage(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success change stage", res))
}

func (c *requestController) SetStageTarget(ctx *fiber.Ctx) error {
	actor, _ := serverutils.ActorFromCtx(ctx)
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	var req dto.SetStageTargetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	req.RequestId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.stageTargetService.SetStageTarget(ctx.UserContext(), actor, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set stage target", res))
}

func (c *requestController) Delete(ctx *fiber.Ctx) error {
	actor, _ := serverutils.ActorFromCtx(ctx)
	id, err := parseID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), actor, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete request", dto.DeleteRequestResponse{Id: id}))
}

func parseID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid id")
	}
	return id, nil
}

// parseRequestFilter reads the list filter. Multi-valued parameters accept
// repeated keys and comma-joined values under either spelling.
func parseRequestFilter(ctx *fiber.Ctx) (specification.RequestFilter, error) {
	var filter specification.RequestFilter

	for _, v := range queryList(ctx, "productArea", "productAreas") {
		filter.ProductAreas = append(filter.ProductAreas, entity.ProductArea(strings.ToUpper(v)))
	}
	for _, v := range queryList(ctx, "stage", "stages") {
		stage, err := entity.ParseStage(v)
		if err != nil {
			return filter, apperror.Validation("invalid stage %q", v)
		}
		filter.Stages = append(filter.Stages, stage)
	}

	if raw := strings.TrimSpace(ctx.Query("from")); raw != "" {
		from, err := dto.ParseDate(raw)
		if err != nil {
			return filter, apperror.Validation("invalid from date")
		}
		filter.From = from
	}
	if raw := strings.TrimSpace(ctx.Query("to")); raw != "" {
		to, err := dto.ParseEndOfDay(raw)
		if err != nil {
			return filter, apperror.Validation("invalid to date")
		}
		filter.To = to
	}

	filter.Query = strings.TrimSpace(ctx.Query("q"))
	filter.Keyword = strings.TrimSpace(ctx.Query("keyword"))

	if raw := strings.TrimSpace(ctx.Query("rdGroupId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, apperror.Validation("invalid rdGroupId")
		}
		filter.RDGroupID = &id
	}
	return filter, nil
}

func queryList(ctx *fiber.Ctx, keys ...string) []string {
	var out []string
	args := ctx.Context().QueryArgs()
	for _, key := range keys {
		for _, raw := range args.PeekMulti(key) {
			for _, part := range strings.Split(string(raw), ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
		}
	}
	return out
}
