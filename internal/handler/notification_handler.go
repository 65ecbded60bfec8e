package handler

import (
	"rnd-intake-be/internal/entity"
	"rnd-intake-be/internal/pkg/serverutils"
	"rnd-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler exposes the email dispatch log.
type NotificationHandler struct {
	service *service.NotificationService
	auth    fiber.Handler
}

func NewNotificationHandler(service *service.NotificationService, auth fiber.Handler) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		auth:    auth,
	}
}

// GetNotifications lists dispatch records, newest first.
// Query: status (SENT | SKIPPED | FAILED), limit.
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	logs, err := h.service.ListLogs(c.UserContext(), c.Query("status"), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Success list notifications", logs))
}

// RegisterRoutes registers the notification routes.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notifications")
	notif.Get("", h.auth, serverutils.RequireRole(entity.RoleAdmin, entity.RoleExec), h.GetNotifications)
}
