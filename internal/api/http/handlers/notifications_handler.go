package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// NotificationsHandler exposes broadcast notifications.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c)

	notifications, total, err := h.notifications.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"notifications": dto.NotificationsFromDomain(notifications),
		"pagination":    dto.NewPagination(total, page, limit),
	})
}

// Get handles GET /api/notifications/:id.
func (h *NotificationsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	notification, err := h.notifications.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"notification": dto.NotificationFromDomain(notification)})
}

// Create handles POST /api/notifications (admin).
func (h *NotificationsHandler) Create(c *fiber.Ctx) error {
	var req dto.NotificationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	notification := &domain.Notification{
		Title: req.Title,
		Body:  req.Body,
		Kind:  req.Kind,
	}
	if err := h.notifications.Create(c.Context(), notification); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":      "notification created",
		"notification": dto.NotificationFromDomain(notification),
	})
}

// Delete handles DELETE /api/notifications/:id (admin).
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "notification deleted"})
}
