package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// UsersHandler exposes user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/users (admin).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c)

	filter := repository.UserFilter{
		SearchTerm: queryStrPtr(c, "search"),
		Limit:      limit,
		Offset:     offset,
	}
	if status := c.Query("status"); status != "" {
		s := domain.UserStatus(status)
		filter.Status = &s
	}
	if role := c.Query("role"); role != "" {
		r := domain.UserRole(role)
		filter.Role = &r
	}

	users, total, err := h.users.List(c.Context(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.UserFromDomain(&users[i]))
	}
	return c.JSON(fiber.Map{
		"users":      out,
		"pagination": dto.NewPagination(total, page, limit),
	})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.UserFromDomain(user)})
}

// Update handles PUT /api/users/:id (self or admin).
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	input := service.UpdateProfileInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Avatar:   req.Avatar,
		Password: req.Password,
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		input.Status = &status
	}

	user, err := h.users.UpdateProfile(c.Context(), authCtx, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "profile updated",
		"user":    dto.UserFromDomain(user),
	})
}

// Delete handles DELETE /api/users/:id (admin).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deleted"})
}

// RequestDeletion handles POST /api/users/:id/request-deletion (self only).
func (h *UsersHandler) RequestDeletion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	if err := h.users.RequestDeletion(c.Context(), authCtx, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deletion requested"})
}

// UpdateRole handles PUT /api/users/:id/role (admin).
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateRoleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateRole(c.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "role updated",
		"user":    dto.UserFromDomain(user),
	})
}

// Favorites handles GET /api/users/:id/favorites (self or admin).
func (h *UsersHandler) Favorites(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	fav, err := h.users.Favorites(c.Context(), authCtx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": dto.FavoritesResponse{
		Services:   fav.ServiceIDs,
		Properties: fav.PropertyIDs,
	}})
}
