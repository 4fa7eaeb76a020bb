package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// RequireAdmin rejects callers without the admin flag. The role string
// is irrelevant here: only the isAdmin claim grants dashboard access.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := FromFiberCtx(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if !authCtx.IsAdmin {
			return apperrors.NewForbidden("admin privileges required")
		}
		return c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[string(role)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		authCtx, ok := FromFiberCtx(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if _, exists := allowedSet[authCtx.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
