package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const refreshCookieName = "refreshToken"

// AuthHandler exposes the session endpoints for both credential spaces.
type AuthHandler struct {
	auth         *service.AuthService
	secureCookie bool
}

// NewAuthHandler constructs the handler. secureCookie should be true in
// production so the refresh cookie is HTTPS-only.
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: authService, secureCookie: secureCookie}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, pair, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "account created",
		"user":        dto.UserFromDomain(user),
		"accessToken": pair.AccessToken,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, pair, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	return c.JSON(fiber.Map{
		"message":     "logged in",
		"user":        dto.UserFromDomain(user),
		"accessToken": pair.AccessToken,
	})
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	admin, pair, err := h.auth.AdminLogin(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	return c.JSON(fiber.Map{
		"message":     "logged in",
		"admin":       dto.AdminFromDomain(admin),
		"accessToken": pair.AccessToken,
	})
}

// Refresh handles POST /api/auth/refresh. The refresh token travels
// only in the HTTP-only cookie, never in the JSON body.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken == "" {
		return apperrors.NewMissingRefreshToken()
	}

	accessToken, _, err := h.auth.Refresh(refreshToken)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"accessToken": accessToken})
}

// Logout handles POST /api/auth/logout. Stateless: only the cookie is
// cleared, already-issued access tokens stay valid until expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

// Me handles GET /api/auth/me, re-fetching the live row for the token
// subject from the table its isAdmin claim selects.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	if authCtx.IsAdmin {
		admin, err := h.auth.CurrentAdmin(c.Context(), authCtx.SubjectID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"admin": dto.AdminFromDomain(admin)})
	}

	user, err := h.auth.CurrentUser(c.Context(), authCtx.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.UserFromDomain(user)})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/auth",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
