package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const contextKey = "auth_context"

// Context is the per-request authorization context derived from a
// verified access token. It is a snapshot of the credential at token
// issuance time; no store lookup happens on the request path.
type Context struct {
	SubjectID int64
	Email     string
	Role      string
	IsAdmin   bool
}

// CanMutate implements the ownership rule applied to every owned
// resource: admins may act on any row, everyone else only on their own.
func (c Context) CanMutate(ownerID int64) bool {
	return c.IsAdmin || c.SubjectID == ownerID
}

// Middleware validates bearer tokens and attaches the authorization
// context to the request.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. An expired
// token is reported with a code distinct from a bad signature so
// clients know to attempt a refresh.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.VerifyAccessToken(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewTokenExpired()
		}
		return apperrors.NewInvalidToken()
	}

	c.Locals(contextKey, Context{
		SubjectID: claims.SubjectID,
		Email:     claims.Email,
		Role:      claims.Role,
		IsAdmin:   claims.IsAdmin,
	})
	return c.Next()
}

// FromFiberCtx retrieves the authorization context set by Handle.
func FromFiberCtx(c *fiber.Ctx) (Context, bool) {
	val := c.Locals(contextKey)
	if val == nil {
		return Context{}, false
	}
	authCtx, ok := val.(Context)
	return authCtx, ok
}
