package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// newTestApp builds a fiber app whose error handler renders DomainError
// the way the HTTP layer does, so tests can assert on codes.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"message": domainErr.Message,
				"error":   domainErr.Code,
			})
		},
	})
}

func decodeErrorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func TestMiddlewareRejectsMissingAndMalformedHeaders(t *testing.T) {
	tm, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)
	mw := NewMiddleware(tm)

	app := newTestApp()
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"no scheme", "sometoken"},
		{"wrong scheme", "Basic sometoken"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, apperrors.CodeUnauthenticated, decodeErrorCode(t, resp))
		})
	}
}

func TestMiddlewareDistinguishesExpiredFromInvalid(t *testing.T) {
	tm, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)
	mw := NewMiddleware(tm)

	app := newTestApp()
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	expiredManager := &TokenManager{
		accessSecret:  []byte("access-secret-for-tests"),
		refreshSecret: []byte("refresh-secret-for-tests"),
		accessTTL:     -time.Minute,
		refreshTTL:    time.Hour,
	}
	expired, _, err := expiredManager.IssueAccessToken(Claims{SubjectID: 1})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeTokenExpired, decodeErrorCode(t, resp))

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-jwt")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apperrors.CodeInvalidToken, decodeErrorCode(t, resp))
}

func TestMiddlewareAttachesContext(t *testing.T) {
	tm, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)
	mw := NewMiddleware(tm)

	var captured Context
	app := newTestApp()
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		authCtx, ok := FromFiberCtx(c)
		require.True(t, ok)
		captured = authCtx
		return c.SendStatus(http.StatusOK)
	})

	token, _, err := tm.IssueAccessToken(Claims{SubjectID: 42, Email: "a@x.com", Role: "business", IsAdmin: false})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(42), captured.SubjectID)
	assert.Equal(t, "a@x.com", captured.Email)
	assert.Equal(t, "business", captured.Role)
	assert.False(t, captured.IsAdmin)
}

func TestFromFiberCtxWithoutMiddleware(t *testing.T) {
	app := newTestApp()
	app.Get("/open", func(c *fiber.Ctx) error {
		_, ok := FromFiberCtx(c)
		assert.False(t, ok)
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name    string
		ctx     Context
		ownerID int64
		want    bool
	}{
		{"owner may act on own row", Context{SubjectID: 5}, 5, true},
		{"non-owner denied", Context{SubjectID: 5}, 6, false},
		{"admin may act on any row", Context{SubjectID: 5, IsAdmin: true}, 6, true},
		{"admin flag overrides role string", Context{SubjectID: 1, Role: "user", IsAdmin: true}, 99, true},
		{"role string alone grants nothing", Context{SubjectID: 1, Role: "admin"}, 99, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ctx.CanMutate(tc.ownerID))
		})
	}
}
