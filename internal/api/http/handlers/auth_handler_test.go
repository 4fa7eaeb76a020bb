package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

type memUserRepo struct {
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[int64]*domain.User{}, byEmail: map[string]*domain.User{}, nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[user.ID] = user
	return nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id int64, role domain.UserRole) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func (r *memUserRepo) UpdateStatus(_ context.Context, id int64, status domain.UserStatus) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *memUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (r *memUserRepo) GetFavorites(_ context.Context, id int64) (*domain.Favorites, error) {
	if _, ok := r.byID[id]; !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.Favorites{ServiceIDs: []int64{}, PropertyIDs: []int64{}}, nil
}

type memAdminRepo struct{}

func (memAdminRepo) GetByID(context.Context, int64) (*domain.AdminUser, error) {
	return nil, pgx.ErrNoRows
}

func (memAdminRepo) GetByUsername(context.Context, string) (*domain.AdminUser, error) {
	return nil, pgx.ErrNoRows
}

func newSessionApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			AccessSecret:          "access-secret-for-tests",
			RefreshSecret:         "refresh-secret-for-tests",
			AccessTokenTTLMinutes: 15,
			RefreshTokenTTLDays:   7,
			BcryptCost:            4,
		},
	}
	tokens, err := auth.NewTokenManager(cfg.Auth)
	require.NoError(t, err)
	authService := service.NewAuthService(cfg, tokens, service.AuthDependencies{
		UserRepo:  newMemUserRepo(),
		AdminRepo: memAdminRepo{},
	})
	authHandler := handlers.NewAuthHandler(authService, false)
	authMiddleware := auth.NewMiddleware(tokens)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			response := fiber.Map{"message": domainErr.Message, "error": domainErr.Code}
			if len(domainErr.Details) > 0 {
				response["details"] = domainErr.Details
			}
			return c.Status(domainErr.HTTPStatus).JSON(response)
		},
	})
	group := app.Group("/api/auth")
	group.Post("/register", authHandler.Register)
	group.Post("/login", authHandler.Login)
	group.Post("/admin/login", authHandler.AdminLogin)
	group.Post("/refresh", authHandler.Refresh)
	group.Post("/logout", authHandler.Logout)
	group.Get("/me", authMiddleware.Handle, authHandler.Me)
	return app
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func refreshCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refreshToken" {
			return cookie
		}
	}
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	app := newSessionApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "Test User",
		"email":    "a@x.com",
		"password": "secret123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registerBody struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registerBody))
	require.NotEmpty(t, registerBody.AccessToken)
	assert.Equal(t, "a@x.com", registerBody.User.Email)

	cookie := refreshCookie(resp)
	require.NotNil(t, cookie, "register must set the refresh cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/auth", cookie.Path)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)

	// The refresh token never appears in the JSON body.
	assert.NotContains(t, registerBody.AccessToken, cookie.Value)

	loginResp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "a@x.com",
		"password": "secret123",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	loginCookie := refreshCookie(loginResp)
	require.NotNil(t, loginCookie)

	refreshReq := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	refreshReq.AddCookie(loginCookie)
	refreshResp, err := app.Test(refreshReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, refreshResp.StatusCode)

	var refreshBody struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(refreshResp.Body).Decode(&refreshBody))
	assert.NotEmpty(t, refreshBody.AccessToken)

	meReq := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	meReq.Header.Set(fiber.HeaderAuthorization, "Bearer "+refreshBody.AccessToken)
	meResp, err := app.Test(meReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var meBody struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&meBody))
	assert.Equal(t, "a@x.com", meBody.User.Email)

	logoutResp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)
	cleared := refreshCookie(logoutResp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))
}

func TestRefreshWithoutCookie(t *testing.T) {
	app := newSessionApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apperrors.CodeMissingRefreshToken, body.Error)
}

func TestRefreshWithGarbageCookie(t *testing.T) {
	app := newSessionApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apperrors.CodeInvalidToken, body.Error)
}

func TestRegisterValidation(t *testing.T) {
	app := newSessionApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "X",
		"email":    "not-an-email",
		"password": "short",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apperrors.CodeValidationFailed, body.Error)
	assert.Contains(t, body.Details, "email")
	assert.Contains(t, body.Details, "password")
	assert.True(t, strings.Contains(body.Details["name"].(string), "min"))
}
