package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

type fakeUserRepo struct {
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byID: map[int64]*domain.User{}, byEmail: map[string]*domain.User{}, nextID: 1}
	for _, user := range users {
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
		repo.byID[user.ID] = user
		repo.byEmail[user.Email] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, role domain.UserRole) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id int64, status domain.UserStatus) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	user, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(r.byEmail, user.Email)
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.UserFilter) ([]domain.User, int64, error) {
	users := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, *user)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) GetFavorites(_ context.Context, id int64) (*domain.Favorites, error) {
	if _, ok := r.byID[id]; !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.Favorites{ServiceIDs: []int64{}, PropertyIDs: []int64{}}, nil
}

type fakeAdminRepo struct {
	byID       map[int64]*domain.AdminUser
	byUsername map[string]*domain.AdminUser
}

func newFakeAdminRepo(admins ...*domain.AdminUser) *fakeAdminRepo {
	repo := &fakeAdminRepo{byID: map[int64]*domain.AdminUser{}, byUsername: map[string]*domain.AdminUser{}}
	for _, admin := range admins {
		repo.byID[admin.ID] = admin
		repo.byUsername[admin.Username] = admin
	}
	return repo
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id int64) (*domain.AdminUser, error) {
	admin, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return admin, nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	admin, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return admin, nil
}

func testServiceConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			AccessSecret:          "access-secret-for-tests",
			RefreshSecret:         "refresh-secret-for-tests",
			AccessTokenTTLMinutes: 15,
			RefreshTokenTTLDays:   7,
			BcryptCost:            4,
		},
	}
}

func newTestAuthService(t *testing.T, users repository.UserRepository, admins repository.AdminRepository) (*AuthService, *auth.TokenManager) {
	t.Helper()
	cfg := testServiceConfig()
	tokens, err := auth.NewTokenManager(cfg.Auth)
	require.NoError(t, err)
	return NewAuthService(cfg, tokens, AuthDependencies{UserRepo: users, AdminRepo: admins}), tokens
}

func activeUser(t *testing.T, id int64, email, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleUser,
		Status:       domain.UserStatusActive,
	}
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, code, domainErr.Code)
}

func TestLoginHappyPathClaimsRoundTrip(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 42, "a@x.com", "secret123"))
	svc, tokens := newTestAuthService(t, users, newFakeAdminRepo())

	user, pair, err := svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	require.NotNil(t, pair)

	claims, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.False(t, claims.IsAdmin)

	refreshClaims, err := tokens.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), refreshClaims.SubjectID)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 1, "a@x.com", "secret123"))
	svc, _ := newTestAuthService(t, users, newFakeAdminRepo())

	_, _, errWrongPassword := svc.Login(context.Background(), "a@x.com", "wrong-password")
	_, _, errUnknownEmail := svc.Login(context.Background(), "nobody@x.com", "secret123")

	requireDomainCode(t, errWrongPassword, apperrors.CodeInvalidCredentials)
	requireDomainCode(t, errUnknownEmail, apperrors.CodeInvalidCredentials)

	wrongErr := apperrors.ToDomainError(errWrongPassword)
	unknownErr := apperrors.ToDomainError(errUnknownEmail)
	assert.Equal(t, wrongErr.Message, unknownErr.Message)
	assert.Equal(t, wrongErr.HTTPStatus, unknownErr.HTTPStatus)
}

func TestLoginRejectsInactiveAccounts(t *testing.T) {
	for _, status := range []domain.UserStatus{
		domain.UserStatusSuspended,
		domain.UserStatusBanned,
		domain.UserStatusPendingDeletion,
	} {
		t.Run(string(status), func(t *testing.T) {
			user := activeUser(t, 1, "a@x.com", "secret123")
			user.Status = status
			svc, _ := newTestAuthService(t, newFakeUserRepo(user), newFakeAdminRepo())

			_, _, err := svc.Login(context.Background(), "a@x.com", "secret123")
			requireDomainCode(t, err, apperrors.CodeAccountNotActive)
		})
	}
}

func TestAdminLoginSkipsStatusCheck(t *testing.T) {
	hash, err := auth.HashPassword("admin-pass", 4)
	require.NoError(t, err)
	admins := newFakeAdminRepo(&domain.AdminUser{
		ID:           7,
		Username:     "root",
		Name:         "Root",
		PasswordHash: hash,
		Role:         domain.AdminRoleSuperAdmin,
	})
	svc, tokens := newTestAuthService(t, newFakeUserRepo(), admins)

	admin, pair, err := svc.AdminLogin(context.Background(), "root", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, int64(7), admin.ID)

	claims, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "root", claims.Email)

	_, _, err = svc.AdminLogin(context.Background(), "root", "wrong")
	requireDomainCode(t, err, apperrors.CodeInvalidCredentials)

	_, _, err = svc.AdminLogin(context.Background(), "ghost", "admin-pass")
	requireDomainCode(t, err, apperrors.CodeInvalidCredentials)
}

func TestRegisterConflictsOnExistingEmail(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 1, "a@x.com", "secret123"))
	svc, _ := newTestAuthService(t, users, newFakeAdminRepo())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dup",
		Email:    "a@x.com",
		Password: "secret123",
	})
	requireDomainCode(t, err, apperrors.CodeConflict)
}

func TestRegisterCreatesActiveUserAndIssuesTokens(t *testing.T) {
	users := newFakeUserRepo()
	svc, tokens := newTestAuthService(t, users, newFakeAdminRepo())

	user, pair, err := svc.Register(context.Background(), RegisterInput{
		Name:     "New User",
		Email:    "new@x.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.Equal(t, domain.UserRoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	require.NoError(t, auth.ComparePassword(user.PasswordHash, "secret123"))

	claims, err := tokens.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)
}

func TestRefreshReMintsFromClaimsWithoutStoreQuery(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 42, "a@x.com", "secret123"))
	svc, tokens := newTestAuthService(t, users, newFakeAdminRepo())

	_, pair, err := svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)

	// Ban the user after login. The refresh path must still succeed
	// because it never re-queries the store.
	require.NoError(t, users.UpdateStatus(context.Background(), 42, domain.UserStatusBanned))

	accessToken, expiresAt, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tokens.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectID)
	assert.Equal(t, "user", claims.Role)
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	svc, tokens := newTestAuthService(t, newFakeUserRepo(), newFakeAdminRepo())

	_, _, err := svc.Refresh("garbage")
	requireDomainCode(t, err, apperrors.CodeInvalidToken)

	// An access token must not pass as a refresh token.
	access, _, err := tokens.IssueAccessToken(auth.Claims{SubjectID: 1})
	require.NoError(t, err)
	_, _, err = svc.Refresh(access)
	requireDomainCode(t, err, apperrors.CodeInvalidToken)
}

func TestCurrentUserAndAdminNotFound(t *testing.T) {
	svc, _ := newTestAuthService(t, newFakeUserRepo(), newFakeAdminRepo())

	_, err := svc.CurrentUser(context.Background(), 123)
	requireDomainCode(t, err, apperrors.CodeNotFound)

	_, err = svc.CurrentAdmin(context.Background(), 123)
	requireDomainCode(t, err, apperrors.CodeNotFound)
}
