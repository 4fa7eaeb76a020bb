package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// TokenPair bundles a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
	Address  *string
}

// AuthService coordinates registration, login, refresh and identity
// lookup for both credential spaces (app users and dashboard admins).
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, tokens *auth.TokenManager, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokens:     tokens,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a new app user account and logs it in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Address:      input.Address,
		Role:         domain.UserRoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(auth.UserClaims(user))
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates an app user by email. An unknown email and a
// wrong password produce the same error so the endpoint cannot be used
// to probe which addresses have accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, err
	}

	if user.Status != domain.UserStatusActive {
		return nil, nil, apperrors.NewAccountNotActive()
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	pair, err := s.issuePair(auth.UserClaims(user))
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// AdminLogin authenticates a dashboard admin by username against the
// separate admin table. Admin rows carry no status field, so no
// active-status check applies here.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*domain.AdminUser, *TokenPair, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, err
	}

	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	pair, err := s.issuePair(auth.AdminClaims(admin))
	if err != nil {
		return nil, nil, err
	}
	return admin, pair, nil
}

// Refresh mints a new access token from a valid refresh token. The new
// token carries the claims the refresh token held; credential state is
// NOT re-checked against the store, so role edits or bans only take
// effect once the refresh token itself expires.
func (s *AuthService) Refresh(refreshToken string) (string, time.Time, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", time.Time{}, apperrors.NewTokenExpired()
		}
		return "", time.Time{}, apperrors.NewInvalidToken()
	}

	return s.tokens.IssueAccessToken(auth.Claims{
		SubjectID: claims.SubjectID,
		Email:     claims.Email,
		Role:      claims.Role,
		IsAdmin:   claims.IsAdmin,
	})
}

// CurrentUser re-fetches the live user row for a verified context.
func (s *AuthService) CurrentUser(ctx context.Context, subjectID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// CurrentAdmin re-fetches the live admin row for a verified context.
func (s *AuthService) CurrentAdmin(ctx context.Context, subjectID int64) (*domain.AdminUser, error) {
	admin, err := s.admins.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin")
		}
		return nil, err
	}
	return admin, nil
}

func (s *AuthService) issuePair(claims auth.Claims) (*TokenPair, error) {
	access, accessExp, err := s.tokens.IssueAccessToken(claims)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.IssueRefreshToken(claims)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}
