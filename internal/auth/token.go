package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// Verification failure kinds. ErrTokenExpired means the signature was
// valid but the expiry has passed; everything else is ErrTokenInvalid.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the payload embedded in both token kinds.
type Claims struct {
	SubjectID int64  `json:"uid"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	jwt.RegisteredClaims
}

// UserClaims builds the claim set for an app user credential snapshot.
func UserClaims(user *domain.User) Claims {
	return Claims{SubjectID: user.ID, Email: user.Email, Role: string(user.Role)}
}

// AdminClaims builds the claim set for an admin credential snapshot.
// The username stands in for the email field, mirroring the separate
// admin credential space.
func AdminClaims(admin *domain.AdminUser) Claims {
	return Claims{SubjectID: admin.ID, Email: admin.Username, Role: string(admin.Role), IsAdmin: true}
}

// TokenManager signs and verifies access and refresh JWTs with
// independent secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager builds a manager; both secrets are required.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, config.ErrMissingSecrets
	}
	accessTTL := cfg.AccessTokenTTL()
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL()
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTTL returns the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration {
	return tm.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refreshTTL
}

// IssueAccessToken signs a short-lived access token for the claims.
func (tm *TokenManager) IssueAccessToken(claims Claims) (string, time.Time, error) {
	return sign(claims, tm.accessSecret, tm.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the claims.
func (tm *TokenManager) IssueRefreshToken(claims Claims) (string, time.Time, error) {
	return sign(claims, tm.refreshSecret, tm.refreshTTL)
}

// VerifyAccessToken validates an access token and returns its claims.
func (tm *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return verify(token, tm.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func (tm *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return verify(token, tm.refreshSecret)
}

func sign(claims Claims, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
