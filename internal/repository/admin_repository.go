package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// AdminRepository defines persistence access for dashboard admins.
type AdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, username, name, password_hash, role, permissions, created_at, updated_at`

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	return r.fetchSingle(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE id=$1`, id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	return r.fetchSingle(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE username=$1`, username)
}

func (r *adminRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Username,
		&admin.Name,
		&admin.PasswordHash,
		&admin.Role,
		&admin.Permissions,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
