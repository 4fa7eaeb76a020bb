package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ContentRepository encapsulates static page content persistence.
type ContentRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.PageContent, error)
	Upsert(ctx context.Context, content *domain.PageContent) error
}

type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository instantiates the repository.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

func (r *contentRepository) GetBySlug(ctx context.Context, slug string) (*domain.PageContent, error) {
	const query = `SELECT id, slug, title, body, updated_at FROM page_content WHERE slug=$1`

	var content domain.PageContent
	if err := r.pool.QueryRow(ctx, query, slug).Scan(
		&content.ID,
		&content.Slug,
		&content.Title,
		&content.Body,
		&content.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) Upsert(ctx context.Context, content *domain.PageContent) error {
	const query = `
        INSERT INTO page_content (slug, title, body)
        VALUES ($1,$2,$3)
        ON CONFLICT (slug) DO UPDATE SET title=EXCLUDED.title, body=EXCLUDED.body, updated_at=NOW()
        RETURNING id, updated_at`

	return r.pool.QueryRow(ctx, query, content.Slug, content.Title, content.Body).
		Scan(&content.ID, &content.UpdatedAt)
}
