package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// NewsRepository encapsulates news persistence.
type NewsRepository interface {
	Create(ctx context.Context, item *domain.NewsItem) error
	Update(ctx context.Context, item *domain.NewsItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.NewsItem, error)
	List(ctx context.Context, limit, offset int) ([]domain.NewsItem, int64, error)
}

type newsRepository struct {
	pool *pgxpool.Pool
}

// NewNewsRepository instantiates the repository.
func NewNewsRepository(pool *pgxpool.Pool) NewsRepository {
	return &newsRepository{pool: pool}
}

const newsColumns = `id, title, title_en, body, body_en, image_url, created_at, updated_at`

func (r *newsRepository) Create(ctx context.Context, item *domain.NewsItem) error {
	const query = `
        INSERT INTO news (title, title_en, body, body_en, image_url)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.Title,
		item.TitleEn,
		item.Body,
		item.BodyEn,
		item.ImageURL,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *newsRepository) Update(ctx context.Context, item *domain.NewsItem) error {
	const query = `
        UPDATE news SET title=$1, title_en=$2, body=$3, body_en=$4, image_url=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		item.Title,
		item.TitleEn,
		item.Body,
		item.BodyEn,
		item.ImageURL,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id int64) (*domain.NewsItem, error) {
	var item domain.NewsItem
	if err := r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id=$1`, id).Scan(
		&item.ID,
		&item.Title,
		&item.TitleEn,
		&item.Body,
		&item.BodyEn,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *newsRepository) List(ctx context.Context, limit, offset int) ([]domain.NewsItem, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM news`).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []domain.NewsItem{}
	for rows.Next() {
		var item domain.NewsItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.TitleEn,
			&item.Body,
			&item.BodyEn,
			&item.ImageURL,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}
