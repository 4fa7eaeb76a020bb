package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ReviewRepository encapsulates review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error)
	ExistsForUser(ctx context.Context, listingID, userID int64) (bool, error)
	SetReply(ctx context.Context, id int64, reply string, at time.Time) (*domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates the repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

const reviewColumns = `id, service_id, user_id, rating, comment, admin_reply, admin_reply_at, created_at, updated_at`

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (service_id, user_id, rating, comment)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		review.ListingID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	const query = `UPDATE reviews SET rating=$1, comment=$2, updated_at=NOW() WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, review.Rating, review.Comment, review.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var review domain.Review
	if err := r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id=$1`, id).Scan(
		&review.ID,
		&review.ListingID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.AdminReply,
		&review.AdminReplyAt,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE service_id=$1 ORDER BY created_at DESC`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.ListingID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.AdminReply,
			&review.AdminReplyAt,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) ExistsForUser(ctx context.Context, listingID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE service_id=$1 AND user_id=$2)`, listingID, userID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) SetReply(ctx context.Context, id int64, reply string, at time.Time) (*domain.Review, error) {
	const query = `
        UPDATE reviews SET admin_reply=$1, admin_reply_at=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING ` + reviewColumns

	var review domain.Review
	if err := r.pool.QueryRow(ctx, query, reply, at, id).Scan(
		&review.ID,
		&review.ListingID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.AdminReply,
		&review.AdminReplyAt,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}
