package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ListingFilter captures public directory search parameters.
type ListingFilter struct {
	CategoryID    *int64
	SubCategoryID *int64
	SearchTerm    *string
	SortBy        string
	Ascending     bool
	Limit         int
	Offset        int
}

// ListingRepository encapsulates service-listing persistence,
// including the category tree.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, int64, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates the repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

// listingSelect joins review aggregates so list and detail responses can
// surface average rating without an extra round trip.
const listingSelect = `
        SELECT s.id, s.user_id, s.category_id, s.sub_category_id, s.name, s.name_en,
               s.description, s.description_en, s.phones, s.address, s.lat, s.lng, s.images,
               s.working_hours, s.website, s.facebook, s.instagram, s.created_at, s.updated_at,
               COALESCE(AVG(r.rating), 0) AS average_rating,
               COUNT(r.id) AS total_reviews
        FROM services s
        LEFT JOIN reviews r ON r.service_id = s.id`

const listingGroupBy = ` GROUP BY s.id`

var listingSortable = map[string]string{
	"created_at": "s.created_at",
	"name":       "s.name",
	"rating":     "average_rating",
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO services (user_id, category_id, sub_category_id, name, name_en, description,
            description_en, phones, address, lat, lng, images, working_hours, website, facebook, instagram)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		listing.UserID,
		listing.CategoryID,
		listing.SubCategoryID,
		listing.Name,
		listing.NameEn,
		listing.Description,
		listing.DescriptionEn,
		listing.Phones,
		listing.Address,
		listing.Lat,
		listing.Lng,
		listing.Images,
		listing.WorkingHours,
		listing.Website,
		listing.Facebook,
		listing.Instagram,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	const query = `
        UPDATE services SET category_id=$1, sub_category_id=$2, name=$3, name_en=$4, description=$5,
            description_en=$6, phones=$7, address=$8, lat=$9, lng=$10, images=$11,
            working_hours=$12, website=$13, facebook=$14, instagram=$15, updated_at=NOW()
        WHERE id=$16`

	cmd, err := r.pool.Exec(ctx, query,
		listing.CategoryID,
		listing.SubCategoryID,
		listing.Name,
		listing.NameEn,
		listing.Description,
		listing.DescriptionEn,
		listing.Phones,
		listing.Address,
		listing.Lat,
		listing.Lng,
		listing.Images,
		listing.WorkingHours,
		listing.Website,
		listing.Facebook,
		listing.Instagram,
		listing.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	query := listingSelect + ` WHERE s.id=$1` + listingGroupBy

	var listing domain.Listing
	if err := scanListing(r.pool.QueryRow(ctx, query, id), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]domain.Listing, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("s.category_id=$%d", len(args)))
	}
	if filter.SubCategoryID != nil {
		args = append(args, *filter.SubCategoryID)
		clauses = append(clauses, fmt.Sprintf("s.sub_category_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(s.name) LIKE %s OR LOWER(s.description) LIKE %s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM services s WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol, ok := listingSortable[filter.SortBy]
	if !ok {
		orderCol = "s.created_at"
	}
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s%s ORDER BY %s %s LIMIT %d OFFSET %d`,
		listingSelect, where, listingGroupBy, orderCol, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		var listing domain.Listing
		if err := scanListing(rows, &listing); err != nil {
			return nil, 0, err
		}
		listings = append(listings, listing)
	}
	return listings, total, rows.Err()
}

func (r *listingRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT id, name, name_en, icon, order_index FROM categories ORDER BY order_index`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	index := map[int64]int{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.NameEn, &category.Icon, &category.OrderIndex); err != nil {
			return nil, err
		}
		category.SubCategories = []domain.SubCategory{}
		index[category.ID] = len(categories)
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const subQuery = `SELECT id, category_id, name, name_en FROM sub_categories ORDER BY id`
	subRows, err := r.pool.Query(ctx, subQuery)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var sub domain.SubCategory
		if err := subRows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.NameEn); err != nil {
			return nil, err
		}
		if pos, ok := index[sub.CategoryID]; ok {
			categories[pos].SubCategories = append(categories[pos].SubCategories, sub)
		}
	}
	return categories, subRows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner, listing *domain.Listing) error {
	return row.Scan(
		&listing.ID,
		&listing.UserID,
		&listing.CategoryID,
		&listing.SubCategoryID,
		&listing.Name,
		&listing.NameEn,
		&listing.Description,
		&listing.DescriptionEn,
		&listing.Phones,
		&listing.Address,
		&listing.Lat,
		&listing.Lng,
		&listing.Images,
		&listing.WorkingHours,
		&listing.Website,
		&listing.Facebook,
		&listing.Instagram,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.AverageRating,
		&listing.TotalReviews,
	)
}
