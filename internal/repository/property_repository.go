package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// PropertyFilter captures public search parameters.
type PropertyFilter struct {
	Type       *domain.PropertyType
	MinPrice   *float64
	MaxPrice   *float64
	MinArea    *float64
	MaxArea    *float64
	Bedrooms   *int
	Bathrooms  *int
	SearchTerm *string
	SortBy     string
	Ascending  bool
	Limit      int
	Offset     int
}

// PropertyRepository encapsulates property persistence.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, int64, error)
	IncrementViews(ctx context.Context, id int64) error
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository instantiates the repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

const propertyColumns = `id, user_id, title, title_en, type, price, area, bedrooms, bathrooms,
               description, description_en, address, lat, lng, images, amenities, phone, views,
               created_at, updated_at`

// sortable whitelists ORDER BY columns reachable from query params.
var propertySortable = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"area":       "area",
	"views":      "views",
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (user_id, title, title_en, type, price, area, bedrooms, bathrooms,
            description, description_en, address, lat, lng, images, amenities, phone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, views, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		property.UserID,
		property.Title,
		property.TitleEn,
		property.Type,
		property.Price,
		property.Area,
		property.Bedrooms,
		property.Bathrooms,
		property.Description,
		property.DescriptionEn,
		property.Address,
		property.Lat,
		property.Lng,
		property.Images,
		property.Amenities,
		property.Phone,
	).Scan(&property.ID, &property.Views, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	const query = `
        UPDATE properties SET title=$1, title_en=$2, type=$3, price=$4, area=$5, bedrooms=$6,
            bathrooms=$7, description=$8, description_en=$9, address=$10, lat=$11, lng=$12,
            images=$13, amenities=$14, phone=$15, updated_at=NOW()
        WHERE id=$16`

	cmd, err := r.pool.Exec(ctx, query,
		property.Title,
		property.TitleEn,
		property.Type,
		property.Price,
		property.Area,
		property.Bedrooms,
		property.Bathrooms,
		property.Description,
		property.DescriptionEn,
		property.Address,
		property.Lat,
		property.Lng,
		property.Images,
		property.Amenities,
		property.Phone,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id=$1`, propertyColumns)

	var property domain.Property
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.UserID,
		&property.Title,
		&property.TitleEn,
		&property.Type,
		&property.Price,
		&property.Area,
		&property.Bedrooms,
		&property.Bathrooms,
		&property.Description,
		&property.DescriptionEn,
		&property.Address,
		&property.Lat,
		&property.Lng,
		&property.Images,
		&property.Amenities,
		&property.Phone,
		&property.Views,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context, filter PropertyFilter) ([]domain.Property, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.MinArea != nil {
		args = append(args, *filter.MinArea)
		clauses = append(clauses, fmt.Sprintf("area >= $%d", len(args)))
	}
	if filter.MaxArea != nil {
		args = append(args, *filter.MaxArea)
		clauses = append(clauses, fmt.Sprintf("area <= $%d", len(args)))
	}
	if filter.Bedrooms != nil {
		args = append(args, *filter.Bedrooms)
		clauses = append(clauses, fmt.Sprintf("bedrooms=$%d", len(args)))
	}
	if filter.Bathrooms != nil {
		args = append(args, *filter.Bathrooms)
		clauses = append(clauses, fmt.Sprintf("bathrooms=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s OR LOWER(address) LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM properties WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderCol, ok := propertySortable[filter.SortBy]
	if !ok {
		orderCol = "created_at"
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

	query := fmt.Sprintf(`SELECT %s FROM properties WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		propertyColumns, where, orderCol, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	properties := []domain.Property{}
	for rows.Next() {
		var property domain.Property
		if err := rows.Scan(
			&property.ID,
			&property.UserID,
			&property.Title,
			&property.TitleEn,
			&property.Type,
			&property.Price,
			&property.Area,
			&property.Bedrooms,
			&property.Bathrooms,
			&property.Description,
			&property.DescriptionEn,
			&property.Address,
			&property.Lat,
			&property.Lng,
			&property.Images,
			&property.Amenities,
			&property.Phone,
			&property.Views,
			&property.CreatedAt,
			&property.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		properties = append(properties, property)
	}
	return properties, total, rows.Err()
}

func (r *propertyRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE properties SET views = views + 1 WHERE id=$1`, id)
	return err
}
