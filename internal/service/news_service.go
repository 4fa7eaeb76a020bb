package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// NewsService manages announcements and static page content. Both are
// admin-curated, guarded at the routes.
type NewsService struct {
	news    repository.NewsRepository
	content repository.ContentRepository
}

// NewNewsService constructs the service.
func NewNewsService(news repository.NewsRepository, content repository.ContentRepository) *NewsService {
	return &NewsService{news: news, content: content}
}

func (s *NewsService) List(ctx context.Context, limit, offset int) ([]domain.NewsItem, int64, error) {
	return s.news.List(ctx, limit, offset)
}

func (s *NewsService) Get(ctx context.Context, id int64) (*domain.NewsItem, error) {
	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("news item")
		}
		return nil, err
	}
	return item, nil
}

func (s *NewsService) Create(ctx context.Context, item *domain.NewsItem) error {
	return s.news.Create(ctx, item)
}

func (s *NewsService) Update(ctx context.Context, item *domain.NewsItem) error {
	if err := s.news.Update(ctx, item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("news item")
		}
		return err
	}
	return nil
}

func (s *NewsService) Delete(ctx context.Context, id int64) error {
	if err := s.news.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("news item")
		}
		return err
	}
	return nil
}

// PageContent returns static page content by slug.
func (s *NewsService) PageContent(ctx context.Context, slug string) (*domain.PageContent, error) {
	content, err := s.content.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("page")
		}
		return nil, err
	}
	return content, nil
}

// UpsertPageContent creates or replaces static page content.
func (s *NewsService) UpsertPageContent(ctx context.Context, content *domain.PageContent) error {
	return s.content.Upsert(ctx, content)
}
