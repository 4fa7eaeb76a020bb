package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// NewsHandler exposes news items and static page content.
type NewsHandler struct {
	news *service.NewsService
}

func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// List handles GET /api/news.
func (h *NewsHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c)

	items, total, err := h.news.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"news":       dto.NewsListFromDomain(items),
		"pagination": dto.NewPagination(total, page, limit),
	})
}

// Get handles GET /api/news/:id.
func (h *NewsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.news.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"news": dto.NewsFromDomain(item)})
}

// Create handles POST /api/news (admin).
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	var req dto.NewsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item := &domain.NewsItem{
		Title:    req.Title,
		TitleEn:  req.TitleEn,
		Body:     req.Body,
		BodyEn:   req.BodyEn,
		ImageURL: req.ImageURL,
	}
	if err := h.news.Create(c.Context(), item); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "news created",
		"news":    dto.NewsFromDomain(item),
	})
}

// Update handles PUT /api/news/:id (admin).
func (h *NewsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req dto.NewsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	item := &domain.NewsItem{
		ID:       id,
		Title:    req.Title,
		TitleEn:  req.TitleEn,
		Body:     req.Body,
		BodyEn:   req.BodyEn,
		ImageURL: req.ImageURL,
	}
	if err := h.news.Update(c.Context(), item); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "news updated",
		"news":    dto.NewsFromDomain(item),
	})
}

// Delete handles DELETE /api/news/:id (admin).
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.news.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "news deleted"})
}

// GetContent handles GET /api/content/:slug.
func (h *NewsHandler) GetContent(c *fiber.Ctx) error {
	slug := c.Params("slug")

	content, err := h.news.PageContent(c.Context(), slug)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"content": dto.ContentFromDomain(content)})
}

// UpsertContent handles PUT /api/content/:slug (admin).
func (h *NewsHandler) UpsertContent(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var req dto.ContentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	content := &domain.PageContent{
		Slug:  slug,
		Title: req.Title,
		Body:  req.Body,
	}
	if err := h.news.UpsertPageContent(c.Context(), content); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "content saved",
		"content": dto.ContentFromDomain(content),
	})
}
