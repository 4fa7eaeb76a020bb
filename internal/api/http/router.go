package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Properties     *handlers.PropertiesHandler
	Listings       *handlers.ListingsHandler
	News           *handlers.NewsHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    *RateLimiter
	GeneralMax     int
	AuthMax        int
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.RateLimiter.Limit("general", cfg.GeneralMax))

	authGroup := api.Group("/auth", cfg.RateLimiter.Limit("auth", cfg.AuthMax))
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", auth.RequireAdmin(), cfg.Users.Delete)
	users.Post("/:id/request-deletion", cfg.Users.RequestDeletion)
	users.Put("/:id/role", auth.RequireAdmin(), cfg.Users.UpdateRole)
	users.Get("/:id/favorites", cfg.Users.Favorites)

	properties := api.Group("/properties")
	properties.Get("/", cfg.Properties.List)
	properties.Get("/:id", cfg.Properties.Get)
	properties.Post("/", cfg.AuthMiddleware.Handle, cfg.Properties.Create)
	properties.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Properties.Update)
	properties.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Properties.Delete)

	services := api.Group("/services")
	services.Get("/categories", cfg.Listings.Categories)
	services.Get("/", cfg.Listings.List)
	services.Get("/:id", cfg.Listings.Get)
	services.Post("/", cfg.AuthMiddleware.Handle, cfg.Listings.Create)
	services.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Listings.Update)
	services.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Listings.Delete)
	services.Post("/:id/reviews", cfg.AuthMiddleware.Handle, cfg.Listings.AddReview)
	services.Put("/:serviceId/reviews/:reviewId", cfg.AuthMiddleware.Handle, cfg.Listings.UpdateReview)
	services.Delete("/:serviceId/reviews/:reviewId", cfg.AuthMiddleware.Handle, cfg.Listings.DeleteReview)
	services.Post("/:serviceId/reviews/:reviewId/reply", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Listings.ReplyToReview)

	news := api.Group("/news")
	news.Get("/", cfg.News.List)
	news.Get("/:id", cfg.News.Get)
	news.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.News.Create)
	news.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.News.Update)
	news.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.News.Delete)

	content := api.Group("/content")
	content.Get("/:slug", cfg.News.GetContent)
	content.Put("/:slug", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.News.UpsertContent)

	notifications := api.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/:id", cfg.Notifications.Get)
	notifications.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Notifications.Create)
	notifications.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Notifications.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewDomainError(apperrors.CodeNotFound, "route not found", fiber.StatusNotFound, nil)
	})
}
