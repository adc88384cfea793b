package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chynybekuuludastan/content_optimizer/internal/api/handlers"
	"github.com/chynybekuuludastan/content_optimizer/internal/api/middleware"
	"github.com/chynybekuuludastan/content_optimizer/internal/config"
	"github.com/chynybekuuludastan/content_optimizer/internal/database"
	"github.com/chynybekuuludastan/content_optimizer/internal/repository"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/llm"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	app *fiber.App,
	db *database.DatabaseClient,
	redisClient *database.RedisClient,
	repos *repository.Factory,
	llmService *llm.Service,
	cfg *config.Config,
) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(repos.UserRepository, redisClient, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	contentHandler := handlers.NewContentHandler(repos.ContentRepository, repos.RevisionRepository, redisClient)
	revisionHandler := handlers.NewRevisionHandler(repos.ContentRepository, repos.RevisionRepository)
	seoHandler := handlers.NewSEOHandler(repos.ContentRepository, repos.AnalysisRepository, repos.RevisionRepository, llmService, cfg)

	// API group
	api := app.Group("/api")

	// Health check route
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"provider": llmService.ProviderName(),
		})
	})

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", middleware.JWTMiddleware(cfg, redisClient), authHandler.RefreshToken)
	auth.Post("/logout", middleware.JWTMiddleware(cfg, redisClient), authHandler.Logout)
	auth.Get("/me", middleware.JWTMiddleware(cfg, redisClient), authHandler.GetMe)

	// User routes
	users := api.Group("/users", middleware.JWTMiddleware(cfg, redisClient))
	users.Get("/", middleware.AdminOnly(), userHandler.ListUsers)
	users.Get("/:id", middleware.Self("id"), userHandler.GetUser)
	users.Put("/:id", middleware.Self("id"), userHandler.UpdateUser)
	users.Delete("/:id", middleware.Self("id"), userHandler.DeleteUser)
	users.Patch("/:id/role", middleware.AdminOnly(), userHandler.UpdateRole)

	// Content routes
	content := api.Group("/content", middleware.JWTMiddleware(cfg, redisClient))
	content.Post("/", contentHandler.CreateContent)
	content.Get("/", contentHandler.ListContents)
	content.Get("/stats", contentHandler.GetStats)
	content.Get("/:id", contentHandler.GetContent)
	content.Put("/:id", contentHandler.UpdateContent)
	content.Delete("/:id", contentHandler.DeleteContent)

	// Revision routes
	revisions := api.Group("/revisions", middleware.JWTMiddleware(cfg, redisClient))
	revisions.Get("/single/:revisionId", revisionHandler.GetRevision)
	revisions.Get("/compare/:v1/:v2", revisionHandler.CompareRevisions)
	revisions.Post("/restore/:revisionId", revisionHandler.RestoreRevision)
	revisions.Get("/:contentId", revisionHandler.ListRevisions)
	revisions.Post("/:contentId", revisionHandler.CreateRevision)

	// SEO analysis routes
	seo := api.Group("/seo", middleware.JWTMiddleware(cfg, redisClient))
	seo.Post("/analyze/:contentId", seoHandler.AnalyzeContent)
	seo.Get("/analysis/:contentId", seoHandler.GetAnalysis)
	seo.Get("/keywords/:contentId", seoHandler.GetKeywords)
	seo.Post("/apply-suggestion", seoHandler.ApplySuggestion)
	seo.Get("/history/:contentId", seoHandler.GetHistory)
	seo.Post("/outline", seoHandler.GenerateOutline)
	seo.Post("/basic-metrics", seoHandler.BasicMetrics)
}
