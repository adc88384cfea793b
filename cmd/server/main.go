package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/chynybekuuludastan/content_optimizer/internal/api"
	"github.com/chynybekuuludastan/content_optimizer/internal/config"
	"github.com/chynybekuuludastan/content_optimizer/internal/database"
	"github.com/chynybekuuludastan/content_optimizer/internal/database/seed"
	"github.com/chynybekuuludastan/content_optimizer/internal/repository"
	"github.com/chynybekuuludastan/content_optimizer/internal/service/llm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize configuration
	cfg := config.NewConfig()

	// Connect to PostgreSQL
	db, err := database.InitPostgreSQL(cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	if err := seed.SeedAll(db.DB); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Connect to Redis
	redisClient, err := database.InitRedis(cfg.RedisURI)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Pick the analysis provider. Without a Gemini key the deterministic
	// fallback serves every analysis.
	provider := newProvider(cfg)
	defer provider.Close()
	log.Printf("Using analysis provider: %s", provider.Name())

	llmService := llm.NewService(llm.ServiceOptions{
		Provider:    provider,
		RedisClient: redisClient.Client,
		RateLimit:   rate.Limit(cfg.AIRateLimit),
		CacheTTL:    cfg.AICacheTTL,
		MaxRetries:  cfg.AIMaxRetries,
	})

	repos := repository.NewRepositoryFactory(db.DB)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH",
	}))

	// Setup routes
	api.SetupRoutes(app, db, redisClient, repos, llmService, cfg)

	// Start server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}

// newProvider returns the configured analysis provider, falling back to
// the deterministic provider when Gemini is not configured or unavailable
func newProvider(cfg *config.Config) llm.Provider {
	if cfg.AIProvider == "gemini" && cfg.GeminiAPIKey != "" {
		provider, err := llm.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, nil)
		if err != nil {
			log.Printf("Gemini provider unavailable, using fallback: %v", err)
			return llm.NewFallbackProvider()
		}
		return provider
	}
	return llm.NewFallbackProvider()
}
