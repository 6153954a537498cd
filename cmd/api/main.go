package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/ats-parser/internal/config"
	"alfredoptarigan/ats-parser/internal/handlers"
	"alfredoptarigan/ats-parser/internal/repositories"
	"alfredoptarigan/ats-parser/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.TempPath)
	if err := storageService.EnsureTempDir(); err != nil {
		log.Fatalf("❌ Failed to create temp directory: %v", err)
	}

	geminiService, err := services.NewGeminiService(services.GeminiOptions{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		EmbedModel:  cfg.Gemini.EmbedModel,
		Temperature: cfg.Gemini.Temperature,
		MaxRetries:  cfg.Pipeline.RetryMaxAttempts,
		RetryDelay:  cfg.Pipeline.RetryInitialDelay,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// The resume index is optional; without Qdrant, search answers 503.
	var resumeIndex services.ResumeIndex
	if cfg.Qdrant.URL != "" {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err = qdrantService.InitCollection(initCtx)
		cancel()
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		resumeIndex = services.NewResumeIndex(geminiService, qdrantService, services.NewTextChunker())
		log.Println("✅ Qdrant initialized successfully")
	} else {
		log.Println("⚠️  QDRANT_URL not set, semantic search disabled")
	}

	converter := services.NewDocumentConverter(storageService, geminiService)
	pipeline := services.NewResumePipeline(
		converter,
		services.NewPromptBuilder(cfg.Gemini.MaxPromptChars),
		geminiService,
		services.NewMaterializer(candidateRepo),
		resumeIndex,
		cfg.Pipeline.MaxResponseBytes,
	)
	authService := services.NewAuthService(userRepo)
	exportService := services.NewExportService()
	log.Println("✅ Services initialized successfully")

	store := session.New(session.Config{
		Expiration:     cfg.Server.SessionTTL,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: "Lax",
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, store)
	profileHandler := handlers.NewProfileHandler(authService)
	uploadHandler := handlers.NewUploadHandler(jobRepo, pipeline, cfg.Storage.MaxFileSize, cfg.Storage.MaxFiles)
	jobHandler := handlers.NewJobHandler(jobRepo, candidateRepo, resumeIndex)
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, exportService, resumeIndex)
	log.Println("✅ Handlers initialized")

	// Extraction calls the model once per file, so writes get a generous timeout.
	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Parser API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize)*cfg.Storage.MaxFiles + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/auth/login", authHandler.HandleLogin)
	api.Post("/auth/logout", authHandler.HandleLogout)

	protected := api.Group("", authHandler.RequireAuth)

	protected.Get("/me", profileHandler.HandleGetProfile)
	protected.Put("/me", profileHandler.HandleUpdateProfile)

	protected.Post("/upload", uploadHandler.HandleUpload)

	protected.Get("/jobs", jobHandler.HandleList)
	protected.Post("/jobs", jobHandler.HandleCreate)
	protected.Get("/jobs/:id", jobHandler.HandleGet)
	protected.Put("/jobs/:id", jobHandler.HandleUpdate)
	protected.Delete("/jobs/:id", jobHandler.HandleDelete)
	protected.Post("/jobs/:id/resumes", uploadHandler.HandleUpload)

	protected.Get("/candidates", candidateHandler.HandleList)
	protected.Get("/candidates/autocomplete", candidateHandler.HandleAutocomplete)
	protected.Get("/candidates/export", candidateHandler.HandleExport)
	protected.Get("/candidates/search", candidateHandler.HandleSearch)
	protected.Get("/candidates/:id", candidateHandler.HandleGet)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ATS Resume Parser API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/login",
				"POST /api/v1/jobs/:id/resumes",
				"POST /api/v1/upload",
				"GET /api/v1/jobs",
				"GET /api/v1/candidates",
				"GET /api/v1/candidates/search",
				"GET /api/v1/candidates/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
