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

	"github.com/Codeversity-bois/JD-parser/internal/config"
	"github.com/Codeversity-bois/JD-parser/internal/handlers"
	"github.com/Codeversity-bois/JD-parser/internal/repositories"
	"github.com/Codeversity-bois/JD-parser/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	runRepo := repositories.NewRunRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	leetcodeService := services.NewLeetcodeService(cfg.Leetcode.BaseURL, cfg.Leetcode.Timeout)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	fieldIndex, err := services.NewQdrantIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := fieldIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize matching pipeline
	bounder := services.NewTextBounder()
	embedder := services.NewEmbedder(geminiService, bounder, cfg.Matching.MaxEmbedChars)
	jobParser := services.NewJobParser(geminiService)
	matcher := services.NewMatcher(fieldIndex, cfg.Matching.Weights)
	evaluator := services.NewGeminiEvaluator(geminiService)
	orchestrator := services.NewOrchestrator(
		evaluator,
		cfg.Worker.Concurrency,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
		cfg.Matching.AcceptSet,
	)
	pipeline := services.NewPipeline(
		jobRepo,
		candidateRepo,
		matcher,
		orchestrator,
		cfg.Matching.KeepFraction,
	)
	log.Println("✅ Matching pipeline initialized")

	// Initialize worker
	worker := services.NewWorker(runRepo, pipeline, cfg.Worker.Concurrency)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	jobHandler := handlers.NewJobHandler(
		jobRepo,
		candidateRepo,
		runRepo,
		jobParser,
		embedder,
		fieldIndex,
		worker,
	)
	candidateHandler := handlers.NewCandidateHandler(
		candidateRepo,
		embedder,
		fieldIndex,
		leetcodeService,
	)
	resumeHandler := handlers.NewResumeHandler(storageService, pdfParser)
	resultHandler := handlers.NewResultHandler(runRepo)
	statsHandler := handlers.NewStatsHandler(jobRepo, candidateRepo, runRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "JD Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/jobs", jobHandler.HandleSubmitJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Delete("/jobs/:id", jobHandler.HandleDeleteJob)
	api.Post("/jobs/:id/evaluate", jobHandler.HandleEvaluate)
	api.Post("/candidates", candidateHandler.HandleSubmit)
	api.Get("/candidates", candidateHandler.HandleList)
	api.Get("/candidates/:id", candidateHandler.HandleGet)
	api.Post("/resumes", resumeHandler.HandleUpload)
	api.Get("/runs/:id", resultHandler.HandleGetRun)
	api.Get("/stats", statsHandler.HandleGetStats)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "JD Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"DELETE /api/v1/jobs/:id",
				"POST /api/v1/jobs/:id/evaluate",
				"POST /api/v1/candidates",
				"GET /api/v1/candidates",
				"GET /api/v1/candidates/:id",
				"POST /api/v1/resumes",
				"GET /api/v1/runs/:id",
				"GET /api/v1/stats",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
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
