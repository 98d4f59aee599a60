// @title         jobtion API
// @version       1.0
// @description   Job application tracker with an AI pipeline: parse a resume PDF into a structured document, extract a job posting from a URL, and tailor the resume to the job.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	_ "jobtion/docs"

	// internal imports
	"jobtion/api/http"
	"jobtion/api/http/handlers"
	"jobtion/pkg/config"
	"jobtion/pkg/health"
	"jobtion/pkg/health/checkers"
	"jobtion/pkg/llm/groq"
	memrepo "jobtion/pkg/repository/memory"
	pgrepo "jobtion/pkg/repository/postgres"
	"jobtion/pkg/resume"
	"jobtion/pkg/state"
	"jobtion/pkg/state/memorystore"
	"jobtion/pkg/state/redisstore"
	pgstorage "jobtion/pkg/storage/postgres"
	redisstorage "jobtion/pkg/storage/redis"
	"jobtion/pkg/synth"
	"jobtion/pkg/tailor"
	"jobtion/pkg/tracker"
	"jobtion/pkg/vacancy"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})

	// Load configuration from env/.env
	cfg := config.Load()

	ctx := context.Background()

	// Backends are optional: without DATABASE_URL / REDIS_URL the tracker
	// and snapshot store run in memory and state is lost on restart.
	var checks []health.Checker

	var jobRepo tracker.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgstorage.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()
		repo, err := pgrepo.NewJobRepository(pool)
		if err != nil {
			log.Fatalf("init job repo: %v", err)
		}
		jobRepo = repo
		checks = append(checks, checkers.NewPostgresChecker(pool))
	} else {
		log.Print("DATABASE_URL not set, tracker uses in-memory storage")
		jobRepo = memrepo.NewJobRepository()
	}

	var snapshots state.Store
	if cfg.RedisURL != "" {
		rdb, err := redisstorage.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		snapshots = redisstore.New(rdb)
		checks = append(checks, checkers.NewRedisChecker(rdb))
	} else {
		log.Print("REDIS_URL not set, snapshots use in-memory storage")
		snapshots = memorystore.New()
	}

	// Health service: compose checkers
	readiness := health.NewService(checks...)
	healthHandler := handlers.NewHealthHandler(readiness)

	// Groq client and the synthesis layer shared by the AI endpoints
	model := groq.New(cfg.GroqAPIKey, cfg.GroqBase, cfg.GroqModel)
	synthesizer := synth.New(model)

	parseSvc := resume.NewParseService(resume.NewPDFExtractor(), synthesizer)
	resumeHandler := handlers.NewResumeHandler(parseSvc, cfg.MaxUploadMB)

	extractSvc := vacancy.NewExtractService(vacancy.NewPageFetcher(), synthesizer)
	extractHandler := handlers.NewExtractHandler(extractSvc)

	tailorSvc := tailor.NewService(extractSvc, synthesizer)
	tailorHandler := handlers.NewTailorHandler(tailorSvc)

	trackerUC := tracker.NewService(jobRepo)
	jobsHandler := handlers.NewJobsHandler(trackerUC)

	stateUC := state.NewService(snapshots)
	stateHandler := handlers.NewStateHandler(stateUC)

	// Register routes
	http.Register(app, healthHandler, resumeHandler, extractHandler, tailorHandler, jobsHandler, stateHandler)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	port := cfg.Port
	log.Printf("HTTP server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
