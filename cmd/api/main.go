package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/config"
	"github.com/thilanga24/dropout-prevention-api/internal/database"
	"github.com/thilanga24/dropout-prevention-api/internal/handler"
	"github.com/thilanga24/dropout-prevention-api/internal/middleware"
	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
	"github.com/thilanga24/dropout-prevention-api/internal/risk"
	"github.com/thilanga24/dropout-prevention-api/internal/router"
	"github.com/thilanga24/dropout-prevention-api/internal/service"
	"github.com/thilanga24/dropout-prevention-api/pkg/advisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.SignalSnapshot{},
		&models.RiskSnapshot{},
		&models.Recommendation{},
		&models.Intervention{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	generator, err := buildGenerator(cfg, logger)
	if err != nil {
		log.Fatalf("failed to configure recommendation generator: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	evaluator := risk.New(cfg.Rules)

	studentRepo := repository.NewStudentRepository(db)
	signalRepo := repository.NewSignalRepository(db)
	riskRepo := repository.NewRiskRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)
	interventionRepo := repository.NewInterventionRepository(db)

	signalService := service.NewSignalService(studentRepo, signalRepo, cfg.Rules, validate, logger)
	agentService := service.NewAgentService(signalRepo, riskRepo, recommendationRepo, evaluator, generator, cfg.AgentWorkers, cfg.GeneratorTimeout, logger)
	overviewService := service.NewRiskOverviewService(riskRepo, redisClient, cfg.OverviewCacheTTL, logger)
	timelineService := service.NewTimelineService(studentRepo, signalRepo, riskRepo, recommendationRepo, interventionRepo, logger)
	interventionService := service.NewInterventionService(studentRepo, interventionRepo, validate, logger)

	studentHandler := handler.NewStudentHandler(signalService, timelineService, logger)
	agentHandler := handler.NewAgentHandler(agentService, logger)
	overviewHandler := handler.NewOverviewHandler(overviewService, logger)
	interventionHandler := handler.NewInterventionHandler(interventionService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:      studentHandler,
		AgentHandler:        agentHandler,
		OverviewHandler:     overviewHandler,
		InterventionHandler: interventionHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildGenerator picks the recommendation generator for the configured
// provider. A disabled generator means the batch loop skips recommendations
// but still persists risk snapshots.
func buildGenerator(cfg config.Config, logger zerolog.Logger) (advisor.Generator, error) {
	if !cfg.GeneratorEnabled {
		return nil, nil
	}

	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn().Msg("openai api key missing; using fallback recommendations")
			return advisor.NewFallbackGenerator(), nil
		}
		return advisor.NewOpenAIGenerator(advisor.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
	case "fallback":
		return advisor.NewFallbackGenerator(), nil
	default:
		logger.Warn().Str("provider", cfg.AIProvider).Msg("unknown ai provider; using fallback recommendations")
		return advisor.NewFallbackGenerator(), nil
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
