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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/provalab/prova-api/internal/config"
	"github.com/provalab/prova-api/internal/database"
	"github.com/provalab/prova-api/internal/handler"
	"github.com/provalab/prova-api/internal/middleware"
	"github.com/provalab/prova-api/internal/repository"
	"github.com/provalab/prova-api/internal/router"
	"github.com/provalab/prova-api/internal/service"
	"github.com/provalab/prova-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var (
		kv          store.Store
		redisClient *redis.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		kv = store.NewRedisStore(redisClient)
		logger.Info().Msg("using redis store")
	} else {
		db, err := database.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
		kv, err = store.NewGormStore(db)
		if err != nil {
			log.Fatalf("failed to initialise sqlite store: %v", err)
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("using sqlite store")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	questionRepo := repository.NewQuestionRepository(kv)
	examRepo := repository.NewExamRepository(kv)
	submissionRepo := repository.NewSubmissionRepository(kv)
	seriesRepo := repository.NewSeriesRepository(kv)
	classRepo := repository.NewClassRepository(kv)

	questionService := service.NewQuestionService(questionRepo, validate, logger)
	examService := service.NewExamService(examRepo, questionRepo, validate, logger)
	scoringService := service.NewScoringService(examRepo, submissionRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, logger)
	seriesService := service.NewSeriesService(seriesRepo, validate, logger)
	classService := service.NewClassService(classRepo, seriesRepo, validate, logger)
	analyticsService := service.NewAnalyticsService(submissionRepo, redisClient, cfg.DashboardCacheTTL, logger)
	importService := service.NewImportService(questionRepo, logger)
	reportService := service.NewReportService(questionRepo, seriesRepo, examRepo, submissionRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		QuestionHandler:   handler.NewQuestionHandler(questionService, importService, reportService, validate, logger),
		ExamHandler:       handler.NewExamHandler(examService, scoringService, validate, cfg.BaseURL, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, scoringService, validate, logger),
		SeriesHandler:     handler.NewSeriesHandler(seriesService, reportService, logger),
		ClassHandler:      handler.NewClassHandler(classService, logger),
		AnalyticsHandler:  handler.NewAnalyticsHandler(analyticsService, logger),
		ReportHandler:     handler.NewReportHandler(reportService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
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
