package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peer-review-service/api"
	"peer-review-service/internal/config"
	"peer-review-service/internal/database"
	"peer-review-service/internal/handler"
	"peer-review-service/internal/repository"
	"peer-review-service/internal/usecase"
	"peer-review-service/internal/wiki"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// Конфиг
	cfg, cfgErr := config.LoadConfig()

	// Логгер
	logger := config.NewLogger(cfg.LogLevel)
	if cfgErr != nil {
		logger.Warnf(".env not found: %v", cfgErr)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	queries := database.New(db)

	// Репозитории
	questionnaireRepo := repository.NewQuestionnaireRepository(db, queries)
	questionRepo := repository.NewQuestionRepository(db, queries)
	assignmentRepo := repository.NewAssignmentRepository(db, queries)

	// Сборщик правок DokuWiki
	collector := wiki.NewFromConfig(cfg.Wiki, logger)

	// Use Cases
	questionnaireUC := usecase.NewQuestionnaireUseCase(questionnaireRepo, assignmentRepo)
	importUC := usecase.NewImportUseCase(questionnaireRepo, questionRepo)
	wikiReviewUC := usecase.NewWikiReviewUseCase(collector)

	// Echo + Handlers
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(questionnaireUC, importUC, wikiReviewUC, logger)
	api.RegisterHandlers(e, apiHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
