package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/uniexpo/fair-system/config"
	"github.com/uniexpo/fair-system/db"
	"github.com/uniexpo/fair-system/handlers"
	"github.com/uniexpo/fair-system/live"
	"github.com/uniexpo/fair-system/middleware"
	"github.com/uniexpo/fair-system/repositories"
	"github.com/uniexpo/fair-system/routes"
	"github.com/uniexpo/fair-system/services"
	"github.com/uniexpo/fair-system/storage"
)

// eventSweepInterval controls how often expired submission windows are closed.
const eventSweepInterval = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	statusRepo := repositories.NewPostgresStatusRepository(dbConn)
	projectRepo := repositories.NewPostgresProjectRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	taskRepo := repositories.NewPostgresTaskRepository(dbConn)
	taskRecordRepo := repositories.NewPostgresTaskRecordRepository(dbConn)
	commentRepo := repositories.NewPostgresCommentRepository(dbConn)
	questionnaireRepo := repositories.NewPostgresQuestionnaireRepository(dbConn)
	assignmentRepo := repositories.NewPostgresAssignmentRepository(dbConn)
	evaluationRepo := repositories.NewPostgresEvaluationRepository(dbConn)
	reviewRepo := repositories.NewPostgresReviewRepository(dbConn)
	voteRepo := repositories.NewPostgresVoteRepository(dbConn)
	presentationRepo := repositories.NewPostgresPresentationRepository(dbConn)
	dashboardRepo := repositories.NewPostgresDashboardRepository(dbConn)
	logger.Info("repositories initialized")

	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(userRepo, emailService, logger)
	userService := services.NewUserService(userRepo, uploader, logger)
	eventService := services.NewEventService(eventRepo, hub, logger)
	statusService := services.NewStatusService(statusRepo)
	projectService := services.NewProjectService(
		projectRepo, userRepo, eventRepo, teamRepo, statusRepo, cfg.AdvisorRoleIDs, logger)
	teamService := services.NewTeamService(teamRepo, projectRepo)
	taskService := services.NewTaskService(taskRepo, taskRecordRepo, projectRepo, teamRepo, uploader, logger)
	commentService := services.NewCommentService(commentRepo)
	questionnaireService := services.NewQuestionnaireService(questionnaireRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, userRepo, logger)
	evaluationService := services.NewEvaluationService(dbConn, evaluationRepo, assignmentRepo, logger)
	reviewService := services.NewReviewService(
		dbConn, reviewRepo, projectRepo, statusRepo, userRepo, emailService, hub, logger)
	voteService := services.NewVoteService(voteRepo, projectRepo, hub, logger)
	presentationService := services.NewPresentationService(presentationRepo, projectRepo, uploader, logger)
	dashboardService := services.NewDashboardService(dashboardRepo)
	logger.Info("services initialized")

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go eventService.RunAutoDeactivation(sweepCtx, eventSweepInterval)
	logger.Info("event window sweeper started", slog.Duration("interval", eventSweepInterval))

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)
	handlerSet := routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		User:          handlers.NewUserHandler(userService),
		Event:         handlers.NewEventHandler(eventService),
		Status:        handlers.NewStatusHandler(statusService),
		Project:       handlers.NewProjectHandler(projectService),
		Team:          handlers.NewTeamHandler(teamService),
		Task:          handlers.NewTaskHandler(taskService),
		Comment:       handlers.NewCommentHandler(commentService),
		Questionnaire: handlers.NewQuestionnaireHandler(questionnaireService),
		Assignment:    handlers.NewAssignmentHandler(assignmentService),
		Evaluation:    handlers.NewEvaluationHandler(evaluationService),
		Review:        handlers.NewReviewHandler(reviewService),
		Vote:          handlers.NewVoteHandler(voteService),
		Presentation:  handlers.NewPresentationHandler(presentationService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
		WebSocket:     handlers.NewWebSocketHandler(hub, logger),
	}

	router := chi.NewRouter()
	routes.SetupRoutes(router, authenticator, handlerSet)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
