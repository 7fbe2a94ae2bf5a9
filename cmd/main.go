package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emontecinos/futbol-tracker/config"
	"github.com/emontecinos/futbol-tracker/db"
	"github.com/emontecinos/futbol-tracker/handlers"
	"github.com/emontecinos/futbol-tracker/live"
	"github.com/emontecinos/futbol-tracker/models"
	"github.com/emontecinos/futbol-tracker/repositories"
	api "github.com/emontecinos/futbol-tracker/routes"
	"github.com/emontecinos/futbol-tracker/services"
	"github.com/emontecinos/futbol-tracker/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

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

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Error("failed to ensure database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// R2 es opcional: sin credenciales el servidor corre igual, solo que
	// la subida de escudos responde 503.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
	} else {
		logger.Warn("R2 storage not configured, crest uploads disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	clubRepo := repositories.NewPostgresClubRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	suspensionRepo := repositories.NewPostgresSuspensionRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	logger.Info("repositories initialized")

	if err := seedClubs(context.Background(), dbConn, clubRepo, logger); err != nil {
		logger.Error("failed to seed initial clubs", slog.Any("error", err))
		os.Exit(1)
	}

	authService := services.NewAuthService(userRepo)
	standingsService := services.NewStandingsService(dbConn, clubRepo, matchRepo, seasonRepo, wsHub, logger)
	clubService := services.NewClubService(clubRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo, clubRepo)
	suspensionService := services.NewSuspensionService(suspensionRepo, playerRepo)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	matchHandler := handlers.NewMatchHandler(standingsService)
	clubHandler := handlers.NewClubHandler(clubService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	suspensionHandler := handlers.NewSuspensionHandler(suspensionService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authHandler,
		standingsHandler,
		matchHandler,
		clubHandler,
		playerHandler,
		suspensionHandler,
		webSocketHandler,
		cfg.JWTSecretKey,
	)
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

// seedClubs carga los 32 clubes fundadores la primera vez que el sistema
// arranca con la base vacía.
func seedClubs(ctx context.Context, dbConn *sql.DB, clubRepo repositories.ClubRepository, logger *slog.Logger) error {
	count, err := clubRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to count clubs: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := dbConn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	clubs := models.InitialClubs()
	if err := clubRepo.BatchCreate(ctx, tx, clubs); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to insert initial clubs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Info("initial clubs seeded", slog.Int("count", len(clubs)))
	return nil
}
