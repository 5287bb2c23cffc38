package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "skillswap-backend/internal/api/http"
	"skillswap-backend/internal/config"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository/postgres"
	"skillswap-backend/internal/security"
	"skillswap-backend/internal/service"
	"skillswap-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SkillSwap backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "admin_address", cfg.GetAdminAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Storage
	objects, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Info("Media storage ready", "type", cfg.Storage.Type)

	// Initialize Security
	tokens := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.SessionExpiryHours)*time.Hour)
	google := security.NewGoogleVerifier(cfg.Google.ClientID)

	// Initialize Services
	mediaSvc := service.NewMediaService(objects, cfg.Storage.MaxFileSizeMB, cfg.Storage.AllowedTypes)
	emailSvc := service.NewEmailService(cfg.Mail)
	services := httpapi.Services{
		Auth:         service.NewAuthService(store.Users, store.Admins, tokens, google),
		User:         service.NewUserService(store.Repos, store, mediaSvc),
		Event:        service.NewEventService(store.Repos, store),
		Booking:      service.NewBookingService(store.Repos, store, mediaSvc),
		Challenge:    service.NewChallengeService(store.Repos, store, mediaSvc),
		Notification: service.NewNotificationService(store.Notifications),
		Points:       service.NewPointsService(store.Repos, store),
		Reward:       service.NewRewardService(store.Repos, store, cfg.Rewards.RedemptionExpiryDays),
		Ticket:       service.NewTicketService(store.Repos, store, emailSvc),
		Chat:         service.NewChatService(store.Repos, store, cfg.Chat.IdleCloseMinutes),
		Media:        mediaSvc,
	}

	api := httpapi.NewServer(services, tokens, cfg.Server.CookieSecure, cfg.Events.DefaultPageSize)
	servers := []*http.Server{
		{Addr: cfg.GetServerAddress(), Handler: api.UserRouter(), ReadHeaderTimeout: 10 * time.Second},
		{Addr: cfg.GetAdminAddress(), Handler: api.AdminRouter(), ReadHeaderTimeout: 10 * time.Second},
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.Info("HTTP server listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s: %w", srv.Addr, err)
			}
		}(srv)
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("HTTP server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down HTTP server", "address", srv.Addr, "error", err)
		}
	}
	logger.Info("SkillSwap backend stopped")
}
