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

	httpapi "unimitr-backend/internal/api/http"
	"unimitr-backend/internal/cache"
	"unimitr-backend/internal/chat"
	"unimitr-backend/internal/config"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository/postgres"
	"unimitr-backend/internal/security"
	"unimitr-backend/internal/service"
	"unimitr-backend/internal/storage"
	"unimitr-backend/internal/workflow"

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
	logger.Info("Starting UniMitr backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			logger.Error("Failed to apply schema", "error", err)
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())

	// Workflow engines share one list cache, invalidated on every resource write
	listCache := cache.New(cache.WithMaxAge(cfg.ListCacheMaxAge()))
	engineOpts := []workflow.Option{
		workflow.WithStrictTransitions(cfg.Workflow.StrictTransitions),
		workflow.WithWriteHook(listCache.Invalidate),
	}
	events := workflow.NewEngine(workflow.Events, store.Events, engineOpts...)
	clubs := workflow.NewEngine(workflow.Clubs, store.Clubs, engineOpts...)
	volunteering := workflow.NewEngine(workflow.Volunteering, store.Volunteering, engineOpts...)
	internships := workflow.NewEngine(workflow.Internships, store.Internships, engineOpts...)
	workshops := workflow.NewEngine(workflow.Workshops, store.Workshops, engineOpts...)

	// Initialize chat client; chat stays disabled without an API key
	var chatClient chat.Client
	if cfg.Chat.APIKey != "" {
		gemini, err := chat.NewGeminiClient(ctx, chat.Config{
			APIKey:   cfg.Chat.APIKey,
			Model:    cfg.Chat.Model,
			Endpoint: cfg.Chat.Endpoint,
		})
		if err != nil {
			logger.Error("Failed to initialize chat client", "error", err)
			log.Fatalf("Failed to initialize chat client: %v", err)
		}
		chatClient = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, chat endpoint disabled")
	}

	// Initialize Banner Storage
	logger.Info("Using local banner storage", "upload_dir", cfg.Storage.UploadDir)
	banners, err := storage.NewLocalStore(storage.Config{
		Dir:          cfg.Storage.UploadDir,
		BaseURL:      cfg.Storage.BaseURL,
		MaxBytes:     cfg.Storage.MaxFileSize << 20,
		AllowedTypes: cfg.Storage.AllowedTypes,
	})
	if err != nil {
		logger.Error("Failed to initialize banner storage", "error", err)
		log.Fatalf("Failed to initialize banner storage: %v", err)
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.Users, store.Profiles, tokenManager)
	profileSvc := service.NewProfileService(store.Users, store.Profiles, store.Stats)
	leaderboardSvc := service.NewLeaderboardService(store.Leaderboard)
	mentalHealthSvc := service.NewMentalHealthService(store.Counsellors, store.Appointments)
	chatSvc := service.NewChatService(chatClient)

	if cfg.Admin.Username != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Error("Failed to ensure admin account", "error", err)
			log.Fatalf("Failed to ensure admin account: %v", err)
		}
	}

	// Initialize HTTP handlers
	handlers := httpapi.NewHandlers(
		authSvc, profileSvc, leaderboardSvc, mentalHealthSvc, chatSvc,
		httpapi.NewUploadHandler(banners, cfg.Storage.MaxFileSize<<20),
		httpapi.NewWorkflowHandler(events, listCache,
			func() *domain.Event { return &domain.Event{} },
			func() *domain.EventRegistration { return &domain.EventRegistration{} }),
		httpapi.NewWorkflowHandler(clubs, listCache,
			func() *domain.Club { return &domain.Club{} },
			func() *domain.ClubJoinRequest { return &domain.ClubJoinRequest{} }),
		httpapi.NewWorkflowHandler(volunteering, listCache,
			func() *domain.VolunteeringOpportunity { return &domain.VolunteeringOpportunity{} },
			func() *domain.VolunteeringApplication { return &domain.VolunteeringApplication{} }),
		httpapi.NewWorkflowHandler(internships, listCache,
			func() *domain.Internship { return &domain.Internship{} },
			func() *domain.InternshipApplication { return &domain.InternshipApplication{} }),
		httpapi.NewWorkflowHandler(workshops, listCache,
			func() *domain.Workshop { return &domain.Workshop{} },
			func() *domain.WorkshopRegistration { return &domain.WorkshopRegistration{} }),
	)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager, cfg.Access)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      httpapi.NewRouter(handlers, authMiddleware),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
