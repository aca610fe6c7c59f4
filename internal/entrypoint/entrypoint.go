// Package entrypoint wires the application together and runs the HTTP
// server with graceful shutdown.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dndsfx/soundboard/internal/auth"
	"github.com/dndsfx/soundboard/internal/catalogsync"
	"github.com/dndsfx/soundboard/internal/config"
	"github.com/dndsfx/soundboard/internal/database"
	catalogrepo "github.com/dndsfx/soundboard/internal/database/catalog"
	"github.com/dndsfx/soundboard/internal/database/sessionlists"
	http_controllers "github.com/dndsfx/soundboard/internal/http"
	"github.com/dndsfx/soundboard/internal/mail"
	"github.com/dndsfx/soundboard/internal/scheduler"
	"github.com/dndsfx/soundboard/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down
// within the configured timeout. onShutdown runs first so background
// workers stop before the listener closes.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run builds every component from configuration and serves the API.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting D&D SFX soundboard v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if _, err := os.Stat(cfg.Audio.Dir); os.IsNotExist(err) {
		log.Printf("WARNING: audio directory %s does not exist; catalog sync and file serving are disabled until it is created", cfg.Audio.Dir)
	}

	catalogStore := catalogrepo.NewRepository(db.DB)
	sessionListStore := sessionlists.NewRepository(db.DB)
	syncer := catalogsync.NewSyncer(db.DB, cfg.Audio.Dir, nil)
	mailer := mail.NewMailer(cfg.Mail)
	if !mailer.Configured() {
		log.Printf("WARNING: no mail server configured (MAIL_SERVER); email verification codes will be returned in API responses")
	}

	authService := auth.NewService(db.DB, mailer, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	rateLimiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})
	defer rateLimiter.Stop()

	var csrfSecret []byte
	if cfg.Auth.CSRFSecret != "" {
		csrfSecret = []byte(cfg.Auth.CSRFSecret)
	}

	// Task queue for admin-triggered catalog syncs
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCatalogSyncQueue(syncer))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Optional scheduled resync
	var syncScheduler *scheduler.CatalogSyncScheduler
	if cfg.CatalogSync.Enabled {
		syncScheduler = scheduler.NewCatalogSyncScheduler(syncer, cfg.CatalogSync.Schedule)
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start catalog sync scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:         db,
		CatalogStore:     catalogStore,
		SessionListStore: sessionListStore,
		AuthService:      authService,
		SessionManager:   sessionManager,
		AuthMiddleware:   authMiddleware,
		RateLimiter:      rateLimiter,
		CSRFSecret:       csrfSecret,
		SecureCookies:    cfg.Auth.SecureCookies,
		AudioDir:         cfg.Audio.Dir,
		AudioURLPrefix:   cfg.Audio.URLPrefix,
		TaskClient:       taskClient,
		Syncer:           syncer,
		Version:          version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if syncScheduler != nil {
			syncScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
