package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/cart"
	"github.com/mrlokans/bookstore/internal/catalog"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/storage"
	http_controllers "github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/tasks"
	"github.com/mrlokans/bookstore/internal/wishlist"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

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

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookstore v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	storageRepo := storage.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)

	// Catalog: remote endpoint when configured, bundled set otherwise
	var catalogClient *catalog.Client
	if cfg.Catalog.RemoteURL != "" {
		catalogClient = catalog.NewClient(cfg.Catalog.RemoteURL, cfg.Catalog.FetchTimeout)
		log.Printf("Catalog source: %s", cfg.Catalog.RemoteURL)
	} else {
		log.Printf("Catalog source: bundled")
	}
	catalogService := catalog.NewService(booksRepo, catalogClient)
	if err := catalogService.EnsureLoaded(context.Background()); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Cart and wishlist hydrate from the durable store
	cartStore := cart.NewStore(storageRepo)
	wishlistStore := wishlist.NewStore(storageRepo)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewRefreshCatalogQueue(catalogService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic catalog refresh only makes sense with a remote endpoint
	// and a task queue to run the fetches on
	var refreshScheduler *scheduler.CatalogRefreshScheduler
	if cfg.Catalog.RefreshEnabled && catalogClient != nil && taskClient != nil {
		refreshScheduler = scheduler.NewCatalogRefreshScheduler(taskClient, cfg.Catalog.RefreshSchedule)
		if err := refreshScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start catalog refresh scheduler: %v", err)
		}
	}

	// Initialize authentication if enabled
	var authService *auth.Service
	var upstreamClient *auth.UpstreamClient
	var sessionManager *auth.SessionManager
	var rateLimiter *auth.RateLimiter
	var csrfSecret []byte

	if cfg.Auth.Mode != config.AuthModeNone {
		log.Printf("Authentication mode: %s", cfg.Auth.Mode)

		switch cfg.Auth.Mode {
		case config.AuthModeUpstream:
			if cfg.Auth.UpstreamURL == "" {
				log.Fatalf("AUTH_UPSTREAM_URL is required in upstream auth mode")
			}
			upstreamClient = auth.NewUpstreamClient(cfg.Auth.UpstreamURL, cfg.Auth.UpstreamTimeout)
		default:
			authService = auth.NewService(db.DB, cfg.Auth)
		}

		// Get underlying SQL DB for the session store
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		rateLimiter = auth.NewRateLimiter(auth.RateLimitConfig{
			MaxAttempts:     cfg.Auth.MaxLoginAttempts,
			WindowDuration:  cfg.Auth.RateLimitWindow,
			LockoutDuration: cfg.Auth.LockoutDuration,
		})

		// Generate or use configured CSRF secret
		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		if authService != nil {
			hasUsers, _ := authService.HasUsers()
			if !hasUsers {
				log.Printf("No users found. Run 'create-user' to create an account.")
			}
		}
	} else {
		log.Printf("Authentication mode: none (browsing, cart and wishlist only)")
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		Catalog:         catalogService,
		Cart:            cartStore,
		Wishlist:        wishlistStore,
		AuthConfig:      cfg.Auth,
		AuthService:     authService,
		UpstreamClient:  upstreamClient,
		SessionManager:  sessionManager,
		RateLimiter:     rateLimiter,
		AuthStorage:     storageRepo,
		TaskClient:      taskClient,
		CSRFSecret:      csrfSecret,
		SecureCookies:   cfg.Auth.SecureCookies,
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if refreshScheduler != nil {
			refreshScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if rateLimiter != nil {
			rateLimiter.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
