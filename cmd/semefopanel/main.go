package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	sqliteadapter "github.com/ericfisherdev/semefopanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/semefopanel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/semefopanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/config"
)

// sweepInterval is how often idle browser sessions are purged.
const sweepInterval = time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"api_base_url", cfg.APIBaseURL,
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"encrypted_storage", cfg.HasSecretKey(),
		"rate_limit", cfg.RateLimit,
		"cache_sessions", cfg.CacheSessions,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open session database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		return err
	}
	slog.Info("migrations complete", "schema_version", version)

	// 5. Wire the session context over per-browser storage.
	storageStore := sqliteadapter.NewStorageRepo(db, cfg.SecretKey)
	session := application.NewBrowserSession(storageStore)

	// 6. Create the backend client. The web navigator turns a session
	// expiry into a redirect of the request being served.
	api, err := semefo.NewClient(cfg.APIBaseURL, session, webhandler.Navigator{}, semefo.Options{
		Timeout:       cfg.RequestTimeout,
		RateLimit:     cfg.RateLimit,
		CacheSessions: cfg.CacheSessions,
		Logger:        slog.Default(),
	})
	if err != nil {
		return err
	}

	// 7. Create application services.
	validator := application.NewValidator()
	services := webhandler.Services{
		Auth:           application.NewAuthService(api, session, validator),
		Dashboard:      application.NewDashboardService(api, validator),
		Planchas:       application.NewPlanchaService(api, validator),
		ServiceClients: application.NewServiceClientService(api, validator),
	}

	// 7b. Start the idle session sweeper.
	sweeper := application.NewSessionSweeper(storageStore, cfg.SessionIdle, sweepInterval)
	go sweeper.Start(ctx)

	// 7.5. Create HTTP handler and register operational routes.
	// Proxied calls carry the caller's stored token, like the panel's own.
	proxy := httphandler.ProxyOptions{
		Transport: semefo.NewProxyTransport(session, webhandler.Navigator{}, nil, slog.Default()),
		Bind:      webhandler.BindBrowser,
	}
	apiHandler, err := httphandler.NewHandler(cfg.APIBaseURL, proxy, db.Writer, slog.Default())
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// 7.6. Create web handler and register GUI routes.
	webHandler := webhandler.NewHandler(services, storageStore, cfg.CookieSecure, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 8. Log startup complete.
	slog.Info("semefopanel started",
		"listen_addr", cfg.ListenAddr,
		"session_idle", cfg.SessionIdle,
	)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	// 11. Log shutdown complete.
	slog.Info("shutdown complete")
	return nil
}
