// Package app wires configuration, storage, services, and the HTTP server
// into a runnable chat backend.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/chronolock/chatd/internal/chat/http"
	"github.com/chronolock/chatd/internal/chat/service"
	"github.com/chronolock/chatd/internal/chat/store"
	"github.com/chronolock/chatd/internal/chat/store/drivers/sqlite"
	"github.com/chronolock/chatd/pkg/blob"
	"github.com/chronolock/chatd/pkg/slogx"
	"github.com/chronolock/chatd/pkg/tokenx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the chat service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	blobs blob.Store

	identityService   *service.IdentityService
	groupService      *service.GroupService
	membershipService *service.MembershipService
	messageService    *service.MessageService
	userService       *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "chatd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initBlobs(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("chat service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down chat service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("chat service stopped")
	return nil
}

// initDatabase opens the store and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initBlobs selects the avatar storage driver.
func (app *Application) initBlobs() error {
	switch app.cfg.BlobDriver {
	case "", "fs":
		fsStore, err := blob.NewFS(app.cfg.UploadsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize uploads directory: %w", err)
		}
		app.blobs = fsStore
	case "s3":
		s3Store, err := blob.NewS3(blob.S3Config{
			Endpoint:  app.cfg.S3Endpoint,
			AccessKey: app.cfg.S3AccessKey,
			SecretKey: app.cfg.S3SecretKey,
			UseSSL:    app.cfg.S3UseSSL,
			Bucket:    app.cfg.S3Bucket,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 blob store: %w", err)
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			return fmt.Errorf("failed to ensure s3 bucket: %w", err)
		}
		app.blobs = s3Store
	default:
		return fmt.Errorf("unknown blob driver %q", app.cfg.BlobDriver)
	}
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	tokens := &tokenx.JWTIssuer{
		Secret: []byte(app.cfg.TokenSecret),
		Issuer: app.cfg.TokenIssuer,
		TTL:    app.cfg.TokenTTL,
	}

	app.identityService = &service.IdentityService{Store: app.db, Tokens: tokens}
	app.groupService = &service.GroupService{Store: app.db, Blobs: app.blobs}
	app.membershipService = &service.MembershipService{Store: app.db}
	app.messageService = &service.MessageService{Store: app.db}
	app.userService = &service.UserService{Store: app.db, Blobs: app.blobs}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.IdentityService = app.identityService
	router.GroupService = app.groupService
	router.MembershipService = app.membershipService
	router.MessageService = app.messageService
	router.UserService = app.userService

	// Static avatar serving only applies to the filesystem driver.
	if fsStore, ok := app.blobs.(*blob.FS); ok {
		router.UploadsDir = fsStore.Dir()
	}

	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
