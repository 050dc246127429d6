package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/config"
	"bizdocs/internal/email/noop"
	"bizdocs/internal/email/ses"
	"bizdocs/internal/handler"
	"bizdocs/internal/logger"
	"bizdocs/internal/port"
	"bizdocs/internal/repository/postgres"
	"bizdocs/internal/router"
	"bizdocs/internal/service"
	gcsstorage "bizdocs/internal/storage/gcs"
	"bizdocs/internal/storage/localdir"
	s3storage "bizdocs/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	docRepo := postgres.NewDocumentRepo(db)

	// Initialize storage
	storage, closeStorage, err := newObjectStorage(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Provider, err)
	}
	defer closeStorage.Close()

	// Initialize email
	mailer, err := newMailer(&cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize %s mailer: %w", cfg.Email.Provider, err)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	docSvc := service.NewDocumentService(docRepo, storage, mailer, cfg.Storage, cfg.Render, log)
	fileSvc := service.NewFileService(localdir.NewLister(), cfg.Render)

	// Initialize handlers
	docH := handler.NewDocumentHandler(docSvc)
	fileH := handler.NewFileHandler(fileSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r, err := router.Setup(log, cfg.CORS.AllowedOrigins, authSvc, docH, fileH, healthH)
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server starting on %s (storage=%s, email=%s, output=%s)",
			cfg.Server.Port, cfg.Storage.Provider, cfg.Email.Provider, cfg.Render.OutputDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newObjectStorage(ctx context.Context, cfg *config.StorageConfig) (port.ObjectStorage, io.Closer, error) {
	switch cfg.Provider {
	case "gcs":
		return gcsstorage.NewGCSClient(ctx, cfg)
	default:
		client, err := s3storage.NewS3Client(cfg)
		return client, nopCloser{}, err
	}
}

func newMailer(cfg *config.EmailConfig, log *logrus.Logger) (port.Mailer, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESMailer(cfg.Region, cfg.FromAddress, cfg.FromName)
	default:
		return noop.NewNoopMailer(log), nil
	}
}
