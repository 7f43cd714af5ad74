package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sketchy-app/sketchy/api"
	"github.com/sketchy-app/sketchy/config"
	"github.com/sketchy-app/sketchy/internal/analytics"
	"github.com/sketchy-app/sketchy/internal/logger"
	"github.com/sketchy-app/sketchy/internal/metrics"
	"github.com/sketchy-app/sketchy/internal/previews"
	"github.com/sketchy-app/sketchy/internal/render"
	"github.com/sketchy-app/sketchy/store"
)

// newServeCmd creates the serve command.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		port   int
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server. It stops gracefully on SIGINT or SIGTERM,
waiting for in-flight requests up to http.shutdown_timeout_sec.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings(*configPath, dbPath)
			if err != nil {
				return err
			}
			if port != 0 {
				settings.HTTP.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, settings)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (overrides http.port)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database file (overrides database.path)")

	return cmd
}

// newRouter builds the gin engine with middleware and routes.
func newRouter(settings config.Settings, deps api.Dependencies) *gin.Engine {
	if settings.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		metrics.Middleware(),
		api.AccessLogMiddleware(),
		api.CORSMiddleware(),
		api.RequestSizeLimitMiddleware(settings.HTTP.MaxBodyBytes),
	)
	api.SetupRoutes(router, deps)

	// Routes copy the middleware chain at registration, so media comes after
	// SetupRoutes to pick up the request id middleware.
	router.Static(settings.Media.URLPrefix, settings.Media.Dir)
	router.Static("/uploads", filepath.Join(settings.Media.Dir, "uploads"))
	return router
}

func runServer(ctx context.Context, settings config.Settings) error {
	log, err := logger.NewLogger(settings.Env, settings.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := store.Open(settings.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
	}()

	router := newRouter(settings, api.Dependencies{
		Store:    st,
		Renderer: render.MustNew(),
		Previews: previews.NewLister(settings.Media.Dir, settings.Media.URLPrefix,
			settings.Media.PreviewPrefix, settings.PreviewCacheTTL()),
		Analytics:    analytics.NewService(),
		Logger:       log,
		WriteLimiter: api.NewClientLimiter(settings.HTTP.WriteRatePerSec, settings.HTTP.WriteBurst),
	})

	srv := &http.Server{
		Addr:         settings.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(settings.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(settings.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("env", settings.Env),
			zap.String("database", settings.Database.Path))
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

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(settings.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
