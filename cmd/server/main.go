package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/heymumford/Rinna/internal/config"
	"github.com/heymumford/Rinna/internal/database"
	"github.com/heymumford/Rinna/internal/logging"
	"github.com/heymumford/Rinna/internal/report"
	"github.com/heymumford/Rinna/internal/server"
	"github.com/heymumford/Rinna/internal/storage"
)

func main() {
	app := fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			database.New,
			storage.New,
			provideTemplates,
			provideRecordStore,
			report.NewService,
			server.NewServer,
		),

		fx.Invoke(registerLifecycleHooks),
	)

	runWithGracefulShutdown(app)
}

// provideConfig loads and provides the application configuration
func provideConfig() (config.Config, error) {
	return config.Load()
}

// provideLogger builds the shared logger from the configuration
func provideLogger(cfg config.Config) *logrus.Logger {
	logger := logging.New(cfg.Logging)
	logger.WithField("config", cfg.String()).Info("Starting Rinna report service")
	return logger
}

// provideTemplates loads the template catalog
func provideTemplates(cfg config.Config, logger *logrus.Logger) (*report.TemplateManager, error) {
	return report.NewTemplateManager(cfg.Reports.TemplatesDir, logger)
}

// provideRecordStore builds the report record store
func provideRecordStore(db *gorm.DB, logger *logrus.Logger) report.RecordStore {
	return report.NewGormRecordStore(db, logger)
}

// registerLifecycleHooks wires startup and shutdown of the HTTP server
func registerLifecycleHooks(
	srv *server.Server,
	db *gorm.DB,
	cfg config.Config,
	logger *logrus.Logger,
	lc fx.Lifecycle,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			logger.Info("Starting HTTP server")
			go func() {
				if err := srv.Start(cfg.Server.Address); err != nil {
					logger.WithError(err).Error("HTTP server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

// runWithGracefulShutdown drives the application lifecycle with signal handling
func runWithGracefulShutdown(app *fx.App) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	startCtx, startCancel := context.WithTimeout(ctx, 15*time.Second)
	defer startCancel()

	if err := app.Start(startCtx); err != nil {
		logrus.WithError(err).Fatal("Failed to start application")
	}

	<-quit
	logrus.Info("Received shutdown signal")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		logrus.WithError(err).Error("Error during shutdown")
		os.Exit(1)
	}

	logrus.Info("Report service stopped cleanly")
}
