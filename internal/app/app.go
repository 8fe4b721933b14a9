package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/denmor86/ya-laundry/internal/config"
	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/network/router"
	"github.com/denmor86/ya-laundry/internal/services"
	"github.com/denmor86/ya-laundry/internal/storage"
)

// Run - подключение к БД, сборка сервисов и запуск HTTP сервера до сигнала остановки
func Run(config config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDatabase(ctx, config.Server.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Errorw("error close database", "error", err)
		}
	}()
	if err := db.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	st := storage.NewStorage(db)
	var catalog storage.CatalogStorage
	if config.Catalog.CatalogAddr != "" {
		catalog = services.NewRemoteCatalog(config.Catalog)
		logger.Infow("using remote catalog", "address", config.Catalog.CatalogAddr, "rps", config.Catalog.RPS)
	}

	router := router.NewRouter(
		services.NewIdentity(config.Server.JWTSecret),
		services.NewOrders(st, catalog, config.Orders),
		db,
	)

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "address", config.Server.ListenAddr, "log_level", config.Server.LogLevel)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error listen server: %w", err)
		}
	}
	logger.Info("Shutdown server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutdown server: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
