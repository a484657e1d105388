// Package main is the entry point for the back-office API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backoffice/internal/core/tx"
	"backoffice/internal/domain/catalogs/barcode"
	"backoffice/internal/domain/catalogs/cash"
	"backoffice/internal/domain/catalogs/item"
	"backoffice/internal/domain/catalogs/price"
	"backoffice/internal/domain/catalogs/shop"
	"backoffice/internal/domain/shift"
	v1 "backoffice/internal/infrastructure/http/v1"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/storage/memory"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/catalog_repo"
	"backoffice/internal/infrastructure/storage/postgres/shift_repo"
	"backoffice/internal/metrics"
	"backoffice/pkg/logger"
)

const version = "0.1.0"

// storage is the wired persistence layer for one STORAGE mode.
type storage struct {
	shifts   shift.Repository
	txm      tx.Manager
	pinger   handlers.Pinger
	catalogs *v1.CatalogServices
	info     func() map[string]any
	close    func()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting backoffice server", "storage", cfg.Storage, "timezone", cfg.Location.String())

	registerer := prometheus.DefaultRegisterer

	var store storage
	switch cfg.Storage {
	case storagePostgres:
		store, err = openPostgres(ctx, cfg, registerer)
	default:
		store = openMemory()
	}
	if err != nil {
		log.Fatalw("failed to initialize storage", "error", err)
	}
	defer store.close()

	// --- Shift service ---
	var searchMetrics shift.Metrics
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		searchMetrics = metrics.NewSearchMetrics(registerer)
		metricsHandler = promhttp.Handler()
	}

	shifts := shift.NewService(shift.ServiceConfig{
		Repo:      store.shifts,
		TxManager: store.txm,
		Batch: shift.BatchOptions{
			MaxBatchSize: cfg.BatchMax,
			Parallelism:  cfg.BatchParallelism,
		},
		Metrics: searchMetrics,
	})

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Logger:              log.WithComponent("http"),
		Health:              handlers.NewHealthHandler(store.pinger, version, store.info),
		Shifts:              shifts,
		Location:            cfg.Location,
		SearchTimeout:       cfg.SearchTimeout,
		MaxBatchSize:        cfg.BatchMax,
		Catalogs:            store.catalogs,
		Metrics:             metricsHandler,
		CompressionMinBytes: cfg.CompressionMinBytes,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SearchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func openPostgres(ctx context.Context, cfg config, registerer prometheus.Registerer) (storage, error) {
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	if cfg.DBMaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.DBMaxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return storage{}, err
	}
	logger.Info(ctx, "database connection established", "max_conns", poolCfg.MaxConns)

	if cfg.MetricsEnabled {
		err := metrics.RegisterPoolGauges(registerer, func() metrics.PoolSnapshot {
			s := pool.Stats()
			return metrics.PoolSnapshot{
				Total:    s.TotalConns,
				Acquired: s.AcquiredConns,
				Idle:     s.IdleConns,
				Max:      s.MaxConns,
			}
		})
		if err != nil {
			pool.Close()
			return storage{}, fmt.Errorf("register pool metrics: %w", err)
		}
	}

	txm := postgres.NewTxManager(pool, cfg.StatementTimeout)

	shopRepo := catalog_repo.NewShopRepo(txm)
	itemRepo := catalog_repo.NewItemRepo(txm)

	catalogs := &v1.CatalogServices{
		Shops:    shop.NewService(shopRepo, txm),
		Cashes:   cash.NewService(catalog_repo.NewCashRepo(txm), shopRepo, txm),
		Items:    item.NewService(itemRepo, txm),
		Prices:   price.NewService(catalog_repo.NewPriceRepo(txm), itemRepo, txm),
		Barcodes: barcode.NewService(catalog_repo.NewBarcodeRepo(txm), itemRepo, txm),
	}

	return storage{
		shifts:   shift_repo.NewRepo(txm),
		txm:      txm,
		pinger:   pool,
		catalogs: catalogs,
		info: func() map[string]any {
			s := pool.Stats()
			return map[string]any{
				"storage":          storagePostgres,
				"pool_total":       s.TotalConns,
				"pool_acquired":    s.AcquiredConns,
				"pool_idle":        s.IdleConns,
				"pool_max":         s.MaxConns,
				"pool_acquires":    s.AcquireCount,
				"pool_acquire_avg": avgAcquire(s),
			}
		},
		close: func() {
			pool.LogStats(ctx)
			pool.Close()
		},
	}, nil
}

func openMemory() storage {
	store := memory.NewShiftStore()
	return storage{
		shifts: store,
		txm:    memory.NewTxManager(store),
		pinger: store,
		info: func() map[string]any {
			return map[string]any{
				"storage": storageMemory,
				"shifts":  store.Len(),
			}
		},
		close: func() {},
	}
}

func avgAcquire(s postgres.PoolStats) string {
	if s.AcquireCount == 0 {
		return "0s"
	}
	return (s.AcquireDuration / time.Duration(s.AcquireCount)).String()
}
