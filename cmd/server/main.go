package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"stockroom/internal/config"
	"stockroom/internal/infrastructure/logger"
	"stockroom/internal/infrastructure/memory"
	"stockroom/internal/infrastructure/metrics"
	"stockroom/internal/infrastructure/migrate"
	"stockroom/internal/infrastructure/mysql"
	"stockroom/internal/ledger"
	"stockroom/internal/ledger/service"
	"stockroom/internal/ledger/usecase"
	"stockroom/internal/location"
	locationcontroller "stockroom/internal/location/controller"
	locationrepo "stockroom/internal/location/repository"
	"stockroom/internal/product"
	productrepo "stockroom/internal/product/repository"
	productservice "stockroom/internal/product/service"
	"stockroom/internal/seed"
	"stockroom/internal/server"
	userrepo "stockroom/internal/user/repository"
)

type productStore interface {
	usecase.ProductReader
	productservice.Repository
}

type locationStore interface {
	usecase.ShelfResolver
	locationcontroller.Lister
}

// storage is what the HTTP modules need from a storage driver.
type storage struct {
	tx        service.TxRunner
	users     usecase.ActorReader
	products  productStore
	locations locationStore
	close     func() error
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	store, err := openStorage(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("opening storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer store.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	router := server.NewRouter(server.Controllers{
		Ledger:    ledger.NewModule(store.tx, store.users, store.products, store.locations, cfg, ledgerMetrics, zapLogger),
		Products:  product.NewModule(store.products, zapLogger),
		Locations: location.NewModule(store.locations, zapLogger),
	}, cfg.Metrics, registry, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func openStorage(cfg *config.Config, logger *zap.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := mysql.NewConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected")

		if cfg.Database.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := migrate.Up(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("running migrations: %w", err)
			}
		}

		return &storage{
			tx:        ledger.NewMySQLTxRunner(db, logger),
			users:     userrepo.NewMySQLRepository(db),
			products:  productrepo.NewMySQLRepository(db),
			locations: locationrepo.NewMySQLRepository(db),
			close:     db.Close,
		}, nil

	case config.StorageMemory:
		mem := memory.New()
		if cfg.Storage.FixturePath != "" {
			fixture, err := seed.Load(cfg.Storage.FixturePath)
			if err != nil {
				return nil, err
			}
			stocker := service.NewLedgerService(mem, logger, cfg.Ledger.TxTimeout)
			if _, err := seed.NewSeeder(mem, stocker, logger).Apply(context.Background(), fixture); err != nil {
				return nil, fmt.Errorf("seeding memory store: %w", err)
			}
		}
		logger.Warn("using in-memory storage, data is lost on restart")

		return &storage{
			tx:        mem,
			users:     mem,
			products:  mem,
			locations: mem,
			close:     func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
