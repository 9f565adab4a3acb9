package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"stockroom/internal/config"
	"stockroom/internal/infrastructure/logger"
	"stockroom/internal/infrastructure/migrate"
	"stockroom/internal/infrastructure/mysql"
	"stockroom/internal/ledger"
	"stockroom/internal/ledger/service"
	"stockroom/internal/seed"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	fixturePath := flag.String("fixture", "", "fixture file, defaults to storage.fixture_path")
	withStock := flag.Bool("opening-stock", true, "record the fixture's opening stock as purchases")
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

	path := *fixturePath
	if path == "" {
		path = cfg.Storage.FixturePath
	}
	fixture, err := seed.Load(path)
	if err != nil {
		zapLogger.Fatal("loading fixture", zap.String("path", path), zap.Error(err))
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := migrate.Up(ctx, db); err != nil {
			zapLogger.Fatal("running migrations", zap.Error(err))
		}
	}

	var stocker seed.Stocker
	if *withStock {
		stocker = service.NewLedgerService(ledger.NewMySQLTxRunner(db, zapLogger), zapLogger, cfg.Ledger.TxTimeout)
	}

	if _, err := seed.NewSeeder(seed.NewMySQLSink(db), stocker, zapLogger).Apply(ctx, fixture); err != nil {
		zapLogger.Fatal("seeding database", zap.Error(err))
	}
}
