package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"stockroom/internal/config"
	"stockroom/internal/infrastructure/logger"
	"stockroom/internal/infrastructure/migrate"
	"stockroom/internal/infrastructure/mysql"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset")
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

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrate.Run(context.Background(), db, *cmd, flag.Args()...); err != nil {
		zapLogger.Fatal("migration failed", zap.String("cmd", *cmd), zap.Error(err))
	}
	zapLogger.Info("migration finished", zap.String("cmd", *cmd))
}
