package main

import (
	"context"
	"flag"
	"log"

	"quiz-automation/internal/config"
	"quiz-automation/internal/database"
	"quiz-automation/internal/logger"

	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "path to config.yaml")
	showVersion := flag.Bool("version", false, "print the applied migration version and exit")
	flag.Parse()

	cfg, err := config.LoadConfigFrom(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if !cfg.DB.Enabled() {
		l.Fatal("Archive database is not configured (db.host, db.name)")
	}

	ctx := context.Background()
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, l)
	if err != nil {
		l.Fatal("Failed to load migrations", zap.Error(err))
	}
	defer migrator.Close()

	if *showVersion {
		version, err := migrator.Version(ctx)
		if err != nil {
			l.Fatal("Failed to read migration version", zap.Error(err))
		}
		l.Info("Current migration version", zap.Uint("version", version))
		return
	}

	if _, err := migrator.Up(ctx); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
}
