package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"asset-system/pkg/config"
	"asset-system/pkg/database/migrations"
	"asset-system/pkg/database/postgresql"
	applogger "asset-system/pkg/logger"
	"asset-system/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "create or reset the administrator account")
	runDirectory := flag.Bool("directory", false, "create sample offices and divisions")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Server.LogLevel)
	defer func() { _ = logger.Sync() }()

	if !*runAdmin && !*runDirectory && !*runAll {
		logger.Warn("no seeder selected")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer dbPool.Close()

	if err := migrations.Up(dbPool); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	if *runAll || *runDirectory {
		if err := seeders.SeedDirectory(ctx, dbPool, logger); err != nil {
			logger.Fatal("directory seeder failed", zap.Error(err))
		}
	}
	if *runAll || *runAdmin {
		if err := seeders.SeedAdmin(ctx, dbPool, cfg, logger); err != nil {
			logger.Fatal("admin seeder failed", zap.Error(err))
		}
	}

	logger.Info("seeding finished")
}
