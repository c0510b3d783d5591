package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"moviereview/dynamodb"
	"moviereview/internal/wiring"
	"moviereview/pkg/config"
	"moviereview/pkg/logger"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

func main() {
	var (
		dir  string
		down bool
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the SQL migrations")
	flag.BoolVar(&down, "down", false, "Roll back the most recent migration instead of applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := migratePostgres(cfg, log, dir, down); err != nil {
		log.Errorw("cannot execute migration", "error", err)
		os.Exit(1)
	}

	if cfg.MovieStore == config.StoreDynamoDB && !down {
		if err := createDynamoTable(cfg); err != nil {
			log.Errorw("cannot create dynamodb table", "error", err)
			os.Exit(1)
		}
		log.Infow("dynamodb table ready", "table", cfg.DynamoDB.MoviesTable)
	}
}

func migratePostgres(cfg *config.Config, log *zap.SugaredLogger, dir string, down bool) error {
	db, err := wiring.OpenPostgres(cfg)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get db instance: %w", err)
	}
	defer sqlDB.Close()

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	if down {
		total, err := migrate.ExecMax(sqlDB, "postgres", migrations, migrate.Down, 1)
		if err != nil {
			return err
		}
		log.Infow("rolled back migrations", "total", total)
		return nil
	}

	total, err := migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	if err != nil {
		return err
	}
	log.Infow("applied migrations", "total", total)
	return nil
}

func createDynamoTable(cfg *config.Config) error {
	ctx := context.Background()
	client, err := wiring.DynamoDBClient(ctx, cfg)
	if err != nil {
		return err
	}
	return dynamodb.CreateMoviesTable(ctx, client, cfg.DynamoDB.MoviesTable)
}
