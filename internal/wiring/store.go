// Package wiring builds the storage adapters selected by config for the
// commands under cmd/.
package wiring

import (
	"context"
	"fmt"
	"strconv"

	"moviereview/dynamodb"
	"moviereview/movie"
	"moviereview/pkg/config"
	"moviereview/postgres"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"gorm.io/gorm"
)

func PostgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
}

func OpenPostgres(cfg *config.Config) (*gorm.DB, error) {
	db, err := postgres.NewConnection(PostgresOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	return db, nil
}

func DynamoDBClient(ctx context.Context, cfg *config.Config) (*awsdynamodb.Client, error) {
	return dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
		MaxAttempts:  cfg.DynamoDB.MaxAttempts,
	})
}

// MovieRepository returns the movie store named by cfg.MovieStore.
// db may be nil, in which case a Postgres connection is opened on demand.
func MovieRepository(ctx context.Context, cfg *config.Config, db *gorm.DB) (movie.Repository, error) {
	if cfg.MovieStore == config.StoreDynamoDB {
		client, err := DynamoDBClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable), nil
	}

	if db == nil {
		var err error
		if db, err = OpenPostgres(cfg); err != nil {
			return nil, err
		}
	}
	return postgres.NewMovieRepository(db), nil
}
