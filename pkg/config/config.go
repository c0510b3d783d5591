package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Movie store drivers.
const (
	StorePostgres = "postgres"
	StoreDynamoDB = "dynamodb"
)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	MovieStore   string `envconfig:"MOVIE_STORE" default:"postgres"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region       string `envconfig:"DDB_REGION"`
		Endpoint     string `envconfig:"DDB_ENDPOINT"`
		AccessKey    string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey    string `envconfig:"DDB_SECRET_KEY"`
		SessionToken string `envconfig:"DDB_SESSION_TOKEN"`
		MaxAttempts  int    `envconfig:"DDB_MAX_ATTEMPTS" default:"3"`
		MoviesTable  string `envconfig:"DDB_MOVIES_TABLE" default:"movies"`
	}
	TMDB struct {
		APIKey     string        `envconfig:"TMDB_API_KEY"`
		BaseURL    string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		Timeout    time.Duration `envconfig:"TMDB_TIMEOUT" default:"10s"`
		MaxRetries uint64        `envconfig:"TMDB_MAX_RETRIES" default:"3"`
		RateLimit  float64       `envconfig:"TMDB_RATE_LIMIT" default:"40"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	if cfg.MovieStore != StorePostgres && cfg.MovieStore != StoreDynamoDB {
		return nil, fmt.Errorf("load config error: unknown MOVIE_STORE %q", cfg.MovieStore)
	}

	return cfg, nil
}
