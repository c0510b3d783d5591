// nolint: funlen
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviereview/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":          "test",
			"PORT":             "8080",
			"SENTRY_DSN":       "https://test@sentry.io/123",
			"ALLOW_ORIGINS":    "*",
			"DB_NAME":          "testdb",
			"DB_HOST":          "localhost",
			"DB_PORT":          "5432",
			"DB_USER":          "testuser",
			"DB_PASS":          "testpass",
			"ENABLE_SSL":       "true",
			"MOVIE_STORE":      "dynamodb",
			"DDB_REGION":       "eu-west-1",
			"DDB_MOVIES_TABLE": "movies_test",
			"TMDB_API_KEY":     "secret",
			"TMDB_TIMEOUT":     "3s",
			"TMDB_MAX_RETRIES": "5",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "testdb", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "testuser", cfg.DB.User)
		assert.Equal(t, "testpass", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, config.StoreDynamoDB, cfg.MovieStore)
		assert.Equal(t, "eu-west-1", cfg.DynamoDB.Region)
		assert.Equal(t, "movies_test", cfg.DynamoDB.MoviesTable)
		assert.Equal(t, "secret", cfg.TMDB.APIKey)
		assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, uint64(5), cfg.TMDB.MaxRetries)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, config.StorePostgres, cfg.MovieStore)
		assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, float64(40), cfg.TMDB.RateLimit)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 3, cfg.DynamoDB.MaxAttempts)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid tmdb timeout", func(t *testing.T) {
		t.Setenv("TMDB_TIMEOUT", "soon")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("rejects unknown movie store", func(t *testing.T) {
		t.Setenv("MOVIE_STORE", "mongo")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "MOVIE_STORE")
	})
}
