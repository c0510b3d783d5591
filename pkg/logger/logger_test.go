package logger_test

import (
	"testing"

	"moviereview/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("builds production logger", func(t *testing.T) {
		l, err := logger.New("production", "warn")

		require.NoError(t, err)
		assert.False(t, l.Desugar().Core().Enabled(-1))
	})

	t.Run("builds development logger for local", func(t *testing.T) {
		l, err := logger.New("local", "debug")

		require.NoError(t, err)
		assert.True(t, l.Desugar().Core().Enabled(-1))
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := logger.New("production", "loud")

		assert.Error(t, err)
	})
}
