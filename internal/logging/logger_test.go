package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"cleanadmin/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	appCfg := config.AppConfig{
		Name:        "cleanadmin-test",
		Environment: "test",
		Version:     "1.0.0",
	}

	t.Run("DefaultStderr", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "info"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Nil(t, closer)
	})

	t.Run("Stdout", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "debug", Output: "stdout"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
		assert.Nil(t, closer)
	})

	t.Run("Console", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "warn", Format: "console"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
		assert.Nil(t, closer)
	})

	t.Run("File", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "admin.log")
		cfg := config.LoggingConfig{Level: "error", Output: "file", FilePath: logPath}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		require.NotNil(t, closer)
		logger.Error().Msg("written")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "cleanadmin-test")
	})

	t.Run("FileMissingPath", func(t *testing.T) {
		cfg := config.LoggingConfig{Output: "file"}
		_, _, err := New(cfg, appCfg)
		assert.Error(t, err)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "loud"}
		logger, _, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestFileLoggerOmitsEmptyAppFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "admin.log")
	logger, closer, err := New(config.LoggingConfig{Output: "file", FilePath: logPath}, config.AppConfig{Name: "cleanadmin"})
	require.NoError(t, err)
	logger.Info().Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"app":"cleanadmin"`)
	assert.NotContains(t, string(data), `"env"`)
	assert.NotContains(t, string(data), `"version"`)
}

func TestComponent(t *testing.T) {
	nop := Component(nil, "auth")
	assert.Equal(t, zerolog.Disabled, nop.GetLevel())

	var buf bytes.Buffer
	base := zerolog.New(&buf)
	child := Component(&base, "auth")
	child.Info().Msg("ready")
	assert.Contains(t, buf.String(), `"component":"auth"`)
}
