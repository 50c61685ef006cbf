package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"TASKBOARD_APP_NAME":        os.Getenv("TASKBOARD_APP_NAME"),
		"TASKBOARD_APP_ENV":         os.Getenv("TASKBOARD_APP_ENV"),
		"TASKBOARD_APP_PORT":        os.Getenv("TASKBOARD_APP_PORT"),
		"TASKBOARD_MONGO_URI":       os.Getenv("TASKBOARD_MONGO_URI"),
		"TASKBOARD_MONGO_DATABASE":  os.Getenv("TASKBOARD_MONGO_DATABASE"),
		"TASKBOARD_MONGO_MAX_POOL_SIZE": os.Getenv("TASKBOARD_MONGO_MAX_POOL_SIZE"),
		"TASKBOARD_MONGO_MIN_POOL_SIZE": os.Getenv("TASKBOARD_MONGO_MIN_POOL_SIZE"),
		"TASKBOARD_REDIS_ENABLED":   os.Getenv("TASKBOARD_REDIS_ENABLED"),
		"TASKBOARD_REDIS_HOST":      os.Getenv("TASKBOARD_REDIS_HOST"),
		"TASKBOARD_REDIS_PASSWORD":  os.Getenv("TASKBOARD_REDIS_PASSWORD"),
		"TASKBOARD_LOG_FORMAT":      os.Getenv("TASKBOARD_LOG_FORMAT"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "taskboard-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
		assert.Equal(t, "taskboard", cfg.Mongo.Database)
		assert.Equal(t, uint64(100), cfg.Mongo.MaxPoolSize)
		assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, 60*time.Second, cfg.Redis.CacheTTL)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
	})

	t.Run("loads values from environment variables with TASKBOARD prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("TASKBOARD_APP_NAME", "test-app")
		os.Setenv("TASKBOARD_APP_PORT", "9000")
		os.Setenv("TASKBOARD_MONGO_URI", "mongodb://db.internal:27017")
		os.Setenv("TASKBOARD_MONGO_DATABASE", "tracker_test")
		os.Setenv("TASKBOARD_REDIS_ENABLED", "true")
		os.Setenv("TASKBOARD_REDIS_HOST", "cache.internal")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
		assert.Equal(t, "tracker_test", cfg.Mongo.Database)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	})

	t.Run("validates MinPoolSize cannot exceed MaxPoolSize", func(t *testing.T) {
		clearEnv()
		os.Setenv("TASKBOARD_MONGO_MAX_POOL_SIZE", "10")
		os.Setenv("TASKBOARD_MONGO_MIN_POOL_SIZE", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_pool_size")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		clearEnv()
		os.Setenv("TASKBOARD_LOG_FORMAT", "logfmt")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.format")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"TASKBOARD_APP_ENV":        os.Getenv("TASKBOARD_APP_ENV"),
		"TASKBOARD_MONGO_URI":      os.Getenv("TASKBOARD_MONGO_URI"),
		"TASKBOARD_REDIS_ENABLED":  os.Getenv("TASKBOARD_REDIS_ENABLED"),
		"TASKBOARD_REDIS_PASSWORD": os.Getenv("TASKBOARD_REDIS_PASSWORD"),
		"TASKBOARD_HTTP_CORS_ALLOW_ORIGINS": os.Getenv("TASKBOARD_HTTP_CORS_ALLOW_ORIGINS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("TASKBOARD_APP_ENV", "production")
		os.Setenv("TASKBOARD_MONGO_URI", "mongodb://db.internal:27017/taskboard")
	}

	t.Run("rejects localhost mongo in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("TASKBOARD_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mongo.uri")
	})

	t.Run("requires redis password when redis enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("TASKBOARD_REDIS_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis.password")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("TASKBOARD_REDIS_ENABLED", "true")
		os.Setenv("TASKBOARD_REDIS_PASSWORD", "secure-password")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("TASKBOARD_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}
