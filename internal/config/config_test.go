package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "aime_knowledge.db", cfg.Database.Path)
	assert.Equal(t, 0.8, cfg.Scoring.ErrorPenalty)
	assert.Equal(t, 0.8, cfg.Scoring.ReviewThreshold)
	assert.Equal(t, 3, cfg.Scoring.MaxRecommendedSteps)
	assert.Empty(t, cfg.Recommendations)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("ALIGNCHECK_DB", "")
	t.Setenv("ALIGNCHECK_DRIVER", "")
	t.Setenv("ALIGNCHECK_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "nested", "aligncheck.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = "platform.db"
	cfg.Scoring.ErrorPenalty = 0.5
	cfg.Recommendations = []RecommendationRule{{Keyword: "story", Text: "Tell more stories"}}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "platform.db", loaded.Database.Path)
	assert.Equal(t, 0.5, loaded.Scoring.ErrorPenalty)
	require.Len(t, loaded.Recommendations, 1)
	assert.Equal(t, "story", loaded.Recommendations[0].Keyword)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("ALIGNCHECK_DB", "")
	t.Setenv("ALIGNCHECK_DRIVER", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Database, cfg.Database)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("ALIGNCHECK_DB", "")
	t.Setenv("ALIGNCHECK_DRIVER", "")

	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: other.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.Database.Path)
	assert.Equal(t, 0.8, cfg.Scoring.ErrorPenalty)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("ALIGNCHECK_DB sets path for sqlite", func(t *testing.T) {
		t.Setenv("ALIGNCHECK_DRIVER", "")
		t.Setenv("ALIGNCHECK_DB", "/data/env.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/data/env.db", cfg.Database.Path)
		assert.Empty(t, cfg.Database.DSN)
	})

	t.Run("ALIGNCHECK_DB sets dsn for postgres", func(t *testing.T) {
		t.Setenv("ALIGNCHECK_DRIVER", DriverPostgres)
		t.Setenv("ALIGNCHECK_DB", "postgres://localhost/aime")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "postgres://localhost/aime", cfg.Database.DSN)
		assert.Equal(t, "aime_knowledge.db", cfg.Database.Path)
	})

	t.Run("ALIGNCHECK_LOG_LEVEL", func(t *testing.T) {
		t.Setenv("ALIGNCHECK_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ALIGNCHECK_DB=from-dotenv.db\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// godotenv never overrides variables that are already set
	t.Setenv("ALIGNCHECK_DRIVER", "")
	t.Setenv("ALIGNCHECK_DB", "")
	require.NoError(t, os.Unsetenv("ALIGNCHECK_DB"))

	cfg, err := Load(filepath.Join(dir, "aligncheck.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.Database.Path)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "invalid database driver"},
		{"penalty above one", func(c *Config) { c.Scoring.ErrorPenalty = 1.5 }, "error_penalty"},
		{"negative threshold", func(c *Config) { c.Scoring.ReviewThreshold = -0.1 }, "review_threshold"},
		{"negative cap", func(c *Config) { c.Scoring.MaxRecommendedSteps = -1 }, "max_recommended_steps"},
		{"empty keyword", func(c *Config) {
			c.Recommendations = []RecommendationRule{{Text: "x"}}
		}, "keyword is empty"},
		{"empty text", func(c *Config) {
			c.Recommendations = []RecommendationRule{{Keyword: "x"}}
		}, "text is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateAllowsEmptyTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Path = ""
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = DriverPostgres
	assert.Empty(t, cfg.Database.Target())
	assert.NoError(t, cfg.Validate())
}

func TestGetQueryTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Second, cfg.GetQueryTimeout())

	cfg.Database.QueryTimeout = "5s"
	assert.Equal(t, 5*time.Second, cfg.GetQueryTimeout())

	cfg.Database.QueryTimeout = "garbage"
	assert.Equal(t, 30*time.Second, cfg.GetQueryTimeout())
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	c := LoggingConfig{}
	assert.False(t, c.IsCategoryEnabled("store"))

	c.DebugMode = true
	assert.True(t, c.IsCategoryEnabled("store"))

	c.Categories = map[string]bool{"store": false}
	assert.False(t, c.IsCategoryEnabled("store"))
	assert.True(t, c.IsCategoryEnabled("checks"))
}
