package config_test

import (
	"path/filepath"
	"testing"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "brawldeck"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "brawldeck"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(
				tempHome, ".local", "share", "brawldeck", "logs"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "brawldeck", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		// Import defaults
		assert.Equal(t, 100, cfg.Import.BatchSize)
		assert.Equal(t, 100, cfg.Import.ProgressEvery)
		assert.True(t, cfg.Import.ClearExisting)
		assert.Equal(t, "brawl", cfg.Import.Format)
		assert.Equal(t, "arena", cfg.Import.Platform)
		assert.Equal(t, "en", cfg.Import.Language)
		assert.Equal(t, 24, cfg.Import.MaxAgeHours)
		assert.False(t, cfg.Import.ForceDownload)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestUpdate(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptDatabaseHost("db.example.org"),
		config.OptDatabasePort(5433),
		config.OptImportBatchSize(500),
		config.OptImportClearExisting(false),
		config.OptLogLevel("debug"),
	})

	assert.Equal(t, "db.example.org", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 500, cfg.Import.BatchSize)
	assert.False(t, cfg.Import.ClearExisting)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestUpdateRejectsInvalid(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptDatabaseHost("  "),
		config.OptDatabasePort(-5),
		config.OptImportBatchSize(0),
		config.OptLogLevel("loud"),
	})

	// Invalid values are rejected; the config stays at its defaults.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 100, cfg.Import.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseHost("db.example.org"),
		config.OptImportMaxAgeHours(72),
		config.OptLogFormat("text"),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Database, clone.Database)
	assert.Equal(t, cfg.Import, clone.Import)
	assert.Equal(t, cfg.Log, clone.Log)
}

func TestToOptionsSkipsRuntimeFields(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir("/home/someone"),
		config.OptImportForceDownload(true),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	assert.Empty(t, clone.HomeDir)
	assert.False(t, clone.Import.ForceDownload)
}
