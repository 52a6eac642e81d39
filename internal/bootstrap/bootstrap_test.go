package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/jobfinder-api/internal/config"
	"github.com/maauso/jobfinder-api/internal/jsearch"
	"github.com/maauso/jobfinder-api/internal/savedjobs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func baseConfig() *config.Config {
	return &config.Config{
		StoreBackend:  config.BackendMemory,
		CollectionKey: "savedJobs",
		JSearchAPIKey: "test-api-key",
		RedisPrefix:   "jobfinder",
	}
}

func TestNewDependencies_Memory(t *testing.T) {
	deps, err := NewDependencies(context.Background(), baseConfig(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	require.NotNil(t, deps.SavedJobs)
	assert.IsType(t, &jsearch.HTTPClient{}, deps.Listings)
	assert.Equal(t, "savedJobs", deps.SavedJobs.CollectionKey())
}

func TestNewDependencies_File(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig()
	cfg.StoreBackend = "FILE"
	cfg.DataDir = dir
	cfg.CollectionKey = "favourites"

	deps, err := NewDependencies(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, deps.SavedJobs.Save(ctx, savedjobs.JobRecord{JobID: savedjobs.StringID("42")}))

	_, err = os.Stat(filepath.Join(dir, "favourites.json"))
	assert.NoError(t, err)
	assert.NoError(t, deps.Close())
}

func TestNewDependencies_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig()
	cfg.StoreBackend = config.BackendRedis
	cfg.RedisURL = "redis://" + mr.Addr()

	deps, err := NewDependencies(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	require.NoError(t, deps.SavedJobs.Save(context.Background(), savedjobs.JobRecord{JobID: savedjobs.StringID("42")}))
	assert.True(t, mr.Exists("jobfinder:savedJobs"))

	require.Len(t, deps.closers, 1)
	assert.NoError(t, deps.Close())
	assert.Empty(t, deps.closers)
}

func TestNewDependencies_Errors(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := baseConfig()
		cfg.StoreBackend = "sqlite"

		_, err := NewDependencies(context.Background(), cfg, testLogger())
		assert.ErrorIs(t, err, config.ErrUnknownBackend)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := baseConfig()
		cfg.StoreBackend = config.BackendRedis
		cfg.RedisURL = "redis://" + addr

		_, err := NewDependencies(context.Background(), cfg, testLogger())
		assert.Error(t, err)
	})

	t.Run("missing API key", func(t *testing.T) {
		cfg := baseConfig()
		cfg.JSearchAPIKey = ""

		_, err := NewDependencies(context.Background(), cfg, testLogger())
		assert.ErrorIs(t, err, jsearch.ErrAPIKeyNotSet)
	})
}
