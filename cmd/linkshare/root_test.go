package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LINKSHARE_TEST_VAR=from-file\n"), 0o600))

	t.Setenv("LINKSHARE_TEST_VAR", "")
	os.Unsetenv("LINKSHARE_TEST_VAR")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("LINKSHARE_TEST_VAR"))

	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
	assert.NoError(t, loadEnvFile(""))
}

func TestSetupLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	setupLogging("debug", "production")
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	setupLogging("nonsense", "development")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
}

func TestMigrateAndSeedCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(dir, "test.db"))
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "config.yaml"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("categories:\n  - Recipes\n"), 0o600))

	for _, args := range [][]string{{"migrate"}, {"seed"}, {"seed"}} {
		root := newRootCmd()
		root.SetArgs(append(args, "--env-file", ""))
		require.NoError(t, root.ExecuteContext(context.Background()), "linkshare %v", args)
	}
}

func TestServe_RequiresSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "test.db"))

	root := newRootCmd()
	root.SetArgs([]string{"serve", "--env-file", ""})
	err := root.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "invalid configuration")
}
