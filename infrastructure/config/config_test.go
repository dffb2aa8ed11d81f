package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("STORAGE_MODE", StorageModeLocal)
	t.Setenv("SQLITE_PATH", "test.db")
	// Make sure an overlay file in the working directory cannot leak in
	t.Setenv("CONFIG_DIR", t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsLocalMode())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 100, cfg.LocalDocumentQuota)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
}

func TestLoadConfigInvalidStorageMode(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_MODE", "filesystem")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "STORAGE_MODE")
}

func TestLoadConfigRequiresGeminiKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestLoadConfigTestEnvSkipsGeminiKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ENVIRONMENT", "test")

	_, err := LoadConfig()
	assert.NoError(t, err)
}

func TestHostedModeRequiresSupabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_MODE", StorageModeHosted)
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "SUPABASE_URL")

	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.IsLocalMode())
}

func TestLocalModeRequiresJWTSecretInProduction(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadWithOverlay(t *testing.T) {
	setBaseEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")
	overlay := []byte(`
server_address: ":9090"
local_document_quota: 5
gemini:
  model: gemini-1.5-pro
aws:
  legacy_table: ideaforge-legacy
`)
	require.NoError(t, os.WriteFile(path, overlay, 0o644))

	cfg, err := LoadWithOverlay(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 5, cfg.LocalDocumentQuota)
	assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	assert.Equal(t, "ideaforge-legacy", cfg.LegacyTable)
	// Untouched keys keep their environment values
	assert.Equal(t, "test.db", cfg.SQLitePath)
}

func TestLoadWithOverlayMissingFileIsFine(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadWithOverlay(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
}

func TestLoadWithOverlayRejectsInvalidResult(t *testing.T) {
	setBaseEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`storage_mode: carrier-pigeon`), 0o644))

	_, err := LoadWithOverlay(path)
	assert.ErrorContains(t, err, "STORAGE_MODE")
}

func TestDefaultOverlayPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	assert.Empty(t, DefaultOverlayPath())

	path := filepath.Join(dir, "local.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug"), 0o644))
	assert.Equal(t, path, DefaultOverlayPath())
}
