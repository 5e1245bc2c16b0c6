package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_SETTINGS", filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Type)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.UseRemoteServices)
	assert.Equal(t, "http://localhost:8080/", cfg.APIBaseURL)
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("JSON file selects remote services", func(t *testing.T) {
		path := filepath.Join(dir, "appsettings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"UseRemoteServices": true,
			"ApiBaseUrl": "http://api.steamprofile.test/",
			"ConnectionStrings": {"DefaultConnection": "file:dev.db"}
		}`), 0o600))
		t.Setenv("APP_SETTINGS", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.UseRemoteServices)
		assert.Equal(t, "http://api.steamprofile.test/", cfg.APIBaseURL)
		assert.Equal(t, "file:dev.db", cfg.DB.DSN)
	})

	t.Run("Environment wins over the file", func(t *testing.T) {
		path := filepath.Join(dir, "appsettings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("UseRemoteServices: true\nApiBaseUrl: http://file/\n"), 0o600))
		t.Setenv("APP_SETTINGS", path)
		t.Setenv("USE_REMOTE_SERVICES", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.UseRemoteServices)
		assert.Equal(t, "http://file/", cfg.APIBaseURL)
	})

	t.Run("Malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"UseRemoteServices": `), 0o600))
		t.Setenv("APP_SETTINGS", path)

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestConnectionString(t *testing.T) {
	pg := DatabaseConfig{Type: "postgres", Host: "db", User: "steam", Password: "p@ss", Name: "profiles"}
	assert.Equal(t, "postgresql://steam:p%40ss@db:5432/profiles?sslmode=disable", pg.ConnectionString())

	ms := DatabaseConfig{Type: "sqlserver", Host: "mssql", User: "sa", Password: "pw", Name: "SteamProfile"}
	assert.Equal(t, "sqlserver://sa:pw@mssql:1433?database=SteamProfile", ms.ConnectionString())

	explicit := DatabaseConfig{Type: "sqlite", DSN: "file::memory:"}
	assert.Equal(t, "file::memory:", explicit.ConnectionString())
}
