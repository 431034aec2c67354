package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5001, cfg.HTTP.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "admin", cfg.BootstrapAdmin.Username)
	assert.Equal(t, 480, cfg.JWT.ExpMin)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "backend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  port: 6000
  db:
    driver: SQLite
    path: test.db
  admins:
    - nome_completo: Leonardo Barros
      username: Leonardo
      password: admin
`), 0o644))
	t.Setenv("JWT_SECRET_KEY", "do-ambiente")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "test.db", cfg.DB.Path)
	assert.Equal(t, "do-ambiente", cfg.JWT.Secret)
	require.Len(t, cfg.Admins, 1)
	assert.Equal(t, "Leonardo Barros", cfg.Admins[0].NomeCompleto)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "backend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  db:\n    driver: oracle\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLocationFallsBackToLocal(t *testing.T) {
	assert.Equal(t, "UTC", (&Config{Timezone: "UTC"}).Location().String())
	assert.Equal(t, "Local", (&Config{Timezone: "Nowhere/Invalid"}).Location().String())
}
