package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "DB_URL", "DB_DRIVER", "LOG_LEVEL", "PORT"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 3, cfg.Analysis.KeywordLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.ArchiveEnabled())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9090
  readTimeout: 5s
database:
  driver: postgres
  host: db
  port: 5432
  user: app
  password: pw
  name: extracter
ai:
  apiKey: file-key
  timeout: 12s
analysis:
  keywordLimit: 5
minio:
  endpoint: minio:9000
  bucketName: raw
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=extracter sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, "file-key", cfg.AI.APIKey)
	assert.Equal(t, 12*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 5, cfg.Analysis.KeywordLimit)
	assert.True(t, cfg.ArchiveEnabled())
	assert.Equal(t, "raw", cfg.Minio.BucketName)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "ai:\n  apiKey: file-key\n")
	t.Setenv("OPENAI_KEY", "env-key")
	t.Setenv("DB_URL", "postgres://u:p@localhost/db?sslmode=disable")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AI.APIKey)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost/db?sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestMySQLDSN(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  host: localhost
  port: 3306
  user: root
  password: secret
  name: app
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/app?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "database:\n  driver: sqlite\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not, a, map]\n"))
	assert.Error(t, err)

	t.Setenv("PORT", "eighty")
	_, err = Load(writeConfig(t, ""))
	assert.Error(t, err)
}
