package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/pitchlens/internal/config"
)

const sampleYAML = `
server:
  port: 8080
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: pitchlens
  password: secret
  name: pitchlens
minio:
  endpoint: minio.internal:9000
  accessKey: minio
  secretKey: miniosecret
  bucketName: pitches
  region: us-east-1
  useSSL: false
openai:
  apiKey: sk-test
  model: gpt-4o-mini
auth:
  apiKeys:
    acme: key-acme
rateLimit:
  capacity: 10
  refillRate: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "pitches", cfg.Minio.BucketName)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "key-acme", cfg.Auth.APIKeys["acme"])
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
}

func TestLoadEnvOverridesSecrets(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("DB_PASSWORD", "pw-from-env")

	cfg, err := config.Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "pw-from-env", cfg.Database.Password)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSNHelpers(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t,
		"pitchlens:secret@tcp(db.internal:3306)/pitchlens?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN(),
	)
	assert.Equal(t,
		"host=db.internal port=3306 user=pitchlens password=secret dbname=pitchlens sslmode=disable",
		cfg.PostgresDSN(),
	)
}
