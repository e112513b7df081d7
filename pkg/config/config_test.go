package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "app:\n  name: lapeco-hr\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "pdf", cfg.Reports.Format)
	assert.Equal(t, "nats", cfg.Queue.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.EvaluationPeriodTTL)
	assert.Equal(t, int64(20<<20), cfg.Attachments.MaxBytes)
	assert.Equal(t, uint32(5), cfg.CircuitBreaker.FailureThreshold)
}

func TestLoadFile_YAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
reports:
  format: csv
  company_name: Acme
attachments:
  base_url: http://files.local/api
  timeout: 3s
cache:
  evaluation_period_ttl: 1m
`)
	t.Setenv("DATABASE_URL", "postgres://hr@db/hr")
	t.Setenv("APP_HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Reports.Format)
	assert.Equal(t, "Acme", cfg.Reports.CompanyName)
	assert.Equal(t, "http://files.local/api", cfg.Attachments.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Attachments.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.EvaluationPeriodTTL)
	assert.Equal(t, "postgres://hr@db/hr", cfg.Database.URL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"format", "reports:\n  format: docx\n"},
		{"driver", "queue:\n  driver: kafka\n"},
		{"queue without url", "queue:\n  enabled: true\n"},
		{"vault without address", "vault:\n  enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}
