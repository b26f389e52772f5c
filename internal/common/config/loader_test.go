package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  name: nlu-gateway
luis:
  endpoint_url: "https://westus.api.cognitive.microsoft.com/luis/v2.0/apps/abc?subscription-key=k&q="
  timeout: 5000
camunda:
  broker_address: "localhost:26500"
workers:
  analyze-utterance:
    enabled: true
    max_jobs_active: 3
logging:
  level: debug
  format: console
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "nlu-gateway", cfg.App.Name)
	assert.Equal(t, "https://westus.api.cognitive.microsoft.com/luis/v2.0/apps/abc?subscription-key=k&q=", cfg.LUIS.EndpointURL)
	assert.Equal(t, 5*time.Second, cfg.LUIS.TimeoutDuration())
	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	worker := GetWorkerConfig(cfg, "analyze-utterance")
	assert.True(t, worker.Enabled)
	assert.Equal(t, 3, worker.MaxJobsActive)
	assert.Equal(t, 30000, worker.Timeout)
	assert.Equal(t, 3, worker.MaxRetries)
}

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "app:\n  environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "luis-client", cfg.App.Name)
	assert.Equal(t, 30000, cfg.LUIS.Timeout)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Observability.MetricsAddress)

	assert.True(t, IsWorkerEnabled(cfg, "unknown-worker"))
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown-worker").MaxJobsActive)
}

func TestLoadFromFile_EnvOverrideAndExpansion(t *testing.T) {
	t.Setenv("LUIS_ENDPOINT_URL", "http://from-env/?x=1&q=")
	t.Setenv("JAEGER_HOST", "jaeger.local")

	cfg, err := LoadFromFile(writeConfig(t, `
luis:
  endpoint_url: "http://from-file/"
observability:
  jaeger_endpoint: "http://${JAEGER_HOST}:14268/api/traces"
`))
	require.NoError(t, err)

	assert.Equal(t, "http://from-env/?x=1&q=", cfg.LUIS.EndpointURL)
	assert.Equal(t, "http://jaeger.local:14268/api/traces", cfg.Observability.JaegerEndpoint)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "logging:\n  format: xml\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")

	_, err = LoadFromFile(writeConfig(t, "luis:\n  timeout: -1\n"))
	require.Error(t, err)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
