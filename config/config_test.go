package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  serviceName: saferoute
  log:
    level: debug
http:
  port: 8080
scoring:
  segmentLengthMeters: 50
  nightEndHour: 0
  weights:
    lighting: 0.25
navigation:
  rerouteDebounce: 2s
  maxRerouteAttempts: 3
providers:
  timeout: 5s
  traffic:
    enabled: true
    apiKey: ""
`

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))

	return dir
}

func TestLoadWithEnv(t *testing.T) {
	dir := writeConfig(t)
	t.Chdir(dir)
	t.Setenv("SCORING_SEGMENTLENGTHMETERS", "75")
	t.Setenv("NAVIGATION_REROUTEDEBOUNCE", "500ms")
	t.Setenv("PROVIDERS_TRAFFIC_APIKEY", "secret")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "saferoute", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	require.NotNil(t, cfg.Scoring)
	assert.Equal(t, 75.0, cfg.Scoring.SegmentLengthMeters)
	assert.Equal(t, 0.25, cfg.Scoring.Weights.Lighting)
	require.NotNil(t, cfg.Scoring.NightEndHour)
	assert.Equal(t, 0, *cfg.Scoring.NightEndHour)
	assert.Nil(t, cfg.Scoring.TrafficDefault)
	require.NotNil(t, cfg.Navigation)
	assert.Equal(t, 500*time.Millisecond, cfg.Navigation.RerouteDebounce)
	assert.Equal(t, 3, cfg.Navigation.MaxRerouteAttempts)
	require.NotNil(t, cfg.Providers)
	assert.Equal(t, 5*time.Second, cfg.Providers.Timeout)
	assert.True(t, cfg.Providers.Traffic.Enabled)
	assert.Equal(t, "secret", cfg.Providers.Traffic.APIKey)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.NotNil(t, cfg.Scoring)
	assert.NotNil(t, cfg.Navigation)
	assert.NotNil(t, cfg.Providers)
	assert.NotNil(t, cfg.PubSub)
	assert.NotNil(t, cfg.MQTT)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SAFEROUTE_DOTENV_TEST=loaded\n"), 0o600))
	t.Setenv("SAFEROUTE_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("SAFEROUTE_DOTENV_TEST"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("SAFEROUTE_DOTENV_TEST"))
}
