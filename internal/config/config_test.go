package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err) // explicit path that does not exist is an error

	cfg, err := Load("")
	require.NoError(t, err)

	remoteok := cfg.Scrapers["remoteok"]
	assert.True(t, remoteok.Enabled)
	assert.Equal(t, "https://remoteok.com/api", remoteok.URL)
	assert.Equal(t, 10*time.Second, remoteok.Timeout)
	assert.Equal(t, 2*time.Second, remoteok.RateLimitDelay)

	jooble := cfg.Scrapers["jooble"]
	assert.False(t, jooble.Enabled)
	assert.Equal(t, 3, jooble.MaxPages)

	assert.Contains(t, cfg.Filters.Keywords, "data")
	assert.Equal(t, "data/outputs", cfg.Output.Dir)
	assert.Equal(t, []string{"csv", "json", "excel", "html"}, cfg.Output.Formats)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
scrapers:
  remoteok:
    enabled: false
  jobicy:
    enabled: true
    url: https://jobicy.example/api
    timeout: 30s
    rate_limit_delay: 500ms
filters:
  keywords: [python, sql]
  locations: [Europe]
output:
  dir: /tmp/exports
  formats: [csv]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Scrapers["remoteok"].Enabled)

	jobicy := cfg.Scrapers["jobicy"]
	assert.True(t, jobicy.Enabled)
	assert.Equal(t, "https://jobicy.example/api", jobicy.URL)
	assert.Equal(t, 30*time.Second, jobicy.Timeout)
	assert.Equal(t, 500*time.Millisecond, jobicy.RateLimitDelay)

	assert.Equal(t, []string{"python", "sql"}, cfg.Filters.Keywords)
	assert.Equal(t, []string{"Europe"}, cfg.Filters.Locations)
	assert.Equal(t, "/tmp/exports", cfg.Output.Dir)
	assert.Equal(t, []string{"csv"}, cfg.Output.Formats)
}

func TestLoadJoobleAPIKeyFromEnv(t *testing.T) {
	t.Setenv("JOOBLE_API_KEY", "secret-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.Scrapers["jooble"].APIKey)
}

func TestSourceNamesSorted(t *testing.T) {
	cfg := &Config{Scrapers: map[string]SourceConfig{
		"zeta":     {Enabled: true},
		"alpha":    {},
		"remoteok": {Enabled: true},
	}}

	assert.Equal(t, []string{"alpha", "remoteok", "zeta"}, cfg.SourceNames())
	assert.Equal(t, []string{"remoteok", "zeta"}, cfg.EnabledSourceNames())
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Scrapers: map[string]SourceConfig{
			"remoteok": {URL: "https://remoteok.com/api", Timeout: time.Second},
		},
		Output: OutputConfig{Dir: "out"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"missing url",
			func(c *Config) { c.Scrapers["remoteok"] = SourceConfig{} },
			"scrapers.remoteok.url must be set",
		},
		{
			"negative timeout",
			func(c *Config) {
				c.Scrapers["remoteok"] = SourceConfig{URL: "x", Timeout: -time.Second}
			},
			"timeout must not be negative",
		},
		{
			"negative max pages",
			func(c *Config) {
				c.Scrapers["remoteok"] = SourceConfig{URL: "x", MaxPages: -1}
			},
			"max_pages must not be negative",
		},
		{
			"missing output dir",
			func(c *Config) { c.Output.Dir = "" },
			"output.dir must be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Scrapers: map[string]SourceConfig{
					"remoteok": {URL: "https://remoteok.com/api"},
				},
				Output: OutputConfig{Dir: "out"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
