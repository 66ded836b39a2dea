package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp переходит во временную директорию, чтобы файл конфигурации из рабочей директории не подхватился
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultCachePath, cfg.CachePath)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.Equal(t, DefaultFilterDebounce, cfg.FilterDebounce)
	assert.Equal(t, DefaultStaleTime, cfg.StaleTime)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultReadRetries, cfg.ReadRetries)
	assert.Equal(t, DefaultDefinitionRetries, cfg.DefinitionRetries)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.False(t, cfg.Encrypted())
}

func TestLoad_Env(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PATIENTDESK_API_BASE_URL", "https://clinic.example.com")
	t.Setenv("PATIENTDESK_DEBOUNCE", "500ms")
	t.Setenv("PATIENTDESK_PAGE_SIZE", "25")
	t.Setenv("PATIENTDESK_CACHE_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://clinic.example.com", cfg.APIBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.Encrypted())
}

func TestLoad_File(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	content := "api_base_url: http://10.0.0.5:8000\nstale_time: 1m\nlog_level: debug\nlog_pretty: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8000", cfg.APIBaseURL)
	assert.Equal(t, time.Minute, cfg.StaleTime)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
}

func TestLoad_FileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patientdesk.yaml"), []byte("page_size: 50\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "patientdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 50\n"), 0o600))
	t.Setenv("PATIENTDESK_PAGE_SIZE", "20")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.PageSize)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			APIBaseURL:     DefaultAPIBaseURL,
			CachePath:      DefaultCachePath,
			LogLevel:       "info",
			Debounce:       DefaultDebounce,
			FilterDebounce: DefaultFilterDebounce,
			StaleTime:      DefaultStaleTime,
			HTTPTimeout:    DefaultHTTPTimeout,
			PageSize:       DefaultPageSize,
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		mutate func(c *Config)
		name   string
	}{
		{name: "no scheme", mutate: func(c *Config) { c.APIBaseURL = "localhost:8000" }},
		{name: "ftp scheme", mutate: func(c *Config) { c.APIBaseURL = "ftp://example.com" }},
		{name: "empty cache path", mutate: func(c *Config) { c.CachePath = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "zero debounce", mutate: func(c *Config) { c.Debounce = 0 }},
		{name: "negative stale time", mutate: func(c *Config) { c.StaleTime = -time.Second }},
		{name: "negative retries", mutate: func(c *Config) { c.ReadRetries = -1 }},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
