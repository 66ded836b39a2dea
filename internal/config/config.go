package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix: префикс переменных окружения (PATIENTDESK_API_BASE_URL и т.д.)
const EnvPrefix = "PATIENTDESK"

// Config представляет конфигурацию клиента
type Config struct {
	APIBaseURL        string        `mapstructure:"api_base_url"`
	CachePath         string        `mapstructure:"cache_path"`
	CacheKey          string        `mapstructure:"cache_key"` // пустой ключ отключает шифрование кэша
	LogLevel          string        `mapstructure:"log_level"`
	Debounce          time.Duration `mapstructure:"debounce"`
	FilterDebounce    time.Duration `mapstructure:"filter_debounce"`
	StaleTime         time.Duration `mapstructure:"stale_time"`
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	ReadRetries       int           `mapstructure:"read_retries"`
	DefinitionRetries int           `mapstructure:"definition_retries"`
	PageSize          int           `mapstructure:"page_size"`
	LogPretty         bool          `mapstructure:"log_pretty"`
}

// Значения по умолчанию
const (
	DefaultAPIBaseURL        = "http://localhost:8000"
	DefaultCachePath         = "patientdesk-cache.db"
	DefaultLogLevel          = "info"
	DefaultDebounce          = 300 * time.Millisecond
	DefaultFilterDebounce    = 600 * time.Millisecond
	DefaultStaleTime         = 5 * time.Minute
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultReadRetries       = 1
	DefaultDefinitionRetries = 2
	DefaultPageSize          = 10
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("cache_path", DefaultCachePath)
	v.SetDefault("cache_key", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_pretty", true)
	v.SetDefault("debounce", DefaultDebounce)
	v.SetDefault("filter_debounce", DefaultFilterDebounce)
	v.SetDefault("stale_time", DefaultStaleTime)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("read_retries", DefaultReadRetries)
	v.SetDefault("definition_retries", DefaultDefinitionRetries)
	v.SetDefault("page_size", DefaultPageSize)
}

// Load читает конфигурацию: значения по умолчанию, затем файл, затем переменные PATIENTDESK_*.
// При пустом path файл "patientdesk.{yaml,json,toml}" ищется в рабочем каталоге
// и в $HOME/.config/patientdesk; отсутствие файла не ошибка.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("patientdesk")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/patientdesk")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет, что конфигурацией можно пользоваться
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api_base_url must be an http(s) URL, got %q", c.APIBaseURL)
	}
	if c.CachePath == "" {
		return fmt.Errorf("cache_path is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q is not valid: %w", c.LogLevel, err)
	}

	for name, d := range map[string]time.Duration{
		"debounce":        c.Debounce,
		"filter_debounce": c.FilterDebounce,
		"stale_time":      c.StaleTime,
		"http_timeout":    c.HTTPTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if c.ReadRetries < 0 || c.DefinitionRetries < 0 {
		return fmt.Errorf("retries cannot be negative")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	return nil
}

// Encrypted сообщает, шифруются ли ответы в кэше
func (c *Config) Encrypted() bool {
	return c.CacheKey != ""
}
