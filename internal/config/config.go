package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kitbuilder587/websearch/internal/search"
	"github.com/kitbuilder587/websearch/internal/search/tavily"
)

var (
	ErrMissingAPIKey     = errors.New("TAVILY_API_KEY is required")
	ErrInvalidTimeout    = errors.New("tavily timeout must be non-negative")
	ErrInvalidMaxResults = errors.New("max results must be non-negative")
)

type Config struct {
	Tavily  TavilyConfig
	Search  SearchConfig
	Log     LogConfig
	Metrics MetricsConfig
}

type TavilyConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// SearchConfig - значения по умолчанию для SearchParameters
type SearchConfig struct {
	MaxResults     int
	AllowedDomains []string
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Namespace string
}

func Load() (*Config, error) {
	cfg := &Config{
		Tavily: TavilyConfig{
			APIKey:  os.Getenv("TAVILY_API_KEY"),
			BaseURL: getEnvOrDefault("TAVILY_BASE_URL", tavily.DefaultBaseURL),
			Timeout: time.Duration(getEnvIntOrDefault("TAVILY_TIMEOUT_SEC", 30)) * time.Second,
		},
		Search: SearchConfig{
			MaxResults:     getEnvIntOrDefault("SEARCH_MAX_RESULTS", 0),
			AllowedDomains: getEnvListOrDefault("SEARCH_ALLOWED_DOMAINS", nil),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Namespace: getEnvOrDefault("METRICS_NAMESPACE", "websearch"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Tavily.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Tavily.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Search.MaxResults < 0 {
		return ErrInvalidMaxResults
	}
	return nil
}

func (c *Config) TavilyConfig() tavily.Config {
	return tavily.Config{
		BaseURL: c.Tavily.BaseURL,
		Timeout: c.Tavily.Timeout,
	}
}

// SearchParameters собирает параметры запроса из дефолтов конфига.
// AllowedDomains копируется, чтобы вызывающий не мог поменять конфиг.
func (c *Config) SearchParameters(query string) search.SearchParameters {
	var filter []string
	if len(c.Search.AllowedDomains) > 0 {
		filter = append([]string(nil), c.Search.AllowedDomains...)
	}
	return search.SearchParameters{
		Query:      query,
		Count:      c.Search.MaxResults,
		FilterList: filter,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// "a.com, b.com,,c.com" -> [a.com b.com c.com]
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
