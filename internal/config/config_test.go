package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{
			name: "valid config",
			envVars: map[string]string{
				"TAVILY_API_KEY": "tvly-test",
			},
			wantErr: nil,
		},
		{
			name:    "missing api key",
			envVars: map[string]string{},
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "negative timeout",
			envVars: map[string]string{
				"TAVILY_API_KEY":     "tvly-test",
				"TAVILY_TIMEOUT_SEC": "-1",
			},
			wantErr: ErrInvalidTimeout,
		},
		{
			name: "negative max results",
			envVars: map[string]string{
				"TAVILY_API_KEY":     "tvly-test",
				"SEARCH_MAX_RESULTS": "-5",
			},
			wantErr: ErrInvalidMaxResults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer clearEnvVars()

			cfg, err := Load()

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error = %v", err)
				return
			}

			if cfg == nil {
				t.Error("Load() returned nil config")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	clearEnvVars()
	os.Setenv("TAVILY_API_KEY", "tvly-test")
	defer clearEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want %v", cfg.Log.Level, "info")
	}
	if cfg.Tavily.BaseURL != "https://api.tavily.com" {
		t.Errorf("Tavily.BaseURL = %v, want https://api.tavily.com", cfg.Tavily.BaseURL)
	}
	if cfg.Tavily.Timeout != 30*time.Second {
		t.Errorf("Tavily.Timeout = %v, want 30s", cfg.Tavily.Timeout)
	}
	if cfg.Search.MaxResults != 0 {
		t.Errorf("Search.MaxResults = %v, want 0", cfg.Search.MaxResults)
	}
	if cfg.Search.AllowedDomains != nil {
		t.Errorf("Search.AllowedDomains = %v, want nil", cfg.Search.AllowedDomains)
	}
	if cfg.Metrics.Namespace != "websearch" {
		t.Errorf("Metrics.Namespace = %v, want websearch", cfg.Metrics.Namespace)
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		want       int
	}{
		{"valid int", "42", 10, 42},
		{"empty string", "", 10, 10},
		{"invalid int", "abc", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_INT", tt.envValue)
			defer os.Unsetenv("TEST_INT")

			got := getEnvIntOrDefault("TEST_INT", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvIntOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvListOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     []string
	}{
		{"empty", "", nil},
		{"single", "a.com", []string{"a.com"}},
		{"spaces and blanks", " a.com, b.com,,c.com ", []string{"a.com", "b.com", "c.com"}},
		{"only commas", ",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_LIST", tt.envValue)
			defer os.Unsetenv("TEST_LIST")

			got := getEnvListOrDefault("TEST_LIST", nil)
			if len(got) != len(tt.want) {
				t.Fatalf("getEnvListOrDefault() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("getEnvListOrDefault()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSearchParameters(t *testing.T) {
	cfg := &Config{
		Search: SearchConfig{
			MaxResults:     7,
			AllowedDomains: []string{"a.com", "b.com"},
		},
	}

	params := cfg.SearchParameters("open banking")
	if params.Query != "open banking" || params.Count != 7 {
		t.Errorf("SearchParameters() = %+v", params)
	}
	if len(params.FilterList) != 2 {
		t.Fatalf("FilterList = %v, want 2 domains", params.FilterList)
	}

	params.FilterList[0] = "changed.com"
	if cfg.Search.AllowedDomains[0] != "a.com" {
		t.Error("SearchParameters() must not share AllowedDomains with config")
	}

	empty := (&Config{}).SearchParameters("q")
	if empty.FilterList != nil || empty.Count != 0 {
		t.Errorf("SearchParameters() on empty config = %+v", empty)
	}
}

func TestTavilyConfig(t *testing.T) {
	cfg := &Config{Tavily: TavilyConfig{APIKey: "k", BaseURL: "http://localhost:1", Timeout: time.Second}}

	tc := cfg.TavilyConfig()
	if tc.BaseURL != "http://localhost:1" || tc.Timeout != time.Second {
		t.Errorf("TavilyConfig() = %+v", tc)
	}
}

func clearEnvVars() {
	envVars := []string{
		"TAVILY_API_KEY",
		"TAVILY_BASE_URL",
		"TAVILY_TIMEOUT_SEC",
		"SEARCH_MAX_RESULTS",
		"SEARCH_ALLOWED_DOMAINS",
		"LOG_LEVEL",
		"METRICS_NAMESPACE",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
