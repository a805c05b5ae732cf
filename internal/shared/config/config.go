package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	defaultBaseURL      = "https://gcs-flask-backend-811925332379.southamerica-east1.run.app"
	defaultLocalBaseURL = "http://localhost:8081"
)

// Config holds application configuration.
type Config struct {
	Env             string
	Port            string
	CORSAllowOrigin []string
	BaseURL         string
	LocalBaseURL    string
	UseLocal        bool
	Reporting       bool
	AuthToken       string
	LogLevel        string
}

// Load reads configuration from an optional TOML file and environment
// variables, in that order, over built-in defaults.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit TOML path. An empty path falls back to
// UPLOADER_CONFIG.
func LoadFile(path string) (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv("UPLOADER_CONFIG"))
	}

	cfg := defaults()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Env:             "dev",
		Port:            "8080",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		BaseURL:         defaultBaseURL,
		LocalBaseURL:    defaultLocalBaseURL,
		Reporting:       true,
		LogLevel:        "info",
	}
}

func applyEnv(cfg *Config) {
	cfg.Env = normalizeEnv(getEnv("ENV", cfg.Env))
	cfg.Port = getEnv("PORT", cfg.Port)
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.BaseURL = getEnv("UPLOADER_BASE_URL", cfg.BaseURL)
	cfg.LocalBaseURL = getEnv("UPLOADER_LOCAL_BASE_URL", cfg.LocalBaseURL)
	cfg.UseLocal = getBool("UPLOADER_USE_LOCAL", cfg.UseLocal)
	cfg.Reporting = getBool("UPLOADER_REPORTING", cfg.Reporting)
	cfg.AuthToken = getEnv("UPLOADER_AUTH_TOKEN", cfg.AuthToken)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
}

// Validate checks the values a client cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.EndpointBase()) == "" {
		return fmt.Errorf("config: base url is required")
	}
	return nil
}

// EndpointBase is the base URL the remote client talks to.
func (c Config) EndpointBase() string {
	if c.UseLocal || c.Env == "local" {
		return strings.TrimRight(c.LocalBaseURL, "/")
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
