package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the platform server. It is
// loaded once at startup and passed to the components that need it; nothing
// reads the environment after Load returns.
type Config struct {
	HTTPPort string
	LogLevel string

	// Managed auth service (the external identity collaborator).
	AuthServiceURL string
	AuthAnonKey    string
	AuthJWTSecret  string

	// Chat-completion collaborator for the support-chat widget.
	ChatAPIBaseURL string
	ChatModel      string

	// Optional SQLite path for persisting contact-form submissions.
	// Empty disables persistence and the contact form stays display-only.
	DatabaseURL string

	// Path to the brand/content YAML, or a built-in preset key such as
	// "maa". Empty selects the default education preset.
	BrandFile string

	// Externally reachable base URL of this site, used to build the OAuth
	// callback address handed to the auth service.
	PublicBaseURL string
}

// Load reads configuration from the environment (and a .env file if one
// exists) and validates it.
func Load() (*Config, error) {
	// A missing .env file is fine; deployments set real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		AuthAnonKey:    getEnv("AUTH_ANON_KEY", ""),
		AuthJWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
		ChatAPIBaseURL: getEnv("CHAT_API_BASE_URL", "https://api.deepseek.com/v1"),
		ChatModel:      getEnv("CHAT_MODEL", "deepseek-chat"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		BrandFile:      getEnv("BRAND_FILE", ""),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", ""),
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.HTTPPort
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// placeholderMarkers are fragments left behind when someone copies the
// sample env file without filling in real values. Refusing them at startup
// beats a confusing 401 from the collaborator later.
var placeholderMarkers = []string{
	"your-project-id",
	"your_auth_service_url_here",
	"your-anon-key-here",
	"your_anon_key_here",
}

// Validate checks required fields, URL shapes, and placeholder values.
func (c *Config) Validate() error {
	if c.AuthServiceURL == "" {
		return fmt.Errorf("AUTH_SERVICE_URL is required")
	}
	if c.AuthAnonKey == "" {
		return fmt.Errorf("AUTH_ANON_KEY is required")
	}
	if c.AuthJWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	for _, marker := range placeholderMarkers {
		if strings.Contains(c.AuthServiceURL, marker) {
			return fmt.Errorf("AUTH_SERVICE_URL still contains the placeholder value %q", marker)
		}
		if strings.Contains(c.AuthAnonKey, marker) {
			return fmt.Errorf("AUTH_ANON_KEY still contains the placeholder value %q", marker)
		}
	}

	if u, err := url.Parse(c.AuthServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("AUTH_SERVICE_URL %q is not a valid absolute URL", c.AuthServiceURL)
	}
	if u, err := url.Parse(c.ChatAPIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CHAT_API_BASE_URL %q is not a valid absolute URL", c.ChatAPIBaseURL)
	}
	if c.PublicBaseURL != "" {
		if u, err := url.Parse(c.PublicBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PUBLIC_BASE_URL %q is not a valid absolute URL", c.PublicBaseURL)
		}
	}

	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
