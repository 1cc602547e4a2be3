package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		HTTPPort:       "8080",
		AuthServiceURL: "https://auth.example.com/auth/v1",
		AuthAnonKey:    "anon-key",
		AuthJWTSecret:  "secret",
		ChatAPIBaseURL: "https://api.deepseek.com/v1",
		ChatModel:      "deepseek-chat",
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cases := map[string]func(*Config){
		"auth url":   func(c *Config) { c.AuthServiceURL = "" },
		"anon key":   func(c *Config) { c.AuthAnonKey = "" },
		"jwt secret": func(c *Config) { c.AuthJWTSecret = "" },
		"http port":  func(c *Config) { c.HTTPPort = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRejectsPlaceholders(t *testing.T) {
	cfg := validConfig()
	cfg.AuthServiceURL = "https://your-project-id.example.com"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.AuthAnonKey = "your-anon-key-here"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMalformedURLs(t *testing.T) {
	cfg := validConfig()
	cfg.AuthServiceURL = "not-a-url"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.ChatAPIBaseURL = "://bad"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.PublicBaseURL = "not-a-url"
	assert.Error(t, cfg.Validate())
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("AUTH_SERVICE_URL", "https://auth.example.com")
	t.Setenv("AUTH_ANON_KEY", "anon")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.ChatAPIBaseURL)
	assert.Equal(t, "deepseek-chat", cfg.ChatModel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
}

func TestLoadFailsWithoutAuthConfig(t *testing.T) {
	t.Setenv("AUTH_SERVICE_URL", "")
	t.Setenv("AUTH_ANON_KEY", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
