package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpupo63/portfolio-site-backend/config"
)

func TestGetStringFallsBackToDefault(t *testing.T) {
	env := map[string]string{"PORT": "9999"}

	assert.Equal(t, "9999", config.GetString(env, "PORT", "8080"))
	assert.Equal(t, "8080", config.GetString(env, "MISSING", "8080"))
	assert.Equal(t, "8080", config.GetString(nil, "PORT", "8080"))
}

func TestGetIntIgnoresUnparsableValues(t *testing.T) {
	env := map[string]string{"GOOD": "42", "BAD": "forty-two"}

	assert.Equal(t, 42, config.GetInt(env, "GOOD", 7))
	assert.Equal(t, 7, config.GetInt(env, "BAD", 7))
	assert.Equal(t, 7, config.GetInt(env, "MISSING", 7))
}

func TestGetStringsSplitsAndTrims(t *testing.T) {
	env := map[string]string{
		"ORIGINS": "http://localhost:3000, https://example.com ,",
		"BLANK":   " , ",
	}

	assert.Equal(t,
		[]string{"http://localhost:3000", "https://example.com"},
		config.GetStrings(env, "ORIGINS", nil))
	assert.Equal(t, []string{"*"}, config.GetStrings(env, "MISSING", []string{"*"}))
	assert.Equal(t, []string{"*"}, config.GetStrings(env, "BLANK", []string{"*"}))
}

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load(map[string]string{})

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "data/db.json", cfg.DatabasePath)
	assert.Equal(t, 24, cfg.AccessTokenExpiry)
	assert.Equal(t, 168, cfg.RefreshTokenExpiry)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	cfg := config.Load(map[string]string{
		"ENVIRONMENT":               "production",
		"ACCESS_TOKEN_EXPIRY_HOURS": "1",
		"ACCEPTED_ORIGINS":          "https://site.example",
	})

	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 1, cfg.AccessTokenExpiry)
	assert.Equal(t, []string{"https://site.example"}, cfg.AllowedOrigins)
}
