package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/weplanit")
	t.Setenv("ORIGIN", "")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")

	cfg := LoadConfig()

	assert.Equal(t, "postgres://localhost:5432/weplanit", cfg.DatabaseURL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Origins)
	assert.Equal(t, "secret", cfg.TokenSecret)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfigOriginList(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/weplanit")
	t.Setenv("ORIGIN", " https://app.example.com , https://staging.example.com ")
	t.Setenv("TOKEN_SECRET", "real-secret")
	t.Setenv("APP_ENV", "development")

	cfg := LoadConfig()

	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.Origins)
	assert.Equal(t, "real-secret", cfg.TokenSecret)
	assert.True(t, cfg.IsDevelopment())
}
