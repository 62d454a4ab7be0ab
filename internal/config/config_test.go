package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeline-t/horse-calendar/internal/config"
)

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/planning")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoad_CORSOriginsCSV(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/planning")
	t.Setenv("CORS_ORIGINS", " https://planning.example.com , http://localhost:3000 ,")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t,
		[]string{"https://planning.example.com", "http://localhost:3000"},
		cfg.CORSOrigins)
}
