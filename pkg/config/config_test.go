package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Analytics.TZOffsetHours)
	assert.Equal(t, 20, cfg.Analytics.TopProducts)
	assert.Equal(t, 10, cfg.Analytics.PendingLimit)
	assert.Equal(t, 30, cfg.Marketing.WindowDays)
	assert.Equal(t, 20, cfg.Marketing.TimeoutSeconds)
	assert.Equal(t, 0, cfg.Marketing.LoadTimeoutSeconds, "sin tope de carga por defecto")
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeVariablesDeEntorno(t *testing.T) {
	t.Setenv("ANALYTICS_TZ_OFFSET_HOURS", "3")
	t.Setenv("ANALYTICS_TOP_PRODUCTS", "50")
	t.Setenv("MARKETING_BASE_URL", "https://ads.example.test")
	t.Setenv("MARKETING_CONCURRENCY", "8")
	t.Setenv("MARKETING_LOAD_TIMEOUT_SECONDS", "120")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Analytics.TZOffsetHours)
	assert.Equal(t, 50, cfg.Analytics.TopProducts)
	assert.Equal(t, "https://ads.example.test", cfg.Marketing.BaseURL)
	assert.Equal(t, 8, cfg.Marketing.Concurrency)
	assert.Equal(t, 120, cfg.Marketing.LoadTimeoutSeconds)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DesfaseFueraDeRango(t *testing.T) {
	t.Setenv("ANALYTICS_TZ_OFFSET_HOURS", "15")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "sa", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/sa?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
