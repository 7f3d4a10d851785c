package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "admin", cfg.Auth.Account)
	assert.Equal(t, 8*3600, cfg.Auth.SessionTTL)
	assert.Equal(t, "", cfg.Notify.WebhookURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "jemaat_test")
	t.Setenv("SESSION_TTL", "600")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "jemaat_test", cfg.Database.Database)
	assert.Equal(t, 600, cfg.Auth.SessionTTL)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	cfg := Load()
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "pw",
		Database: "jemaat",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=app password=pw dbname=jemaat sslmode=require",
		db.GetDSN())
}
