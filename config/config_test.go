package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg := FromEnv(env(nil))
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "village360.db", cfg.DBPath)
	assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "http://localhost:3000", cfg.ClientURL)
	assert.False(t, cfg.Production())
	assert.NoError(t, cfg.Validate())
}

func TestProductionNeedsSecret(t *testing.T) {
	cfg := FromEnv(env(map[string]string{"APP_ENV": "production"}))
	assert.Error(t, cfg.Validate())
}

func TestDatabaseURLSelectsMySQL(t *testing.T) {
	cfg := FromEnv(env(map[string]string{"DATABASE_URL": "u:p@tcp(db:3306)/village360?parseTime=true"}))
	assert.Equal(t, "mysql", cfg.DBDriver)

	cfg = FromEnv(env(map[string]string{"DATABASE_URL": "x", "DB_DRIVER": "memory"}))
	assert.Equal(t, "memory", cfg.DBDriver)
}

func TestExplicitValues(t *testing.T) {
	cfg := FromEnv(env(map[string]string{
		"PORT":       "8080",
		"JWT_SECRET": "s3cret",
		"APP_ENV":    "production",
		"LOG_FORMAT": "console",
	}))
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.Production())
	assert.NoError(t, cfg.Validate())
}
