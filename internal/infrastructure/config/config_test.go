package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"RETAIL_APP_NAME":          os.Getenv("RETAIL_APP_NAME"),
		"RETAIL_APP_ENV":           os.Getenv("RETAIL_APP_ENV"),
		"RETAIL_APP_PORT":          os.Getenv("RETAIL_APP_PORT"),
		"RETAIL_DATABASE_HOST":     os.Getenv("RETAIL_DATABASE_HOST"),
		"RETAIL_DATABASE_PORT":     os.Getenv("RETAIL_DATABASE_PORT"),
		"RETAIL_DATABASE_USER":     os.Getenv("RETAIL_DATABASE_USER"),
		"RETAIL_DATABASE_PASSWORD": os.Getenv("RETAIL_DATABASE_PASSWORD"),
		"RETAIL_DATABASE_DBNAME":   os.Getenv("RETAIL_DATABASE_DBNAME"),
		"RETAIL_DATABASE_SSLMODE":  os.Getenv("RETAIL_DATABASE_SSLMODE"),
		"RETAIL_JWT_SECRET":        os.Getenv("RETAIL_JWT_SECRET"),
		"RETAIL_JOBS_TIMEZONE":     os.Getenv("RETAIL_JOBS_TIMEZONE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "retailpos-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "retailpos", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "Asia/Dhaka", cfg.Jobs.Timezone)
		assert.Equal(t, 23, cfg.Jobs.AccrualHour)
		assert.Equal(t, 30, cfg.Jobs.AccrualMinute)
		assert.Equal(t, 9, cfg.Jobs.ReminderHour)
		assert.Equal(t, 10*time.Minute, cfg.Jobs.LockTTL)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAIL_APP_NAME", "custom-name")
		os.Setenv("RETAIL_DATABASE_HOST", "db.internal")
		os.Setenv("RETAIL_JOBS_TIMEZONE", "UTC")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "custom-name", cfg.App.Name)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "UTC", cfg.Jobs.Timezone)
	})

	t.Run("rejects invalid timezone", func(t *testing.T) {
		clearEnv()
		os.Setenv("RETAIL_JOBS_TIMEZONE", "Not/AZone")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "timezone")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"RETAIL_APP_ENV":           os.Getenv("RETAIL_APP_ENV"),
		"RETAIL_JWT_SECRET":        os.Getenv("RETAIL_JWT_SECRET"),
		"RETAIL_DATABASE_PASSWORD": os.Getenv("RETAIL_DATABASE_PASSWORD"),
		"RETAIL_DATABASE_SSLMODE":  os.Getenv("RETAIL_DATABASE_SSLMODE"),
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("production requires jwt secret", func(t *testing.T) {
		os.Setenv("RETAIL_APP_ENV", "production")
		os.Unsetenv("RETAIL_JWT_SECRET")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production requires strong jwt secret", func(t *testing.T) {
		os.Setenv("RETAIL_APP_ENV", "production")
		os.Setenv("RETAIL_JWT_SECRET", "short")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("production requires database password and ssl", func(t *testing.T) {
		os.Setenv("RETAIL_APP_ENV", "production")
		os.Setenv("RETAIL_JWT_SECRET", "a-very-long-secret-key-of-32-chars!!")
		os.Unsetenv("RETAIL_DATABASE_PASSWORD")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")

		os.Setenv("RETAIL_DATABASE_PASSWORD", "secret")
		os.Setenv("RETAIL_DATABASE_SSLMODE", "disable")

		_, err = Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "retail",
		Password: "p@ss/word",
		DBName:   "retailpos",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "retailpos")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
