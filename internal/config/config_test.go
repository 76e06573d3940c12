package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.SeedData)
	assert.Equal(t, 12*time.Hour, cfg.JWT.AccessExpiration)
	assert.True(t, cfg.Payroll.OvertimeMultiplier.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, cfg.Payroll.LateDeductionPerMinute.IsZero())
	assert.Equal(t, 160, cfg.Bonus.MonthlyHours)
	assert.Equal(t, "employee123", cfg.Employee.DefaultPassword)
	assert.True(t, cfg.Employee.DefaultHourlyRate.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, time.Hour, cfg.Cron.Interval)
	assert.Equal(t, 2*time.Hour, cfg.Cron.StaleShiftGrace)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "staff")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PAYROLL_LATE_DEDUCTION_PER_MINUTE", "0.25")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/staff?sslmode=disable", cfg.DatabaseURL())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "0.25", cfg.Payroll.LateDeductionPerMinute.String())
}

func TestFromEnvInvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"APP_PORT":                    "eighty",
		"SEED_DATA":                   "maybe",
		"JWT_ACCESS_EXPIRATION_TIME":  "soon",
		"PAYROLL_OVERTIME_MULTIPLIER": "x1.5",
		"CRON_INTERVAL":               "hourly",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := fromEnv()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		t.Setenv("JWT_SECRET_KEY", "secret")
		cfg, err := fromEnv()
		require.NoError(t, err)
		return cfg
	}

	cfg := valid()
	cfg.JWT.Secret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET_KEY")

	cfg = valid()
	cfg.Storage.Driver = DriverPostgres
	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")

	cfg = valid()
	cfg.Storage.Driver = "redis"
	assert.ErrorContains(t, cfg.Validate(), "STORAGE_DRIVER")

	cfg = valid()
	cfg.App.Timezone = "Mars/Olympus"
	assert.ErrorContains(t, cfg.Validate(), "APP_TIMEZONE")
}
