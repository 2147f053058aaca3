package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "8080")
		os.Setenv("BUREAU_BASEURL", "http://127.0.0.1:5001")
		defer os.Unsetenv("SERVER_PORT")
		defer os.Unsetenv("BUREAU_BASEURL")

		cfg, err := LoadConfig(".")
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)

		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.Equal(t, "data/customers.json", cfg.Directory.DataFile)

		assert.Equal(t, "http://127.0.0.1:5001", cfg.Bureau.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Bureau.Timeout)
		assert.Equal(t, 2, cfg.Bureau.MaxRetries)

		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
		assert.Equal(t, "@every 5m", cfg.Session.SweepSchedule)

		assert.Equal(t, "autoAccept", cfg.Negotiation.SuggestionPolicy)
		assert.Equal(t, 6, cfg.Negotiation.MinTenureMonths)
		assert.Equal(t, 84, cfg.Negotiation.MaxTenureMonths)

		assert.Equal(t, "10.99", cfg.Loan.AnnualInterestRate)
		assert.Equal(t, "generated_letters", cfg.Letter.OutputDir)

		assert.False(t, cfg.Events.Enabled)
		assert.Equal(t, "loan-origination", cfg.Events.ExchangeName)
	})

	t.Run("Environment variables override defaults", func(t *testing.T) {
		os.Setenv("SESSION_STORE", "redis")
		defer os.Unsetenv("SESSION_STORE")

		cfg, err := LoadConfig(".")
		assert.NoError(t, err)
		assert.Equal(t, "redis", cfg.Session.Store)
	})
}
