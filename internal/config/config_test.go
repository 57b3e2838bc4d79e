package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "dev")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/chef?sslmode=disable")
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("STRIPE_KEY", "sk_test_x")
	t.Setenv("SITE_DOMAIN", "http://localhost:5173/")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.SiteDomain)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, CounterBackendPostgres, cfg.CounterBackend)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "postgres://u:p@localhost:5432/chef?sslmode=disable", cfg.DSN())
}

func TestLoad_MissingAuthSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTH_SECRET", "")

	_, err := Load()
	assert.EqualError(t, err, "AUTH_SECRET is required")
}

func TestLoad_InvalidCounterBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("COUNTER_BACKEND", "memory")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_PaymentCurrency(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"eur", "EUR", false},
		{"jpy has no minor unit", "jpy", true},
		{"kwd has three decimals", "kwd", true},
		{"not a code", "dollars", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("PAYMENT_CURRENCY", tc.value)

			cfg, err := Load()
			if tc.wantErr {
				assert.ErrorContains(t, err, "PAYMENT_CURRENCY")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "eur", cfg.PaymentCurrency)
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("GATEWAY_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_FromParts(t *testing.T) {
	cfg := Config{
		PostgresHost: "db", PostgresPort: 5433, PostgresUser: "chef",
		PostgresPassword: "pw", PostgresDB: "bazaar", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=chef password=pw dbname=bazaar sslmode=disable", cfg.DSN())
}
