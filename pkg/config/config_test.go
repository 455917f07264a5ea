package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizaciones-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Quotation.SequenceBackend)
	assert.Equal(t, "company", cfg.Quotation.NumberingScope)
	assert.Equal(t, "QUO", cfg.Quotation.DefaultPrefix)
	assert.Equal(t, "CAT", cfg.Quotation.CateringPrefix)
	assert.Equal(t, 30, cfg.Quotation.ValidityDays)
	assert.False(t, cfg.Quotation.StrictStatus)
	assert.False(t, cfg.Quotation.RejectDiscountOverSubtotal)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestLoad_DesdeVariablesDeEntorno(t *testing.T) {
	t.Setenv("SEQUENCE_BACKEND", "redis")
	t.Setenv("NUMBERING_SCOPE", "user")
	t.Setenv("QUOTATION_DEFAULT_PREFIX", "COT")
	t.Setenv("QUOTATION_VALIDITY_DAYS", "15")
	t.Setenv("QUOTATION_STRICT_STATUS", "true")
	t.Setenv("PRICING_REJECT_DISCOUNT_OVER_SUBTOTAL", "1")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Quotation.SequenceBackend)
	assert.Equal(t, "user", cfg.Quotation.NumberingScope)
	assert.Equal(t, "COT", cfg.Quotation.DefaultPrefix)
	assert.Equal(t, 15, cfg.Quotation.ValidityDays)
	assert.True(t, cfg.Quotation.StrictStatus)
	assert.True(t, cfg.Quotation.RejectDiscountOverSubtotal)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("SEQUENCE_BACKEND", "etcd")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_PrefijosIguales(t *testing.T) {
	t.Setenv("QUOTATION_DEFAULT_PREFIX", "QUO")
	t.Setenv("QUOTATION_CATERING_PREFIX", "quo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "cotizaciones", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/cotizaciones?sslmode=disable", c.DSN())
}
