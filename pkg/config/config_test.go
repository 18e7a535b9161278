package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.False(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "*", cfg.HTTP.CORSOrigins)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.Equal(t, 5, cfg.DB.ConnectTimeout)
	// Por defecto se conserva el comportamiento observado: sin compensatorios ni reversión al borrar.
	assert.False(t, cfg.Ledger.CompensatingMovements)
	assert.False(t, cfg.Ledger.ReverseOnDelete)
}

func TestFromViper_ValoresDesdeEntorno(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("LEDGER_COMPENSATING_MOVEMENTS", "true")
	v.Set("DOCUMENTS_REVERSE_ON_DELETE", true)
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Ledger.CompensatingMovements)
	assert.True(t, cfg.Ledger.ReverseOnDelete)
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "sqlite")
	_, err := fromViper(v)
	require.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "facturacion", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/facturacion?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
