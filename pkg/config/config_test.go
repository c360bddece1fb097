package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Empty(t, cfg.Events.KafkaBrokers)
	assert.Equal(t, "stock-ledger.events", cfg.Events.KafkaTopic)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EVENTS_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.KafkaBrokers)
}

// A malformed numeric env var keeps the default rather than dropping to 0.
func TestLoad_MalformedPortFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("HTTP_PORT", "80x80")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{
		Host: "db.internal", Port: 5432,
		User: "app", Password: "p@ss:word",
		DBName: "stock_ledger", SSLMode: "require",
	}
	dsn := c.ConnectionString()
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Credentials are URL-encoded.
	assert.NotContains(t, dsn, "p@ss:word@")

	c.DatabaseURL = "postgresql://user:pw@host:5432/db"
	assert.Equal(t, c.DatabaseURL, c.ConnectionString())
}
