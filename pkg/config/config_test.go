package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 168, cfg.JWT.ExpirationHours)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/nexus-test.db")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/nexus-test.db", cfg.DB.GetDSN())
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 168, cfg.JWT.ExpirationHours)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_PostgresDSN(t *testing.T) {
	c := DBConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
