package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/config"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_USER", "foodgram")
	t.Setenv("DB_PASSWORD", "dbpass")
	t.Setenv("DB_NAME", "foodgram")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "foodgram", cfg.DBUser)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfigFromSecrets(t *testing.T) {
	secretsDir := t.TempDir()
	for name, value := range map[string]string{
		"jwt_secret":  "from-secret",
		"db_user":     "secret-user",
		"db_password": "secret-pass",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, name), []byte(value+"\n"), 0o600))
	}

	t.Setenv("APP_ENV", "test")
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
	assert.Equal(t, "secret-user", cfg.DBUser)
	assert.Equal(t, "secret-pass", cfg.DBPassword)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	assert.Equal(t, config.Production, config.GetEnvironment())

	t.Setenv("APP_ENV", "ci")
	assert.Equal(t, config.CI, config.GetEnvironment())

	t.Setenv("APP_ENV", "")
	assert.Equal(t, config.Development, config.GetEnvironment())
}
