package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3002", cfg.Port)
	assert.Equal(t, "./moobile.db", cfg.DBPath)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, "https://api-m.sandbox.paypal.com", cfg.PayPalAPIBase)
	assert.Len(t, cfg.JWTSecret, 32, "a random secret is generated when none is set")
}

func TestLoadConfigYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: \"4000\"\ndb_path: /tmp/other.db\npaypal_client_id: yaml-client\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, "yaml-client", cfg.PayPalClientID)
}

func TestLoadConfigEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"4000\"\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "5000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
}

func TestLoadConfigInvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3002", cfg.Port)
}

func TestJWTSecretFromEnv(t *testing.T) {
	t.Run("base64 secret", func(t *testing.T) {
		raw := make([]byte, 32)
		for i := range raw {
			raw[i] = byte(i)
		}
		t.Setenv("JWT_SECRET_KEY", base64.StdEncoding.EncodeToString(raw))

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, raw, cfg.JWTSecret)
	})

	t.Run("raw secret of sufficient length", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "this-is-a-raw-secret-of-32-bytes!")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []byte("this-is-a-raw-secret-of-32-bytes!"), cfg.JWTSecret)
	})

	t.Run("short secret is replaced", func(t *testing.T) {
		t.Setenv("JWT_SECRET_KEY", "short")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.NotEqual(t, []byte("short"), cfg.JWTSecret)
		assert.Len(t, cfg.JWTSecret, 32)
	})
}
