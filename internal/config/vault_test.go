package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVaultToken(t *testing.T) {
	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "config-token"})
		require.NoError(t, err)
		assert.Equal(t, "config-token", token)
	})

	t.Run("token from file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("file-token\n"), 0600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile})
		require.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("config token wins over file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("file-token"), 0600))

		token, err := resolveVaultToken(VaultConfig{Token: "config-token", TokenFile: tokenFile})
		require.NoError(t, err)
		assert.Equal(t, "config-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read vault token file")
	})

	t.Run("no token configured", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vault token is required")
	})
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestGetStringSecretNilClient(t *testing.T) {
	var client *VaultClient
	_, err := client.GetStringSecret("secret/data/hiremate/gemini", "api_key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vault client not initialized")
}

func TestLoadVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{}
	cfg.Vault.Enabled = false
	cfg.AI.APIKey = "existing-key"

	err := cfg.loadVaultSecrets()
	require.NoError(t, err)
	assert.Equal(t, "existing-key", cfg.AI.APIKey, "disabled vault must not touch configured values")
}
