package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/vault/api"
)

// VaultConfig holds Vault connection configuration
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"tokenFile"`
	Namespace string `mapstructure:"namespace"`

	// Secret paths
	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets defines where to find secrets in Vault. Each field is a full
// KVv2 read path, e.g. "secret/data/hiremate/gemini".
type VaultSecrets struct {
	GeminiKey   string `mapstructure:"geminiKey"`   // Path to the Gemini API key ("api_key" field)
	JWTSecret   string `mapstructure:"jwtSecret"`   // Path to the JWT signing secret ("secret" field)
	DatabaseURL string `mapstructure:"databaseUrl"` // Path to the database URL ("url" field)
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *api.Client
	config VaultConfig
}

// NewVaultClient creates a new Vault client from configuration
func NewVaultClient(config VaultConfig) (*VaultClient, error) {
	if !config.Enabled {
		return nil, nil
	}

	vaultConfig := api.DefaultConfig()
	if config.Address != "" {
		vaultConfig.Address = config.Address
	}

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if config.Namespace != "" {
		client.SetNamespace(config.Namespace)
	}

	token, err := resolveVaultToken(config)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	if _, err := client.Sys().Health(); err != nil {
		return nil, fmt.Errorf("failed to connect to vault: %w", err)
	}

	return &VaultClient{client: client, config: config}, nil
}

// resolveVaultToken resolves the Vault token from config or file
func resolveVaultToken(config VaultConfig) (string, error) {
	token := config.Token

	if token == "" && config.TokenFile != "" {
		tokenBytes, err := os.ReadFile(config.TokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		token = strings.TrimSpace(string(tokenBytes))
	}

	if token == "" {
		return "", fmt.Errorf("vault token is required when vault is enabled")
	}

	return token, nil
}

// GetStringSecret retrieves a string value from a KVv2 secret
func (vc *VaultClient) GetStringSecret(path, key string) (string, error) {
	if vc == nil {
		return "", fmt.Errorf("vault client not initialized")
	}

	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret from %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("secret not found at path: %s", path)
	}

	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("secret at %s is not in KVv2 format (missing 'data' field)", path)
	}

	value, ok := data[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	strValue, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("value for key '%s' is not a string in secret %s", key, path)
	}

	return strValue, nil
}

// loadVaultSecrets loads configured secrets from Vault and applies them to
// the config, overriding values from file and environment.
func (c *Config) loadVaultSecrets() error {
	client, err := NewVaultClient(c.Vault)
	if err != nil {
		return fmt.Errorf("failed to initialize vault client: %w", err)
	}
	if client == nil {
		return nil
	}

	if path := c.Vault.Secrets.GeminiKey; path != "" {
		geminiKey, err := client.GetStringSecret(path, "api_key")
		if err != nil {
			return fmt.Errorf("failed to load Gemini API key from vault: %w", err)
		}
		if geminiKey != "" {
			c.AI.APIKey = geminiKey
			if c.AI.Match.APIKey == "" {
				c.AI.Match.APIKey = geminiKey
			}
		}
	}

	if path := c.Vault.Secrets.JWTSecret; path != "" {
		secret, err := client.GetStringSecret(path, "secret")
		if err != nil {
			return fmt.Errorf("failed to load JWT secret from vault: %w", err)
		}
		if secret != "" {
			c.Auth.JWTSecret = secret
		}
	}

	if path := c.Vault.Secrets.DatabaseURL; path != "" {
		url, err := client.GetStringSecret(path, "url")
		if err != nil {
			return fmt.Errorf("failed to load database URL from vault: %w", err)
		}
		if url != "" {
			c.Database.URL = url
		}
	}

	return nil
}
