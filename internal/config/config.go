// Package config handles loading and validation of service configuration.
// Supports both development (env vars, .env file) and production (Secret
// Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
)

// Config holds all service configuration.
// Environment determines whether secrets load from env vars (development)
// or Secret Manager (production).
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"
	LogLevel    string // "debug", "info", "warn", "error"

	// GCP settings (required in production)
	GCPProject string
	StoreID    string

	// Store-specific configuration (loaded from secrets)
	Store StoreConfig
}

// StoreConfig contains store-specific settings.
// In production, this is loaded from Secret Manager as JSON.
// In development, loaded from individual env vars or CONFIG_FILE.
type StoreConfig struct {
	// Domain is the myshopify domain, e.g. "example.myshopify.com".
	Domain string `json:"store_domain"`
	// AccessToken is the storefront (public) API credential. Its value is
	// attached to upstream requests and never logged.
	AccessToken string `json:"access_token"`
	// APIVersion pins the date-based Storefront API version.
	APIVersion string `json:"api_version,omitempty"`

	// Name and LogoURL back the /shop fallback when the upstream is down.
	Name    string `json:"store_name,omitempty"`
	LogoURL string `json:"store_logo_url,omitempty"`
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set) → ENV vars / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	// If CONFIG_FILE is set, load everything from the JSON file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		GCPProject:  os.Getenv("GCP_PROJECT"),
		StoreID:     os.Getenv("STORE_ID"),
	}

	var err error
	if cfg.Environment == "production" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		if cfg.StoreID == "" {
			return nil, fmt.Errorf("STORE_ID required in production environment")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		err = cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading store config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile reads all configuration from a JSON file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig struct {
		Port        string      `json:"port"`
		Environment string      `json:"environment"`
		LogLevel    string      `json:"log_level"`
		StoreID     string      `json:"store_id"`
		Store       StoreConfig `json:"store"`
	}

	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := &Config{
		Port:        withDefault(fileConfig.Port, "8080"),
		Environment: withDefault(fileConfig.Environment, "development"),
		LogLevel:    withDefault(fileConfig.LogLevel, "info"),
		StoreID:     fileConfig.StoreID,
		Store:       fileConfig.Store,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// loadFromSecretManager fetches store config from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{store_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.StoreID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Store); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	return nil
}

// loadFromEnv reads store config from individual environment variables.
// A .env file in the working directory is merged in first, so local
// development needs no exported variables.
func (c *Config) loadFromEnv() error {
	// Missing .env is fine; exported vars still apply.
	_ = godotenv.Load()

	c.Store = StoreConfig{
		Domain:      os.Getenv("SHOPIFY_STORE_DOMAIN"),
		AccessToken: os.Getenv("SHOPIFY_STOREFRONT_ACCESS_TOKEN"),
		APIVersion:  os.Getenv("SHOPIFY_API_VERSION"),
		Name:        os.Getenv("STORE_NAME"),
		LogoURL:     os.Getenv("STORE_LOGO_URL"),
	}
	return nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.Store.Domain == "" {
		return fmt.Errorf("store_domain is required")
	}
	if strings.Contains(c.Store.Domain, "://") {
		return fmt.Errorf("store_domain must be a bare domain, not a URL")
	}
	if c.Store.AccessToken == "" {
		return fmt.Errorf("access_token is required")
	}
	return nil
}

// FallbackShopName returns the configured store name, defaulting to "Store"
// the way the /shop fallback expects.
func (c *Config) FallbackShopName() string {
	return withDefault(c.Store.Name, "Store")
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
