package infra

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cfgo/internal/domain"
)

// Config holds the application settings. Key material can be left out of
// the file and supplied via environment variables instead.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		CryptoFacilities struct {
			RestURL    string `yaml:"rest_url"`
			PublicKey  string `yaml:"public_key"`
			PrivateKey string `yaml:"private_key"`
		} `yaml:"crypto_facilities"`
	} `yaml:"api"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	cf := &c.API.CryptoFacilities

	if cf.RestURL != "" && !hasPrefix(cf.RestURL, "https://") {
		return &domain.ConfigError{Field: "rest_url", Err: errors.New("must be an https URL")}
	}

	if (cf.PublicKey == "") != (cf.PrivateKey == "") {
		return &domain.ConfigError{Field: "public_key", Err: errors.New("public and private key must be set together")}
	}
	if cf.PrivateKey != "" {
		if _, err := base64.StdEncoding.DecodeString(cf.PrivateKey); err != nil {
			return &domain.ConfigError{Field: "private_key", Err: err}
		}
	}

	return nil
}

// HasAPIKey reports whether credentials for authenticated calls are set.
func (c *Config) HasAPIKey() bool {
	return c.API.CryptoFacilities.PublicKey != "" && c.API.CryptoFacilities.PrivateKey != ""
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv replaces settings for which an environment variable is
// present, so key material can stay out of config files.
func overrideWithEnv(cfg *Config) {
	if u := os.Getenv("CF_REST_URL"); u != "" {
		cfg.API.CryptoFacilities.RestURL = u
	}
	if key := os.Getenv("CF_PUBLIC_KEY"); key != "" {
		cfg.API.CryptoFacilities.PublicKey = key
	}
	if secret := os.Getenv("CF_PRIVATE_KEY"); secret != "" {
		cfg.API.CryptoFacilities.PrivateKey = secret
	}
}
