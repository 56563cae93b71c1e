package infra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cfgo/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

const validConfig = `
app:
  name: cfgo
  version: "1.0"
api:
  crypto_facilities:
    rest_url: https://www.cryptofacilities.com/derivatives
    public_key: public-id
    private_key: dmVyeSBzZWNyZXQga2V5IG1hdGVyaWFsIDAxMjM0NTY3ODk=
logging:
  level: debug
`

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if cfg.API.CryptoFacilities.RestURL != "https://www.cryptofacilities.com/derivatives" {
			t.Errorf("RestURL = %q", cfg.API.CryptoFacilities.RestURL)
		}
		if !cfg.HasAPIKey() {
			t.Error("HasAPIKey should be true when both keys are set")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Level = %q, want debug", cfg.Logging.Level)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected an error for a missing file")
		}
	})

	t.Run("env overrides keys", func(t *testing.T) {
		t.Setenv("CF_PUBLIC_KEY", "env-public")
		t.Setenv("CF_PRIVATE_KEY", "c2VjcmV0LWZyb20tZW52")

		cfg, err := LoadConfig(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if cfg.API.CryptoFacilities.PublicKey != "env-public" {
			t.Errorf("PublicKey = %q, want the env value", cfg.API.CryptoFacilities.PublicKey)
		}
		if cfg.API.CryptoFacilities.PrivateKey != "c2VjcmV0LWZyb20tZW52" {
			t.Errorf("PrivateKey = %q, want the env value", cfg.API.CryptoFacilities.PrivateKey)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("rejects non-https URL", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `
api:
  crypto_facilities:
    rest_url: http://insecure.example.com
`))
		var cfgErr *domain.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("Expected ConfigError, got %v", err)
		}
	})

	t.Run("rejects half a key pair", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `
api:
  crypto_facilities:
    rest_url: https://www.cryptofacilities.com/derivatives
    public_key: public-id
`))
		if err == nil {
			t.Error("Expected an error when only the public key is set")
		}
	})

	t.Run("rejects non-base64 private key", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, `
api:
  crypto_facilities:
    rest_url: https://www.cryptofacilities.com/derivatives
    public_key: public-id
    private_key: "not base64!!!"
`))
		var cfgErr *domain.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("Expected ConfigError, got %v", err)
		}
	})

	t.Run("no keys is valid for public data", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
api:
  crypto_facilities:
    rest_url: https://www.cryptofacilities.com/derivatives
`))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.HasAPIKey() {
			t.Error("HasAPIKey should be false without credentials")
		}
	})
}
