package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"docverify/internal/config"
)

// ErrMissingCredential is returned when no verification API key is configured.
var ErrMissingCredential = errors.New("verification API key missing")

// Provider resolves the API key that clients must present.
// It is consulted once at startup; the key is then injected into the HTTP layer.
type Provider interface {
	APIKey(ctx context.Context) (string, error)
}

// EnvProvider reads the API key from an environment variable.
type EnvProvider struct {
	Key string
}

// APIKey implements Provider.
func (p EnvProvider) APIKey(_ context.Context) (string, error) {
	v := strings.TrimSpace(os.Getenv(p.Key))
	if v == "" {
		return "", fmt.Errorf("%w: env %s is empty", ErrMissingCredential, p.Key)
	}
	return v, nil
}

// FileProvider reads the API key from a YAML file shaped like:
//
//	api_key: local-development-api-key
type FileProvider struct {
	Path string
}

type fileSecrets struct {
	APIKey string `yaml:"api_key"`
}

// APIKey implements Provider.
func (p FileProvider) APIKey(_ context.Context) (string, error) {
	if p.Path == "" {
		return "", fmt.Errorf("%w: secrets file path is empty", ErrMissingCredential)
	}
	data, err := os.ReadFile(filepath.Clean(p.Path))
	if err != nil {
		return "", fmt.Errorf("read secrets file: %w", err)
	}

	var s fileSecrets
	if err := yaml.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("parse secrets file: %w", err)
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return "", fmt.Errorf("%w: api_key not set in %s", ErrMissingCredential, p.Path)
	}
	return strings.TrimSpace(s.APIKey), nil
}

// New returns the Provider selected by cfg.Provider.
func New(cfg config.SecretsConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "env":
		key := cfg.APIKeyEnv
		if key == "" {
			key = "VERIFICATION_API_KEY"
		}
		return EnvProvider{Key: key}, nil
	case "file":
		return FileProvider{Path: cfg.File}, nil
	default:
		return nil, fmt.Errorf("unknown secrets provider: %s", cfg.Provider)
	}
}
