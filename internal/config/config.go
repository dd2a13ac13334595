package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "portal:session:"
	}
	if cfg.Portal.SessionTTL <= 0 {
		cfg.Portal.SessionTTL = 1800
	}
	if cfg.Portal.DownloadsDir == "" {
		cfg.Portal.DownloadsDir = "./downloads"
	}
	if cfg.Auth.TokenCacheTTL <= 0 {
		cfg.Auth.TokenCacheTTL = 300
	}
	if cfg.Auth.RequiredRole == "" {
		cfg.Auth.RequiredRole = "hub:read"
	}
	if cfg.Hub.ClientTTL <= 0 {
		cfg.Hub.ClientTTL = 3600
	}
	if cfg.Hub.TimeoutSec <= 0 {
		cfg.Hub.TimeoutSec = 120
	}

	if cfg.Auth.URL == "" {
		return nil, fmt.Errorf("auth.url must be set")
	}
	if cfg.Auth.RolesKey == "" {
		return nil, fmt.Errorf("auth.roles_key must be set")
	}
	if cfg.Hub.BaseURL == "" {
		return nil, fmt.Errorf("hub.base_url must be set")
	}

	// Resolve secret refs up front
	if cfg.Auth.SecretRead != "" {
		secret, err := ResolveSecret(cfg.Auth.SecretRead)
		if err != nil {
			return nil, fmt.Errorf("auth.secret_read: %w", err)
		}
		cfg.Auth.SecretRead = secret
	}
	if cfg.Portal.JWTSecret != "" {
		secret, err := ResolveSecret(cfg.Portal.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("portal.jwt_secret: %w", err)
		}
		cfg.Portal.JWTSecret = secret
		log.Printf("portal jwt secret loaded: %v", cfg.Portal.JWTSecret != "")
	}

	return &cfg, nil
}

// Resolve "env:XXX" to actual secret.
func ResolveSecret(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("empty secret_ref")
	}
	if strings.HasPrefix(ref, "env:") {
		key := strings.TrimPrefix(ref, "env:")
		v := os.Getenv(key)
		if v == "" {
			return "", fmt.Errorf("env %s is empty", key)
		}
		return v, nil
	}
	// future extension: file:/path, vault:..., kms:...
	return ref, nil
}
