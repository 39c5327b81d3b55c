package config

import (
	"fmt"
	"time"
)

// ServerConfig is the storage backend server's view of [StructuredConfig].
type ServerConfig struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	HTTPAddress string
	// RequestTimeout bounds a single inbound request.
	RequestTimeout time.Duration
	// TokenSignKey signs and verifies session tokens.
	TokenSignKey string
	// TokenIssuer is the "iss" claim of issued tokens.
	TokenIssuer string
	// TokenDuration is the session token lifetime.
	TokenDuration time.Duration
	// BootstrapSecret authorizes session issuance.
	BootstrapSecret string
	// DB holds the object database settings.
	DB DBConfig
	// Version is the application version string.
	Version string
}

// GetServerConfig builds and validates the server's config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress:     cfg.Server.HTTPAddress,
		RequestTimeout:  cfg.Server.RequestTimeout,
		TokenSignKey:    cfg.App.TokenSignKey,
		TokenIssuer:     cfg.App.TokenIssuer,
		TokenDuration:   cfg.App.TokenDuration,
		BootstrapSecret: cfg.App.BootstrapSecret,
		DB:              cfg.Storage.DB,
		Version:         cfg.App.Version,
	}

	if serverCfg.HTTPAddress == "" {
		serverCfg.HTTPAddress = "localhost:8080"
	}
	if serverCfg.RequestTimeout == 0 {
		serverCfg.RequestTimeout = 30 * time.Second
	}
	if serverCfg.TokenIssuer == "" {
		serverCfg.TokenIssuer = "vaultstore"
	}
	if serverCfg.TokenDuration == 0 {
		serverCfg.TokenDuration = 24 * time.Hour
	}
	if serverCfg.DB.Driver == "" {
		serverCfg.DB.Driver = "memory"
	}

	return serverCfg, serverCfg.validate()
}
