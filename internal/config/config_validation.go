// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants every consumer relies on. Consumer-specific requirements (the
// server needing a sign key, the client needing a mnemonic) are validated in
// the respective view constructors.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "", "postgres", "sqlite", "memory":
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.TokenSignKey == "" || cfg.TokenIssuer == "" ||
		cfg.TokenDuration == 0 || cfg.BootstrapSecret == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.DB.Driver != "memory" && cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.BaseURL == "" || cfg.RequestTimeout == 0 {
		return ErrInvalidClientConfigs
	}

	if cfg.MnemonicFile == "" {
		return ErrInvalidClientConfigs
	}

	return nil
}
