package config

import (
	"fmt"
	"time"
)

// ClientConfig is the vault CLI's view of [StructuredConfig].
type ClientConfig struct {
	// BaseURL is the storage backend endpoint.
	BaseURL string
	// Token is the storage session capability.
	Token string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// RetryAttempts is the number of extra attempts for idempotent reads.
	RetryAttempts uint64
	// RetryDelay is the pause between read retries.
	RetryDelay time.Duration
	// Scope partitions master keys derived from the same signer.
	Scope string
	// Space overrides the storage area name; empty means the principal's
	// own address.
	Space string
	// MnemonicFile is the path to the BIP-39 mnemonic file.
	MnemonicFile string
	// Passphrase is the optional BIP-39 passphrase.
	Passphrase string
	// RepublishInterval defines how often the public key is re-published.
	RepublishInterval time.Duration
	// Version is the application version string.
	Version string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		BaseURL:           cfg.Client.BaseURL,
		Token:             cfg.Client.Token,
		RequestTimeout:    cfg.Client.RequestTimeout,
		RetryAttempts:     cfg.Client.RetryAttempts,
		RetryDelay:        cfg.Client.RetryDelay,
		Scope:             cfg.Client.Scope,
		Space:             cfg.Client.Space,
		MnemonicFile:      cfg.Client.MnemonicFile,
		Passphrase:        cfg.Client.Passphrase,
		RepublishInterval: cfg.Workers.RepublishInterval,
		Version:           cfg.App.Version,
	}

	if clientCfg.RequestTimeout == 0 {
		clientCfg.RequestTimeout = 15 * time.Second
	}
	if clientCfg.RetryDelay == 0 {
		clientCfg.RetryDelay = 500 * time.Millisecond
	}
	if clientCfg.Scope == "" {
		clientCfg.Scope = "default"
	}
	if clientCfg.RepublishInterval == 0 {
		clientCfg.RepublishInterval = 15 * time.Minute
	}

	return clientCfg, clientCfg.validate()
}
