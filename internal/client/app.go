package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkrylov/go-data-vault/internal/adapter"
	"github.com/dkrylov/go-data-vault/internal/config"
	"github.com/dkrylov/go-data-vault/internal/directory"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/signer"
	"github.com/dkrylov/go-data-vault/internal/tui"
	"github.com/dkrylov/go-data-vault/internal/vault"
	"github.com/dkrylov/go-data-vault/internal/workers"
)

type App struct {
	cfg    *config.ClientConfig
	vault  vault.Vault
	ui     *tui.TUI
	worker *workers.RepublishWorker
	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	mnemonic, err := os.ReadFile(cfg.MnemonicFile)
	if err != nil {
		return nil, fmt.Errorf("read mnemonic file: %w", err)
	}

	s, err := signer.NewMnemonicSigner(strings.TrimSpace(string(mnemonic)), cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	backend := adapter.NewHTTPStorageBackend(adapter.HTTPClientConfig{
		BaseURL:       cfg.BaseURL,
		Token:         cfg.Token,
		Timeout:       cfg.RequestTimeout,
		RetryAttempts: cfg.RetryAttempts,
		RetryDelay:    cfg.RetryDelay,
	}, log)

	v := vault.New(
		vault.Config{ScopeID: cfg.Scope, Space: cfg.Space},
		s,
		backend,
		directory.New(backend, log),
		log,
		vault.WithMetrics(vault.NewMetrics(prometheus.DefaultRegisterer)),
	)

	ui, err := tui.New(v, log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	return &App{
		cfg:    cfg,
		vault:  v,
		ui:     ui,
		worker: workers.NewRepublishWorker(v, cfg.RepublishInterval, log),
		logger: log,
	}, nil
}

// Vault exposes the wired vault for one-shot CLI commands.
func (a *App) Vault() vault.Vault {
	return a.vault
}

// Run unlocks the vault, keeps the identity published in the background, and
// hands control to the terminal UI until the user quits. The vault is locked
// on every exit path.
func (a *App) Run() error {
	ctx := context.Background()

	if err := a.vault.Unlock(ctx); err != nil {
		return fmt.Errorf("unlock vault: %w", err)
	}
	defer a.vault.Lock()

	a.worker.Run()
	defer a.worker.Stop()

	if err := a.ui.Run(ctx); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		return err
	}

	return nil
}
