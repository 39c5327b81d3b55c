// Package tui implements the interactive terminal browser of the vault CLI.
// It renders the entry list, decrypts entries on demand for the detail view,
// and copies decrypted values to the clipboard.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/vault"
)

var ErrUserQuit = errors.New("user quit the program")

type TUI struct {
	vault vault.Vault
}

func New(v vault.Vault, _ *logger.Logger) (*TUI, error) {
	return &TUI{vault: v}, nil
}

// Run starts the browser and blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newBrowserModel(ctx, t.vault)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(browserModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}
