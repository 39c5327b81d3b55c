package http

import (
	"github.com/dkrylov/go-data-vault/internal/config"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/store"
	"github.com/dkrylov/go-data-vault/internal/utils"
)

type Handler struct {
	cfg  *config.ServerConfig
	repo store.ObjectRepository
	uuid *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(cfg *config.ServerConfig, repo store.ObjectRepository, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		cfg:    cfg,
		repo:   repo,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}
