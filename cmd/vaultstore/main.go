package main

import (
	"context"
	"fmt"

	"github.com/dkrylov/go-data-vault/internal/config"
	handlerhttp "github.com/dkrylov/go-data-vault/internal/handler/http"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/server"
	"github.com/dkrylov/go-data-vault/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vaultstore")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildVersion
	}

	log.Debug().Str("address", cfg.HTTPAddress).Str("driver", cfg.DB.Driver).Msg("received configs")

	repo, err := newObjectRepository(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating object repository")
	}

	handler := handlerhttp.NewHandler(cfg, repo, log)

	srv, err := server.NewServer(handler, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func newObjectRepository(cfg *config.ServerConfig, log *logger.Logger) (store.ObjectRepository, error) {
	ctx := context.Background()

	switch cfg.DB.Driver {
	case "postgres":
		db, err := store.NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err = db.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return store.NewObjectRepository(db, log), nil

	case "sqlite":
		db, err := store.NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
		if err = db.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return store.NewObjectRepository(db, log), nil

	case "memory", "":
		return store.NewMemoryObjectRepository(), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
