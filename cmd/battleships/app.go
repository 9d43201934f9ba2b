package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ericogr/battleships/internal/config"
	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/logging"
	"github.com/ericogr/battleships/internal/storage"
)

// loadConfigOrExit falls back to defaults only when the default config file
// is absent; an explicitly named file must exist.
func loadConfigOrExit() *config.LoadedConfig {
	path := os.Getenv(constants.EnvConfigPath)
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logging.Info("No config file found, using defaults", logging.Fields{constants.LogFieldPath: path})
			return config.Default()
		}
		logging.Fatal("Missing or invalid battleships configuration", err, logging.Fields{constants.LogFieldPath: path, "hint": "optional keys: board_size, save_name, storage{driver,path}, server.address, log_level, placement_attempts, autosave"})
	}
	return cfg
}

func createRepositoryOrExit(cfg *config.LoadedConfig) storage.Repository {
	path := cfg.StoragePath
	if p := os.Getenv(constants.EnvDBPath); p != "" {
		path = p
	}
	fields := logging.Fields{constants.LogFieldDriver: cfg.StorageDriver, constants.LogFieldPath: path}
	switch cfg.StorageDriver {
	case config.StorageDriverFile:
		if err := os.MkdirAll(path, 0o755); err != nil {
			logging.Fatal("Failed to create save directory", err, fields)
		}
		logging.Info("Using file storage", fields)
		return storage.NewFileRepository(path)
	default:
		db, err := storage.OpenAndMigrate(path)
		if err != nil {
			logging.Fatal("Failed to initialize database", err, fields)
		}
		logging.Info("Using sqlite storage", fields)
		return storage.NewSQLiteRepository(db)
	}
}
