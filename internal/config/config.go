package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ericogr/battleships/internal/game"
	"github.com/ericogr/battleships/internal/keys"
)

// Storage drivers accepted under storage.driver.
const (
	StorageDriverSQLite = "sqlite"
	StorageDriverFile   = "file"
)

// Defaults applied to keys missing from the config file.
const (
	DefaultBoardSize     = 6
	DefaultMaxBoardSize  = 26
	DefaultSaveName      = "savedgame"
	DefaultServerAddress = ":8080"
	DefaultSQLitePath    = "./data/battleships.db"
	DefaultSaveDir       = "./data/saves"
)

type storageConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path"`
}

type serverConfig struct {
	Address string `json:"address"`
}

type rawConfig struct {
	BoardSize         *int           `json:"board_size"`
	MaxBoardSize      *int           `json:"max_board_size"`
	SaveName          string         `json:"save_name"`
	Storage           *storageConfig `json:"storage"`
	Server            *serverConfig  `json:"server"`
	LogLevel          string         `json:"log_level"`
	PlacementAttempts int            `json:"placement_attempts"`
	Autosave          *bool          `json:"autosave"`
}

// LoadedConfig holds the validated settings the server runs with.
type LoadedConfig struct {
	BoardSize         int
	MaxBoardSize      int
	SaveName          string
	StorageDriver     string
	StoragePath       string
	ServerAddress     string
	LogLevel          string
	PlacementAttempts int
	Autosave          bool
}

// Default returns the settings used when no config file is present.
func Default() *LoadedConfig {
	return &LoadedConfig{
		BoardSize:     DefaultBoardSize,
		MaxBoardSize:  DefaultMaxBoardSize,
		SaveName:      DefaultSaveName,
		StorageDriver: StorageDriverSQLite,
		StoragePath:   DefaultSQLitePath,
		ServerAddress: DefaultServerAddress,
		LogLevel:      "info",
		Autosave:      true,
	}
}

// LoadConfig reads the configuration file at path. Missing keys take their
// defaults; present keys are validated.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	if rc.BoardSize != nil {
		if *rc.BoardSize < game.MinDimension {
			return nil, fmt.Errorf("config file %s: board_size must be at least %d, got %d", path, game.MinDimension, *rc.BoardSize)
		}
		cfg.BoardSize = *rc.BoardSize
	}
	if rc.MaxBoardSize != nil {
		if *rc.MaxBoardSize < game.MinDimension {
			return nil, fmt.Errorf("config file %s: max_board_size must be at least %d, got %d", path, game.MinDimension, *rc.MaxBoardSize)
		}
		cfg.MaxBoardSize = *rc.MaxBoardSize
	}
	if cfg.BoardSize > cfg.MaxBoardSize {
		return nil, fmt.Errorf("config file %s: board_size %d exceeds max_board_size %d", path, cfg.BoardSize, cfg.MaxBoardSize)
	}
	if strings.TrimSpace(rc.SaveName) != "" {
		if strings.Trim(keys.SlotKey(rc.SaveName), "_-") == "" {
			return nil, fmt.Errorf("config file %s: invalid save_name %q", path, rc.SaveName)
		}
		cfg.SaveName = strings.TrimSpace(rc.SaveName)
	}
	if rc.Storage != nil {
		switch strings.ToLower(strings.TrimSpace(rc.Storage.Driver)) {
		case "", StorageDriverSQLite:
		case StorageDriverFile:
			cfg.StorageDriver = StorageDriverFile
			cfg.StoragePath = DefaultSaveDir
		default:
			return nil, fmt.Errorf("config file %s: unknown storage.driver %q (use %q or %q)", path, rc.Storage.Driver, StorageDriverSQLite, StorageDriverFile)
		}
		if p := strings.TrimSpace(rc.Storage.Path); p != "" {
			cfg.StoragePath = p
		}
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(rc.LogLevel))
	}
	if rc.PlacementAttempts < 0 {
		return nil, fmt.Errorf("config file %s: placement_attempts cannot be negative", path)
	}
	// 0 keeps the engine's own attempt cap.
	cfg.PlacementAttempts = rc.PlacementAttempts
	if rc.Autosave != nil {
		cfg.Autosave = *rc.Autosave
	}
	return cfg, nil
}
