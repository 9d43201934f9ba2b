package main

import (
	"github.com/ericogr/battleships/internal/api"
	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/logging"
	"github.com/ericogr/battleships/internal/service"
	"github.com/ericogr/battleships/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := loadConfigOrExit()
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	logging.Info("Starting battleships", logging.Fields{constants.LogFieldVersion: version.String()})

	repo := createRepositoryOrExit(cfg)
	manager := service.NewManager(repo, service.Options{
		BoardSize:         cfg.BoardSize,
		MaxBoardSize:      cfg.MaxBoardSize,
		SaveName:          cfg.SaveName,
		Autosave:          cfg.Autosave,
		PlacementAttempts: cfg.PlacementAttempts,
	})
	handler := api.NewGameHandler(manager)

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
