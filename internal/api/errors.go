package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/game"
	"github.com/ericogr/battleships/internal/logging"
	"github.com/ericogr/battleships/internal/service"
	"github.com/ericogr/battleships/internal/storage"
	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// Checked in order; the first sentinel matched by errors.Is wins.
var errorMappings = []errorMapping{
	{service.ErrGameNotFound, http.StatusNotFound, constants.ErrGameNotFound},
	{storage.ErrNotFound, http.StatusNotFound, constants.ErrSaveNotFound},
	{storage.ErrNoSavedGame, http.StatusNotFound, constants.ErrNoSavedGame},
	{service.ErrInvalidSlot, http.StatusBadRequest, constants.ErrSaveNotFound},
	{game.ErrMalformedRecord, http.StatusUnprocessableEntity, constants.ErrSavedGameCorrupt},
	{game.ErrInvalidDimensions, http.StatusBadRequest, constants.ErrInvalidBoardSize},
	{game.ErrInvalidName, http.StatusBadRequest, constants.ErrInvalidPlayerName},
	{game.ErrOutOfBounds, http.StatusBadRequest, constants.ErrShotOutOfBounds},
	{game.ErrAlreadyHit, http.StatusConflict, constants.ErrCellAlreadyHit},
	{game.ErrNoShotsLeft, http.StatusConflict, constants.ErrNoShotsLeft},
	{game.ErrWrongPhase, http.StatusConflict, constants.ErrWrongPhase},
	{service.ErrGameOver, http.StatusConflict, constants.ErrGameOver},
	{game.ErrPlacementUnsatisfiable, http.StatusUnprocessableEntity, constants.ErrPlacementFailed},
}

// writeError maps err to a status code and message. Unknown errors are
// logged and answered with 500 and the fallback message.
func writeError(c *gin.Context, err error, fallback string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{constants.JSONKeyError: m.message, constants.JSONKeyDetails: err.Error()})
			return
		}
	}
	logging.Error(fallback, err, logging.Fields{constants.LogFieldPath: c.FullPath()})
	c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
}
