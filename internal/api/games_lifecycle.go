package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/gin-gonic/gin"
)

type CreateGamePayload struct {
	BoardSize int `json:"board_size"`
}

// CreateGame starts a new game in the placement phase. The body is optional.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGamePayload
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.BoardSize < 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBoardSize})
		return
	}
	s, err := h.manager.Create(req.BoardSize)
	if err != nil {
		writeError(c, err, constants.ErrFailedCreateGame)
		return
	}
	respondSnapshot(c, s, http.StatusCreated)
}

// GetGame returns the game as seen by the current player, or by ?player=1|2.
func (h *GameHandler) GetGame(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondSnapshot(c, s, http.StatusOK)
}

// DeleteGame ends a session. Its save slot is kept.
func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.manager.Remove(c.Param(constants.ParamGameID)); err != nil {
		writeError(c, err, constants.ErrFailedUpdateGame)
		return
	}
	c.Status(http.StatusNoContent)
}
