package api

import (
	"net/http"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/gin-gonic/gin"
)

type SubmitBoardPayload struct {
	Name string `json:"name"`
}

type ShotPayload struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// Randomize rerolls the fleet on the current player's board.
func (h *GameHandler) Randomize(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Randomize(); err != nil {
		writeError(c, err, constants.ErrFailedUpdateGame)
		return
	}
	respondSnapshot(c, s, http.StatusOK)
}

// SubmitBoard names the current player and passes the turn.
func (h *GameHandler) SubmitBoard(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req SubmitBoardPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := s.SubmitBoard(req.Name); err != nil {
		writeError(c, err, constants.ErrFailedUpdateGame)
		return
	}
	respondSnapshot(c, s, http.StatusOK)
}

// FireShot fires one of the current player's shots.
func (h *GameHandler) FireShot(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ShotPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.X == nil || req.Y == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := s.FireShot(*req.X, *req.Y)
	if err != nil {
		writeError(c, err, constants.ErrFailedUpdateGame)
		return
	}
	c.JSON(http.StatusOK, res)
}

// EndTurn passes the turn to the other player.
func (h *GameHandler) EndTurn(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.EndTurn(); err != nil {
		writeError(c, err, constants.ErrFailedUpdateGame)
		return
	}
	respondSnapshot(c, s, http.StatusOK)
}

// SaveGame writes the game to its save slot.
func (h *GameHandler) SaveGame(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Save(); err != nil {
		writeError(c, err, constants.ErrFailedSaveGame)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Game saved", "slot": s.SaveName()})
}
