package api

import (
	"net/http"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/gin-gonic/gin"
)

// GetSave reports whether the named slot holds a saved game.
func (h *GameHandler) GetSave(c *gin.Context) {
	ok, err := h.manager.HasSave(c.Param(constants.ParamSaveName))
	if err != nil {
		writeError(c, err, constants.ErrFailedLoadGame)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyExists: ok})
}

// LoadSave restores the named slot into a new session.
func (h *GameHandler) LoadSave(c *gin.Context) {
	s, err := h.manager.LoadSaved(c.Param(constants.ParamSaveName))
	if err != nil {
		writeError(c, err, constants.ErrFailedLoadGame)
		return
	}
	respondSnapshot(c, s, http.StatusCreated)
}

// DeleteSave empties the named slot.
func (h *GameHandler) DeleteSave(c *gin.Context) {
	if err := h.manager.DeleteSave(c.Param(constants.ParamSaveName)); err != nil {
		writeError(c, err, constants.ErrFailedDeleteSave)
		return
	}
	c.Status(http.StatusNoContent)
}
