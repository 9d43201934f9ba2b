package api

import (
	"net/http"
	"strconv"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	manager  *service.Manager
	upgrader websocket.Upgrader
}

// NewGameHandler creates a GameHandler serving the sessions of manager.
func NewGameHandler(manager *service.Manager) *GameHandler {
	return &GameHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(router *gin.Engine, h *GameHandler) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)

		apiRoutes.POST(constants.RouteGames, h.CreateGame)
		apiRoutes.GET(constants.RouteGameByID, h.GetGame)
		apiRoutes.DELETE(constants.RouteGameByID, h.DeleteGame)
		apiRoutes.POST(constants.RouteGameRandom, h.Randomize)
		apiRoutes.POST(constants.RouteGameSubmit, h.SubmitBoard)
		apiRoutes.POST(constants.RouteGameShots, h.FireShot)
		apiRoutes.POST(constants.RouteGameEndTurn, h.EndTurn)
		apiRoutes.POST(constants.RouteGameSave, h.SaveGame)
		apiRoutes.GET(constants.RouteGameEvents, h.GameEvents)

		apiRoutes.GET(constants.RouteSaveByName, h.GetSave)
		apiRoutes.POST(constants.RouteSaveLoad, h.LoadSave)
		apiRoutes.DELETE(constants.RouteSaveByName, h.DeleteSave)
	}
}

// session resolves the :gameID param, writing the error response itself.
func (h *GameHandler) session(c *gin.Context) (*service.Session, bool) {
	id := c.Param(constants.ParamGameID)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return nil, false
	}
	s, err := h.manager.Get(id)
	if err != nil {
		writeError(c, err, constants.ErrGameNotFound)
		return nil, false
	}
	return s, true
}

// viewer reads the optional ?player=1|2 query. 0 means the current player.
func viewer(c *gin.Context) (int, bool) {
	q := c.Query(constants.QueryViewerPlayer)
	if q == "" {
		return 0, true
	}
	n, err := strconv.Atoi(q)
	if err != nil || (n != 1 && n != 2) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidViewerPlayer})
		return 0, false
	}
	return n, true
}

// respondSnapshot answers with the session as seen by the requested viewer.
func respondSnapshot(c *gin.Context, s *service.Session, status int) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	snap, err := s.Snapshot(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidViewerPlayer})
		return
	}
	c.JSON(status, snap)
}
