package api

import (
	"time"

	"github.com/ericogr/battleships/internal/constants"
	"github.com/ericogr/battleships/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// GameEvents upgrades to a websocket that receives the game snapshot on
// connect and after every state change. Clients send nothing; the stream
// ends when the client disconnects or the game is removed.
func (h *GameHandler) GameEvents(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	v, ok := viewer(c)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already answered the client.
		logging.Warn("websocket upgrade failed", err, logging.Fields{constants.LogFieldGameID: s.ID})
		return
	}
	defer conn.Close()

	changes, stop := s.Watch()
	defer stop()

	// Drain client frames so pongs and close frames are processed.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func() bool {
		snap, err := s.Snapshot(v)
		if err != nil {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(snap); err != nil {
			logging.Debug("websocket write failed", logging.Fields{constants.LogFieldGameID: s.ID, "error": err.Error()})
			return false
		}
		return true
	}
	if !send() {
		return
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case _, open := <-changes:
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game removed"),
					time.Now().Add(wsWriteWait))
				return
			}
			if !send() {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}
