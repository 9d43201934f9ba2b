package api

import (
	"net/http"

	"github.com/ericogr/battleships/internal/version"
	"github.com/gin-gonic/gin"
)

// Version reports which battleships server build is answering. The
// healthcheck binary probes this route, so it must stay cheap and never
// touch the game store.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
		"build":   version.String(),
	})
}
