package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger verifies that the backing store is reachable.
type Pinger interface {
	Ping() error
}

// HealthController reports service and database status.
type HealthController struct {
	db      Pinger
	version string
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbStatus,
		"version":  h.version,
		"database": dbStatus,
	})
}
