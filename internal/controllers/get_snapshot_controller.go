package controllers

import (
	"net/http"
	"time"

	"github.com/agentdeck/agentdeck/pkg/dashboard"

	"github.com/gin-gonic/gin"
)

type getSnapshotController struct{ client *dashboard.Client }

func NewGetSnapshotController(client *dashboard.Client) *getSnapshotController {
	return &getSnapshotController{client}
}

func (h *getSnapshotController) Handle(c *gin.Context) {
	started := time.Now()
	snapshot, err := h.client.Snapshot(c.Request.Context())
	observe(commandGetSnapshot, started, err)
	if err != nil {
		requestLogger(c).Error("getSnapshot failed", "err", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
