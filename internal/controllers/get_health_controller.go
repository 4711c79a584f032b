package controllers

import (
	"net/http"
	"time"

	"github.com/agentdeck/agentdeck/pkg/dashboard"

	"github.com/gin-gonic/gin"
)

type getHealthController struct{ client *dashboard.Client }

func NewGetHealthController(client *dashboard.Client) *getHealthController {
	return &getHealthController{client}
}

func (h *getHealthController) Handle(c *gin.Context) {
	started := time.Now()
	health, err := h.client.Health(c.Request.Context())
	observe(commandGetHealth, started, err)
	if err != nil {
		requestLogger(c).Error("getHealth failed", "err", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, health)
}
