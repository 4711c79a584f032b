package controllers

import (
	"net/http"
	"time"

	"github.com/agentdeck/agentdeck/pkg/dashboard"

	"github.com/gin-gonic/gin"
)

type getAgentsController struct{ client *dashboard.Client }

func NewGetAgentsController(client *dashboard.Client) *getAgentsController {
	return &getAgentsController{client}
}

// Handle responds with the bare agent list; the backend's envelope is already
// unwrapped by the client.
func (h *getAgentsController) Handle(c *gin.Context) {
	started := time.Now()
	agents, err := h.client.Agents(c.Request.Context())
	observe(commandGetAgents, started, err)
	if err != nil {
		requestLogger(c).Error("getAgents failed", "err", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if agents == nil {
		agents = []dashboard.AgentState{}
	}
	c.JSON(http.StatusOK, agents)
}
