package controllers

import (
	"net/http"
	"time"

	"github.com/agentdeck/agentdeck/pkg/dashboard"

	"github.com/gin-gonic/gin"
)

type submitTaskController struct{ client *dashboard.Client }

func NewSubmitTaskController(client *dashboard.Client) *submitTaskController {
	return &submitTaskController{client}
}

// Pointer fields so presence is enforced while empty strings stay legal;
// the backend decides what an empty name means.
type submitTaskReq struct {
	Name        *string `json:"name" binding:"required"`
	Description *string `json:"description" binding:"required"`
}

func (h *submitTaskController) Handle(c *gin.Context) {
	var req submitTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	started := time.Now()
	receipt, err := h.client.SubmitTask(c.Request.Context(), *req.Name, *req.Description)
	observe(commandSubmitTask, started, err)
	if err != nil {
		requestLogger(c).Error("submitTask failed", "err", err, "request_id", c.GetString("request_id"), "task", *req.Name)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, receipt)
}
