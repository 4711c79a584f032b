package controllers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

func requestLogger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
