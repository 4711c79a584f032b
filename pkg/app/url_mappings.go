package app

import (
	"net/http"

	"github.com/agentdeck/agentdeck/internal/controllers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupMappings(app *Application) {
	v1 := app.Engine.Group("/v1/dashboard")
	{
		v1.GET("/health", controllers.NewGetHealthController(app.Dashboard).Handle)
		v1.GET("/snapshot", controllers.NewGetSnapshotController(app.Dashboard).Handle)
		v1.GET("/agents", controllers.NewGetAgentsController(app.Dashboard).Handle)
		v1.POST("/tasks", controllers.NewSubmitTaskController(app.Dashboard).Handle)
	}

	// Liveness of the bridge itself, independent of the backend.
	app.Engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	app.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
