package handlers

import (
	"net/http"

	"gymflow/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the latest store health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "checks": status})
}
