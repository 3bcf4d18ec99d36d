package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/schedulr/internal/health"
	"github.com/charlesng35/schedulr/pkg/response"
)

// Health reports readiness based on the registered dependency probes. A failing probe
// answers 503 with the full report so operators can see which dependency is down.
func Health(probes *health.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if probes == nil {
			response.Success(c, http.StatusOK, health.Report{Success: true, Status: health.StatusUp, Checks: []health.Result{}})
			return
		}

		report := probes.Evaluate(requestContext(c))
		if !report.Success {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Success: false,
				Data:    report,
				Error: &response.ErrorInfo{
					Code:    "SERVICE_UNAVAILABLE",
					Message: "one or more dependencies are unavailable",
					Kind:    "internal",
				},
			})
			return
		}
		response.Success(c, http.StatusOK, report)
	}
}

// Liveness answers as long as the process can serve requests.
func Liveness(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
