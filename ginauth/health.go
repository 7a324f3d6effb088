package ginauth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authflow/observability"
)

// HealthHandler reports service health from the given checkers. Any
// component reporting down turns the response into a 503; degraded
// components (e.g. a strategy that has not reached its provider yet)
// keep a 200 with the degraded status visible in the body.
func HealthHandler(service, version string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(service, version)
		for _, checker := range checkers {
			sh.AddComponent(checker.CheckHealth(c.Request.Context()))
		}

		status := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, sh)
	}
}
