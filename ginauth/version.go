package ginauth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authflow/version"
)

// VersionHandler reports the build metadata of the running binary. Mount
// it next to HealthHandler on an operational route group:
//
//	ops := r.Group("/ops")
//	ops.GET("/health", ginauth.HealthHandler("login-svc", version.GetShortVersion(), strat))
//	ops.GET("/version", ginauth.VersionHandler())
func VersionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetVersionInfo())
	}
}
