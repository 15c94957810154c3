package health_controller

import (
	"context"
	"net/http"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
)

// Check pings one dependency.
type Check func(ctx context.Context) error

// Healthz reports that the process is serving.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
}

// Readyz runs every check with a short deadline and answers 503 listing the
// failures.
func Readyz(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		ready := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				ready = false
				continue
			}
			status[name] = "ok"
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponseWithData(c, "not ready", status))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ready", status))
	}
}
