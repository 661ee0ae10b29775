package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/api/dto"
)

const (
	StatusLoading = "loading"
	StatusFailed  = "failed"
	StatusStopped = "stopped"
)

// ReadyGate holds requests until the flag client is ready. Until then every
// request gets 503 with a loading placeholder; a failed or stopped lifecycle
// is reported the same way with its own status.
func ReadyGate(lifecycle usecase.ClientLifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch lifecycle.State() {
		case entity.LifecycleReady:
			c.Next()
		case entity.LifecycleFailed:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: StatusFailed})
		case entity.LifecycleStopped:
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: StatusStopped})
		default:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: StatusLoading})
		}
	}
}
