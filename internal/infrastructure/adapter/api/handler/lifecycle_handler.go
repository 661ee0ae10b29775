package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/api/dto"
)

// LifecycleHandler reports on the flag client lifecycle
type LifecycleHandler struct {
	lifecycle usecase.ClientLifecycle
}

// NewLifecycleHandler creates a new lifecycle handler instance
func NewLifecycleHandler(lifecycle usecase.ClientLifecycle) *LifecycleHandler {
	return &LifecycleHandler{lifecycle: lifecycle}
}

// Health handles GET /health. It answers regardless of the lifecycle state.
func (h *LifecycleHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// Lifecycle handles GET /lifecycle
func (h *LifecycleHandler) Lifecycle(c *gin.Context) {
	state := h.lifecycle.State()
	resp := dto.LifecycleResponse{
		State:    state.String(),
		Ready:    state == entity.LifecycleReady,
		SDKLevel: h.lifecycle.Level().String(),
	}
	if err := h.lifecycle.Err(); err != nil {
		resp.Error = err.Error()
	}

	c.JSON(http.StatusOK, resp)
}
