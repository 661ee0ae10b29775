package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/api/dto"
)

// LogHandler exposes the flag-gated logger over HTTP
type LogHandler struct {
	logs   usecase.LogUseCase
	logger coreport.Logger
}

// NewLogHandler creates a new log handler instance
func NewLogHandler(logs usecase.LogUseCase, logger coreport.Logger) *LogHandler {
	return &LogHandler{
		logs:   logs,
		logger: logger,
	}
}

// Levels handles GET /levels
func (h *LogHandler) Levels(c *gin.Context) {
	console, err := h.logs.ConsoleLevel()
	if err != nil {
		h.respondError(c, "Error evaluating console level", err)
		return
	}

	resp := dto.LevelsResponse{
		ConsoleLevel:      console.String(),
		ConsoleLevelValue: int(console),
	}

	sdkLevel, err := h.logs.SDKLogLevel(entity.DefaultSDKLogLevel.String())
	switch {
	case err == nil:
		resp.SDKLogLevel = sdkLevel
		resp.SDKLogLevelValid = entity.IsValidRemoteLevel(sdkLevel)
	case errors.Is(err, errs.ErrConfiguration):
		// no SDK level flag configured
	default:
		h.respondError(c, "Error evaluating SDK log level", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Emit handles POST /logs
func (h *LogHandler) Emit(c *gin.Context) {
	var req dto.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Invalid request format",
		})
		return
	}

	level, ok := entity.ParseLogLevel(req.Level)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    errs.ErrorCode(errs.ErrInvalidRequest),
			Message: "Invalid log level: " + req.Level,
		})
		return
	}

	written, err := h.logs.Write(level, req.Values...)
	if err != nil {
		h.respondError(c, "Error emitting log statement", err)
		return
	}

	c.JSON(http.StatusAccepted, dto.LogResponse{
		Level:   level.String(),
		Emitted: written,
	})
}

func (h *LogHandler) respondError(c *gin.Context, msg string, err error) {
	statusCode := http.StatusInternalServerError
	if errors.Is(err, errs.ErrNotInitialized) {
		statusCode = http.StatusServiceUnavailable
	}

	h.logger.Error(msg, map[string]any{
		"error": err.Error(),
	})

	c.JSON(statusCode, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: msg,
	})
}
