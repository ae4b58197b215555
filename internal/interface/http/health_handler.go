package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/pkg/response"
)

type HealthHandler struct {
	Ping   func(ctx context.Context) error
	Logger *logrus.Logger
}

func NewHealthHandler(ping func(ctx context.Context) error, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{Ping: ping, Logger: logger}
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("health check failed")
			}
			response.Error(c, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
