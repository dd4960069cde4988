package handler

import (
	"net/http"
	"time"

	"github.com/Miraines/bankr/api-service/internal/infra/health"
	"github.com/gin-gonic/gin"
)

// Health is served outside the envelope so that load balancers can read it directly.
func (h *Handler) Health(c *gin.Context) {
	rep := h.probe.Check(c.Request.Context())

	body := gin.H{
		"timestamp": rep.Timestamp.Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
	}
	for name, res := range rep.Checks {
		if res == health.StatusOK {
			body[name] = "connected"
		} else {
			body[name] = "disconnected"
		}
	}

	status := http.StatusOK
	body["status"] = "healthy"
	if !rep.Healthy() {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
	}
	c.JSON(status, body)
}
