// File: handlers/diagnostics.go
package handlers

import (
	"net/http"

	"roamify/models"
	"roamify/services/cache"
	"roamify/services/ratelimit"

	"github.com/gin-gonic/gin"
)

// DiagnosticsHandler surfaces cache and limiter internals for operators.
type DiagnosticsHandler struct {
	Cache   cache.Store[models.CityCostData]
	Limiter *ratelimit.Limiter
}

func NewDiagnosticsHandler(c cache.Store[models.CityCostData], l *ratelimit.Limiter) *DiagnosticsHandler {
	return &DiagnosticsHandler{Cache: c, Limiter: l}
}

func (h *DiagnosticsHandler) StatsHandler(c *gin.Context) {
	m := h.Cache.Metrics()
	c.JSON(http.StatusOK, gin.H{
		"cache": gin.H{
			"size":    h.Cache.Size(c.Request.Context()),
			"hits":    m.Hits,
			"misses":  m.Misses,
			"hitRate": m.HitRate,
		},
		"oracleLimiter": gin.H{
			"running": h.Limiter.Running(),
			"queued":  h.Limiter.Queued(),
			"breaker": h.Limiter.Breaker().State(),
		},
	})
}
