package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Index handles GET /
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	SendJSONSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Relationship Dashboard API",
		"endpoints": map[string]string{
			"/status":                 "Most recent hangouts and each person's latest ratings",
			"/last-entries":           "Latest submission per person and recent memories",
			"/hangout-data":           "30-day trend series",
			"/dashboard":              "Status and trend as an HTML page",
			"/hangout":                "Get most recent hangout",
			"/minecraft":              "Get most recent Minecraft hangout",
			"/all":                    "Get both hangout and Minecraft data",
			"/test":                   "Preview the weekly digest without sending",
			"/send-email":             "Send the weekly digest",
			"/gift-verify":            "POST {password} to unlock the gift",
			"/gift-assets/{filename}": "Gift files",
			"/face-match":             "POST {faces} to match face embeddings",
			"/health":                 "Service health",
		},
	})
}

// HealthCheck handles GET /health
func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.redis == nil {
		SendJSONSuccess(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"redis":  "disabled",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Redis health check failed")
		SendJSONSuccess(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"redis":  "unavailable",
		})
		return
	}

	SendJSONSuccess(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"redis":  "connected",
	})
}

// CacheMetrics handles GET /cache/metrics
func (h *DashboardHandler) CacheMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.config.Cache.Enabled || h.cache == nil {
		SendJSONError(w, http.StatusServiceUnavailable, errors.New("cache is disabled"), "")
		return
	}

	SendJSONSuccess(w, http.StatusOK, h.cache.GetMetricsSnapshot())
}
