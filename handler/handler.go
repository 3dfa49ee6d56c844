package handler

import (
	"context"
	"time"

	"relationship-dashboard/cache"
	"relationship-dashboard/config"
	"relationship-dashboard/digest"
	"relationship-dashboard/faces"
	"relationship-dashboard/model"

	"github.com/go-redis/redis/v8"
)

// Dashboard is the read and send side of the digest service.
type Dashboard interface {
	Status(ctx context.Context) (model.Status, error)
	LastEntries(ctx context.Context) (model.LastEntries, error)
	Trend(ctx context.Context) (model.Trend, error)
	Preview(ctx context.Context) (digest.WeeklyReport, string, error)
	StatusPage(ctx context.Context) (string, error)
	SendWeekly(ctx context.Context) (digest.SendResult, error)
}

// DashboardHandler serves the dashboard API
type DashboardHandler struct {
	service Dashboard
	redis   *redis.Client
	cache   *cache.Cache
	matcher *faces.Matcher
	config  config.Config
}

// NewDashboardHandler creates a new dashboard handler. redis and cache may be
// nil when disabled.
func NewDashboardHandler(service Dashboard, redisClient *redis.Client, cacheClient *cache.Cache, matcher *faces.Matcher, cfg config.Config) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		redis:   redisClient,
		cache:   cacheClient,
		matcher: matcher,
		config:  cfg,
	}
}

// requestTimeout bounds a request that reads the sheet.
func (h *DashboardHandler) requestTimeout() time.Duration {
	if h.config.Sheet.RequestTimeout > 0 {
		return time.Duration(h.config.Sheet.RequestTimeout) * time.Second
	}
	return 20 * time.Second
}
