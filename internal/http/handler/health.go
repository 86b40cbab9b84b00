package handler

import (
	"context"
	"net/http"
	"time"

	"brandpulse/internal/jobs"

	"gorm.io/gorm"
)

// workerLiveness is how stale the worker's last poll may be before the
// health check reports the job pipeline down. Several poll intervals, so a
// slow handler doesn't flap the check.
const workerLiveness = 30 * time.Second

type ExternalPinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB       *gorm.DB
	Worker   *jobs.Worker
	External ExternalPinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	services := map[string]string{
		"database":        "up",
		"external_apis":   "up",
		"background_jobs": "up",
	}
	status := "ok"

	if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		services["database"] = "down"
		status = "degraded"
	}

	if h.External != nil && h.External.Ping(ctx) != nil {
		services["external_apis"] = "down"
		status = "degraded"
	}

	if time.Since(h.Worker.LastPoll()) > workerLiveness {
		services["background_jobs"] = "down"
		status = "degraded"
	}

	code := http.StatusOK
	if services["database"] == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status":   status,
		"services": services,
	})
}
