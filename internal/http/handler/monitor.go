package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"brandpulse/internal/auth"
	"brandpulse/internal/monitor"

	"github.com/lib/pq"
)

type SettingsStore interface {
	GetSettings(ctx context.Context, userID uint64) (*monitor.Settings, error)
	UpsertSettings(ctx context.Context, st *monitor.Settings) error
}

type MonitorHandler struct {
	Store SettingsStore
}

type settingsDTO struct {
	Platforms      []string   `json:"platforms"`
	Keywords       []string   `json:"keywords"`
	ScanFrequency  string     `json:"scan_frequency"`
	AlertFrequency string     `json:"alert_frequency"`
	IsActive       bool       `json:"is_active"`
	LastScanAt     *time.Time `json:"last_scan_at"`
}

func (h *MonitorHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	st, err := h.Store.GetSettings(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, settingsDTO{
		Platforms:      []string(st.Platforms),
		Keywords:       []string(st.Keywords),
		ScanFrequency:  st.ScanFrequency,
		AlertFrequency: st.AlertFrequency,
		IsActive:       st.IsActive,
		LastScanAt:     st.LastScanAt,
	})
}

func (h *MonitorHandler) Put(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req settingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if !validFrequency(req.ScanFrequency) || !validFrequency(req.AlertFrequency) {
		writeError(w, http.StatusBadRequest, "frequency must be daily or weekly")
		return
	}

	st := monitor.Settings{
		UserID:         uid,
		Platforms:      pq.StringArray(req.Platforms),
		Keywords:       pq.StringArray(req.Keywords),
		ScanFrequency:  req.ScanFrequency,
		AlertFrequency: req.AlertFrequency,
		IsActive:       req.IsActive,
	}
	if st.Platforms == nil {
		st.Platforms = pq.StringArray{}
	}
	if st.Keywords == nil {
		st.Keywords = pq.StringArray{}
	}

	if err := h.Store.UpsertSettings(r.Context(), &st); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validFrequency(f string) bool {
	return f == monitor.FrequencyDaily || f == monitor.FrequencyWeekly
}
