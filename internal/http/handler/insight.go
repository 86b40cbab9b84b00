package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"brandpulse/internal/auth"
	"brandpulse/internal/insights"

	"github.com/go-chi/chi/v5"
)

type InsightStore interface {
	List(ctx context.Context, userID uint64, typ string, limit int) ([]insights.Insight, error)
	MarkRead(ctx context.Context, userID, id uint64) error
	Feedback(ctx context.Context, userID, id uint64, rating int) error
}

type InsightHandler struct {
	Store InsightStore
}

type insightDTO struct {
	ID            uint64    `json:"id"`
	Type          string    `json:"type"`
	Category      string    `json:"category,omitempty"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ActionItems   []string  `json:"action_items"`
	PriorityScore int       `json:"priority_score"`
	GeneratedAt   time.Time `json:"generated_at"`
	IsRead        bool      `json:"is_read"`
	UserFeedback  *int      `json:"user_feedback"`
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	pathUID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if pathUID != uid {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	typ := strings.TrimSpace(r.URL.Query().Get("type"))

	limit := 20
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	rows, err := h.Store.List(r.Context(), uid, typ, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]insightDTO, 0, len(rows))
	for _, ins := range rows {
		out = append(out, insightDTO{
			ID:            ins.ID,
			Type:          ins.Type,
			Category:      ins.Category,
			Title:         ins.Title,
			Content:       ins.Content,
			ActionItems:   []string(ins.ActionItems),
			PriorityScore: ins.PriorityScore,
			GeneratedAt:   ins.GeneratedAt,
			IsRead:        ins.IsRead,
			UserFeedback:  ins.UserFeedback,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type feedbackReq struct {
	Rating int `json:"rating"`
}

func (h *InsightHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	err = h.Store.Feedback(r.Context(), uid, id, req.Rating)
	switch {
	case errors.Is(err, insights.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, insights.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server error")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// MarkRead is idempotent: re-reading an already-read insight is a 204 both
// times.
func (h *InsightHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.Store.MarkRead(r.Context(), uid, id)
	switch {
	case errors.Is(err, insights.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "server error")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
