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
	"brandpulse/internal/goals"

	"github.com/go-chi/chi/v5"
)

type GoalStore interface {
	Create(ctx context.Context, userID uint64, in goals.CreateInput) (*goals.Goal, error)
	List(ctx context.Context, userID uint64) ([]goals.Goal, error)
	UpdateProgress(ctx context.Context, userID, id uint64, currentValue float64) (*goals.Goal, error)
	Complete(ctx context.Context, userID, id uint64) (*goals.Goal, error)
}

type GoalHandler struct {
	Store GoalStore
}

type goalDTO struct {
	ID           uint64     `json:"id"`
	GoalType     string     `json:"goal_type"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Deadline     *time.Time `json:"deadline"`
	AchievedAt   *time.Time `json:"achieved_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toGoalDTO(g *goals.Goal) goalDTO {
	return goalDTO{
		ID:           g.ID,
		GoalType:     g.GoalType,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Deadline:     g.Deadline,
		AchievedAt:   g.AchievedAt,
		CreatedAt:    g.CreatedAt,
	}
}

type createGoalReq struct {
	GoalType     string  `json:"goal_type"`
	TargetValue  float64 `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Deadline     *string `json:"deadline"` // RFC3339 optional
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.pathUser(w, r)
	if !ok {
		return
	}

	var req createGoalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.GoalType = strings.TrimSpace(req.GoalType)
	if req.GoalType == "" {
		writeError(w, http.StatusBadRequest, "goal_type required")
		return
	}
	if req.TargetValue <= 0 {
		writeError(w, http.StatusBadRequest, "target_value must be positive")
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && strings.TrimSpace(*req.Deadline) != "" {
		t, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid deadline (RFC3339)")
			return
		}
		deadline = &t
	}

	g, err := h.Store.Create(r.Context(), uid, goals.CreateInput{
		GoalType:     req.GoalType,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Deadline:     deadline,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, toGoalDTO(g))
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.pathUser(w, r)
	if !ok {
		return
	}

	rows, err := h.Store.List(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]goalDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toGoalDTO(&rows[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type progressReq struct {
	CurrentValue *float64 `json:"current_value"`
}

// Progress rejects a non-numeric current_value with a 400 before touching
// the store.
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req progressReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "current_value must be a number")
		return
	}
	if req.CurrentValue == nil {
		writeError(w, http.StatusBadRequest, "current_value required")
		return
	}

	g, err := h.Store.UpdateProgress(r.Context(), uid, id, *req.CurrentValue)
	if errors.Is(err, goals.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, toGoalDTO(g))
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	g, err := h.Store.Complete(r.Context(), uid, id)
	if errors.Is(err, goals.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, toGoalDTO(g))
}

// pathUser parses the {id} path segment as a user id and requires it to be
// the authenticated caller.
func (h *GoalHandler) pathUser(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	uid, _ := auth.UserIDFromContext(r.Context())

	pathUID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	if pathUID != uid {
		writeError(w, http.StatusForbidden, "forbidden")
		return 0, false
	}
	return uid, true
}
