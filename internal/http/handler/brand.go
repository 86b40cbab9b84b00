package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"brandpulse/internal/auth"
	"brandpulse/internal/brand"
	"brandpulse/internal/jobs"
	"brandpulse/internal/scoring"
	"brandpulse/internal/tasks"

	"github.com/go-chi/chi/v5"
)

// AnalyzePriority puts user-initiated analyses ahead of recurring batch
// jobs in the queue.
const AnalyzePriority = 4

// analyzeEstimate is the completion estimate returned to the dashboard,
// covering one poll interval plus typical handler time.
const analyzeEstimate = 2 * time.Minute

type JobQueue interface {
	Enqueue(ctx context.Context, typ string, userID uint64, payload any, priority, maxAttempts int, scheduledAt time.Time) (uint64, error)
}

type AnalysisReader interface {
	Get(ctx context.Context, userID, id uint64) (*brand.Analysis, error)
}

type BrandHandler struct {
	Queue    JobQueue
	Analyses AnalysisReader
}

type analyzeReq struct {
	ProfileData *scoring.ProfileFacts `json:"profile_data"`
}

func (h *BrandHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.ProfileData == nil {
		writeError(w, http.StatusBadRequest, "profile_data required")
		return
	}

	jobID, err := h.Queue.Enqueue(r.Context(), jobs.TypeBrandAnalysis, uid,
		tasks.BrandAnalysisPayload{ProfileData: req.ProfileData},
		AnalyzePriority, jobs.DefaultMaxAttempts, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to schedule analysis")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":               jobID,
		"estimated_completion": time.Now().Add(analyzeEstimate),
	})
}

type analysisDTO struct {
	ID           uint64                 `json:"id"`
	OverallScore int                    `json:"overall_score"`
	SubScores    scoring.BrandSubScores `json:"sub_scores"`
	CreatedAt    time.Time              `json:"created_at"`
}

func (h *BrandHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.Analyses.Get(r.Context(), uid, id)
	if errors.Is(err, brand.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, analysisDTO{
		ID:           a.ID,
		OverallScore: a.OverallScore,
		SubScores: scoring.BrandSubScores{
			Completeness: a.CompletenessScore,
			Keyword:      a.KeywordScore,
			Engagement:   a.EngagementScore,
			Presence:     a.PresenceScore,
			Network:      a.NetworkScore,
		},
		CreatedAt: a.CreatedAt,
	})
}
