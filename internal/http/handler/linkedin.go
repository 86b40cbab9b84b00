package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"brandpulse/internal/auth"
	"brandpulse/internal/jobs"
	"brandpulse/internal/linkedin"

	"github.com/sirupsen/logrus"
)

type TokenExchanger interface {
	ExchangeCode(ctx context.Context, authCode string) (*linkedin.Token, error)
}

type ConnectionSaver interface {
	SaveConnection(ctx context.Context, c *linkedin.Connection) error
}

type LinkedInHandler struct {
	Client      TokenExchanger
	Connections ConnectionSaver
	Queue       JobQueue
}

type connectReq struct {
	AuthCode string `json:"auth_code"`
}

// Connect exchanges the OAuth code for tokens, stores them, and schedules
// the initial profile sync.
func (h *LinkedInHandler) Connect(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req connectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.AuthCode) == "" {
		writeError(w, http.StatusBadRequest, "auth_code required")
		return
	}

	tok, err := h.Client.ExchangeCode(r.Context(), req.AuthCode)
	if err != nil {
		logrus.Warnf("linkedin token exchange for user %d: %v", uid, err)
		writeError(w, http.StatusBadGateway, "token exchange failed")
		return
	}

	conn := linkedin.Connection{
		UserID:       uid,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
	if err := h.Connections.SaveConnection(r.Context(), &conn); err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	jobID, err := h.Queue.Enqueue(r.Context(), jobs.TypeDailySync, uid, nil,
		AnalyzePriority, jobs.DefaultMaxAttempts, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to schedule initial sync")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected":   true,
		"sync_job_id": jobID,
	})
}
