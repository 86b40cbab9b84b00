package tasks

import (
	"context"
	"encoding/json"
	"time"

	"brandpulse/internal/jobs"
	"brandpulse/internal/scoring"
)

type reputationResult struct {
	Skipped      bool   `json:"skipped,omitempty"`
	ScanID       uint64 `json:"scan_id,omitempty"`
	OverallScore int    `json:"overall_score,omitempty"`
	Mentions     int    `json:"mentions,omitempty"`
}

func (d Deps) reputationScan(ctx context.Context, job *jobs.Job) ([]byte, error) {
	settings, err := d.Monitor.GetSettings(ctx, job.UserID)
	if err != nil {
		return nil, err
	}
	if !settings.IsActive {
		// Monitoring was switched off between trigger and dispatch.
		return json.Marshal(reputationResult{Skipped: true})
	}

	mentions, err := d.Scanner.Fetch(ctx, settings.Keywords, settings.Platforms)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub := scoring.ReputationScores(mentions, now)
	overall := scoring.ReputationOverall(sub)

	scan, err := d.Monitor.RecordScan(ctx, job.UserID, sub, overall, mentions)
	if err != nil {
		return nil, err
	}
	if err := d.Monitor.TouchLastScan(ctx, job.UserID, now); err != nil {
		return nil, err
	}

	return json.Marshal(reputationResult{
		ScanID:       scan.ID,
		OverallScore: overall,
		Mentions:     len(mentions),
	})
}
