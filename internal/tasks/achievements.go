package tasks

import (
	"context"
	"encoding/json"

	"brandpulse/internal/insights"
	"brandpulse/internal/jobs"
)

type achievementResult struct {
	Achievements int `json:"achievements"`
}

// achievementCheck congratulates goals that crossed their target. It never
// completes the goal itself; completion stays an explicit user action.
func (d Deps) achievementCheck(ctx context.Context, job *jobs.Job) ([]byte, error) {
	due, err := d.Goals.DueAchievements(ctx, job.UserID)
	if err != nil {
		return nil, err
	}

	var batch []insights.Insight
	for _, g := range due {
		batch = append(batch, d.Generator.Achievement(g))
	}
	if err := d.Insights.Store(ctx, job.UserID, batch); err != nil {
		return nil, err
	}

	for _, g := range due {
		if err := d.Goals.MarkNotified(ctx, g.ID); err != nil {
			return nil, err
		}
	}

	return json.Marshal(achievementResult{Achievements: len(due)})
}
