package tasks

import (
	"context"
	"encoding/json"

	"brandpulse/internal/insights"
	"brandpulse/internal/jobs"
)

type insightResult struct {
	InsightType string `json:"insight_type"`
}

func (d Deps) weeklyInsight(ctx context.Context, job *jobs.Job) ([]byte, error) {
	mctx, err := d.Mentor.Build(ctx, job.UserID)
	if err != nil {
		return nil, err
	}

	ins := d.Generator.WeeklyInsight(mctx)
	if err := d.Insights.Store(ctx, job.UserID, []insights.Insight{ins}); err != nil {
		return nil, err
	}

	return json.Marshal(insightResult{InsightType: insights.TypeWeekly})
}

func (d Deps) monthlyReview(ctx context.Context, job *jobs.Job) ([]byte, error) {
	mctx, err := d.Mentor.Build(ctx, job.UserID)
	if err != nil {
		return nil, err
	}

	ins := d.Generator.MonthlyReview(mctx)
	if err := d.Insights.Store(ctx, job.UserID, []insights.Insight{ins}); err != nil {
		return nil, err
	}

	return json.Marshal(insightResult{InsightType: insights.TypeMonthlyReview})
}
