package tasks

import (
	"context"
	"encoding/json"
	"errors"

	"brandpulse/internal/jobs"
	"brandpulse/internal/profile"
	"brandpulse/internal/scoring"
)

// BrandAnalysisPayload carries the profile snapshot to score. When absent,
// the handler falls back to the user's stored profile.
type BrandAnalysisPayload struct {
	ProfileData *scoring.ProfileFacts `json:"profile_data"`
}

type brandAnalysisResult struct {
	AnalysisID      uint64 `json:"analysis_id"`
	OverallScore    int    `json:"overall_score"`
	Recommendations int    `json:"recommendations"`
}

func (d Deps) brandAnalysis(ctx context.Context, job *jobs.Job) ([]byte, error) {
	var p BrandAnalysisPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return nil, jobs.NonRetryable(errors.New("malformed brand-analysis payload"))
	}

	facts := p.ProfileData
	if facts == nil {
		stored, err := d.Profiles.Get(ctx, job.UserID)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, jobs.NonRetryable(errors.New("no profile data in payload and no synced profile"))
		}
		f := factsFromProfile(stored)
		facts = &f
	}

	sub := scoring.BrandScores(*facts)
	overall := scoring.BrandOverall(sub, scoring.DefaultBrandWeights)

	analysis, err := d.Analyses.Record(ctx, job.UserID, sub, overall)
	if err != nil {
		return nil, err
	}

	recs := d.Generator.Recommendations(sub)
	if err := d.Insights.Store(ctx, job.UserID, recs); err != nil {
		return nil, err
	}

	return json.Marshal(brandAnalysisResult{
		AnalysisID:      analysis.ID,
		OverallScore:    overall,
		Recommendations: len(recs),
	})
}

func factsFromProfile(p *profile.Profile) scoring.ProfileFacts {
	return scoring.ProfileFacts{
		Headline: p.Headline,
		Summary:  p.Summary,
		Industry: p.Industry,

		ExperienceCount: p.ExperienceCount,
		SkillCount:      p.SkillCount,
		ConnectionCount: p.ConnectionCount,
		RecentPostCount: p.RecentPostCount,
		PlatformCount:   1, // stored snapshot covers LinkedIn only

		AvgLikes:       p.AvgLikes,
		AvgComments:    p.AvgComments,
		EngagementRate: p.EngagementRate,

		Keywords: p.Keywords,
	}
}
