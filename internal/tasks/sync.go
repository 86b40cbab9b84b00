package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"brandpulse/internal/jobs"
	"brandpulse/internal/linkedin"
	"brandpulse/internal/profile"
)

type dailySyncResult struct {
	Synced   bool      `json:"synced"`
	SyncedAt time.Time `json:"synced_at"`
}

func (d Deps) dailySync(ctx context.Context, job *jobs.Job) ([]byte, error) {
	conn, err := d.Connections.Connection(ctx, job.UserID)
	if errors.Is(err, linkedin.ErrNotConnected) {
		// Nothing to sync and retrying won't change that.
		return nil, jobs.NonRetryable(err)
	}
	if err != nil {
		return nil, err
	}

	data, err := d.LinkedIn.FetchProfile(ctx, conn.AccessToken)
	if err != nil {
		return nil, err
	}

	p := profile.Profile{
		UserID:          job.UserID,
		Headline:        data.Headline,
		Summary:         data.Summary,
		Industry:        data.Industry,
		ExperienceCount: data.ExperienceCount,
		SkillCount:      data.SkillCount,
		ConnectionCount: data.ConnectionCount,
		RecentPostCount: data.RecentPostCount,
		AvgLikes:        data.AvgLikes,
		AvgComments:     data.AvgComments,
		EngagementRate:  data.EngagementRate,
		Keywords:        data.Keywords,
	}
	if err := d.Profiles.Upsert(ctx, &p); err != nil {
		return nil, err
	}

	return json.Marshal(dailySyncResult{Synced: true, SyncedAt: time.Now()})
}
