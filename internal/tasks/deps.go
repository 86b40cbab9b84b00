// Package tasks wires the domain services into job handlers, one per job
// type. Dependencies are narrow interfaces so handlers can run against
// fakes in tests; the gorm-backed services satisfy them in production.
package tasks

import (
	"context"
	"time"

	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/insights"
	"brandpulse/internal/jobs"
	"brandpulse/internal/linkedin"
	"brandpulse/internal/mentor"
	"brandpulse/internal/monitor"
	"brandpulse/internal/profile"
	"brandpulse/internal/scoring"
)

type ProfileStore interface {
	Get(ctx context.Context, userID uint64) (*profile.Profile, error)
	Upsert(ctx context.Context, p *profile.Profile) error
}

type AnalysisStore interface {
	Record(ctx context.Context, userID uint64, sub scoring.BrandSubScores, overall int) (*brand.Analysis, error)
}

type InsightSink interface {
	Store(ctx context.Context, userID uint64, items []insights.Insight) error
}

type GoalStore interface {
	DueAchievements(ctx context.Context, userID uint64) ([]goals.Goal, error)
	MarkNotified(ctx context.Context, id uint64) error
}

type ConnectionStore interface {
	Connection(ctx context.Context, userID uint64) (*linkedin.Connection, error)
}

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (*linkedin.ProfileData, error)
}

type SettingsStore interface {
	GetSettings(ctx context.Context, userID uint64) (*monitor.Settings, error)
	RecordScan(ctx context.Context, userID uint64, sub scoring.ReputationSubScores, overall int, mentions []scoring.Mention) (*monitor.Scan, error)
	TouchLastScan(ctx context.Context, userID uint64, at time.Time) error
}

type MentionFetcher interface {
	Fetch(ctx context.Context, keywords, platforms []string) ([]scoring.Mention, error)
}

type ContextBuilder interface {
	Build(ctx context.Context, userID uint64) (mentor.Context, error)
}

type Deps struct {
	Profiles    ProfileStore
	Analyses    AnalysisStore
	Insights    InsightSink
	Goals       GoalStore
	Connections ConnectionStore
	LinkedIn    ProfileFetcher
	Monitor     SettingsStore
	Scanner     MentionFetcher
	Mentor      ContextBuilder
	Generator   *insights.Generator
}

// Handlers builds the closed dispatch table.
func Handlers(d Deps) map[string]jobs.Handler {
	return map[string]jobs.Handler{
		jobs.TypeDailySync:        jobs.HandlerFunc(d.dailySync),
		jobs.TypeWeeklyInsight:    jobs.HandlerFunc(d.weeklyInsight),
		jobs.TypeMonthlyReview:    jobs.HandlerFunc(d.monthlyReview),
		jobs.TypeBrandAnalysis:    jobs.HandlerFunc(d.brandAnalysis),
		jobs.TypeAchievementCheck: jobs.HandlerFunc(d.achievementCheck),
		jobs.TypeReputationScan:   jobs.HandlerFunc(d.reputationScan),
	}
}
