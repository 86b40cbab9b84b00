// Package mentor assembles the snapshot of a user's state that the insight
// generators work from.
package mentor

import (
	"context"

	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/profile"
)

// HistoryDepth is how many past analyses the context carries.
const HistoryDepth = 4

// Context is the aggregated snapshot. Profile and Latest may be nil: a user
// who never synced or was never analyzed still gets a valid context, and
// callers must treat the nil fields as "no data yet", not as an error.
type Context struct {
	UserID uint64

	Profile   *profile.Profile
	Latest    *brand.Analysis
	History   []brand.Analysis // newest first, up to HistoryDepth
	OpenGoals []goals.Goal
}

// Store is the read surface the builder needs. The gorm-backed services
// satisfy it; tests use fakes.
type Store interface {
	Profile(ctx context.Context, userID uint64) (*profile.Profile, error)
	LatestAnalysis(ctx context.Context, userID uint64) (*brand.Analysis, error)
	RecentAnalyses(ctx context.Context, userID uint64, n int) ([]brand.Analysis, error)
	OpenGoals(ctx context.Context, userID uint64) ([]goals.Goal, error)
}

type Builder struct {
	Store Store
}

func (b *Builder) Build(ctx context.Context, userID uint64) (Context, error) {
	out := Context{UserID: userID}

	p, err := b.Store.Profile(ctx, userID)
	if err != nil {
		return out, err
	}
	out.Profile = p

	latest, err := b.Store.LatestAnalysis(ctx, userID)
	if err != nil {
		return out, err
	}
	out.Latest = latest

	history, err := b.Store.RecentAnalyses(ctx, userID, HistoryDepth)
	if err != nil {
		return out, err
	}
	out.History = history

	open, err := b.Store.OpenGoals(ctx, userID)
	if err != nil {
		return out, err
	}
	out.OpenGoals = open

	return out, nil
}
