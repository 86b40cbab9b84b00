package mentor

import (
	"context"

	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/profile"
)

// GormStore adapts the domain services to the builder's Store interface.
type GormStore struct {
	Profiles *profile.Service
	Analyses *brand.Service
	Goals    *goals.Service
}

func (s *GormStore) Profile(ctx context.Context, userID uint64) (*profile.Profile, error) {
	return s.Profiles.Get(ctx, userID)
}

func (s *GormStore) LatestAnalysis(ctx context.Context, userID uint64) (*brand.Analysis, error) {
	return s.Analyses.Latest(ctx, userID)
}

func (s *GormStore) RecentAnalyses(ctx context.Context, userID uint64, n int) ([]brand.Analysis, error) {
	return s.Analyses.Recent(ctx, userID, n)
}

func (s *GormStore) OpenGoals(ctx context.Context, userID uint64) ([]goals.Goal, error) {
	return s.Goals.Open(ctx, userID)
}
