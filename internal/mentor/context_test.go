package mentor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/profile"
)

type fakeStore struct {
	profile  *profile.Profile
	latest   *brand.Analysis
	history  []brand.Analysis
	open     []goals.Goal
	err      error
	histArgN int
}

func (f *fakeStore) Profile(ctx context.Context, userID uint64) (*profile.Profile, error) {
	return f.profile, f.err
}

func (f *fakeStore) LatestAnalysis(ctx context.Context, userID uint64) (*brand.Analysis, error) {
	return f.latest, nil
}

func (f *fakeStore) RecentAnalyses(ctx context.Context, userID uint64, n int) ([]brand.Analysis, error) {
	f.histArgN = n
	return f.history, nil
}

func (f *fakeStore) OpenGoals(ctx context.Context, userID uint64) ([]goals.Goal, error) {
	return f.open, nil
}

func TestBuildWithFullState(t *testing.T) {
	latest := &brand.Analysis{ID: 3, UserID: 42, OverallScore: 71}
	store := &fakeStore{
		profile: &profile.Profile{UserID: 42, Headline: "Engineer"},
		latest:  latest,
		history: []brand.Analysis{*latest, {ID: 2, OverallScore: 65}},
		open:    []goals.Goal{{ID: 1, GoalType: "score_target"}},
	}

	b := &Builder{Store: store}
	c, err := b.Build(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), c.UserID)
	assert.Equal(t, "Engineer", c.Profile.Headline)
	assert.Equal(t, 71, c.Latest.OverallScore)
	assert.Len(t, c.History, 2)
	assert.Len(t, c.OpenGoals, 1)
	assert.Equal(t, HistoryDepth, store.histArgN)
}

func TestBuildNewUserHasNilsNotErrors(t *testing.T) {
	b := &Builder{Store: &fakeStore{}}

	c, err := b.Build(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), c.UserID)
	assert.Nil(t, c.Profile)
	assert.Nil(t, c.Latest)
	assert.Empty(t, c.History)
	assert.Empty(t, c.OpenGoals)
}

func TestBuildPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("db unavailable")
	b := &Builder{Store: &fakeStore{err: storeErr}}

	_, err := b.Build(context.Background(), 7)
	assert.ErrorIs(t, err, storeErr)
}
