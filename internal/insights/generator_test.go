package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/mentor"
	"brandpulse/internal/profile"
	"brandpulse/internal/scoring"
)

func TestRecommendationsHealthyScoresYieldNothing(t *testing.T) {
	g := NewGenerator(1)
	sub := scoring.BrandSubScores{
		Completeness: 90,
		Keyword:      80,
		Engagement:   75,
		Presence:     60,
		Network:      70,
	}
	assert.Empty(t, g.Recommendations(sub))
}

func TestRecommendationsFireInCatalogOrder(t *testing.T) {
	g := NewGenerator(1)
	sub := scoring.BrandSubScores{
		Completeness: 30, // below 70
		Keyword:      90,
		Engagement:   20, // below 50
		Presence:     10, // below 40
		Network:      90,
	}

	out := g.Recommendations(sub)
	require.Len(t, out, 3)

	assert.Equal(t, "profile-completeness", out[0].Category)
	assert.Equal(t, "engagement", out[1].Category)
	assert.Equal(t, "content-presence", out[2].Category)

	for _, ins := range out {
		assert.Equal(t, TypeRecommendation, ins.Type)
		assert.NotEmpty(t, ins.Title)
		assert.NotEmpty(t, ins.Content)
		assert.NotEmpty(t, ins.ActionItems)
		assert.Greater(t, ins.PriorityScore, 0)
	}

	assert.Contains(t, out[0].Content, "30")
	assert.Equal(t, 90, out[0].PriorityScore)
}

func TestRecommendationsThresholdIsExclusive(t *testing.T) {
	g := NewGenerator(1)

	// exactly at threshold does not fire
	at := scoring.BrandSubScores{Completeness: 70, Keyword: 60, Engagement: 50, Presence: 40, Network: 50}
	assert.Empty(t, g.Recommendations(at))

	// just below fires all five
	below := scoring.BrandSubScores{Completeness: 69, Keyword: 59, Engagement: 49, Presence: 39, Network: 49}
	assert.Len(t, g.Recommendations(below), 5)
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	sub := scoring.BrandSubScores{Completeness: 10}

	a := NewGenerator(42).Recommendations(sub)
	b := NewGenerator(42).Recommendations(sub)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].Title, b[0].Title)
}

func TestWeeklyInsightOnboarding(t *testing.T) {
	g := NewGenerator(1)

	noProfile := g.WeeklyInsight(mentor.Context{UserID: 1})
	assert.Equal(t, TypeWeekly, noProfile.Type)
	assert.Contains(t, noProfile.Content, "LinkedIn")

	withProfile := g.WeeklyInsight(mentor.Context{UserID: 1, Profile: &profile.Profile{UserID: 1}})
	assert.Contains(t, withProfile.Content, "baseline")
	assert.Equal(t, []string{"Run your first brand analysis"}, []string(withProfile.ActionItems))
}

func TestWeeklyInsightTrends(t *testing.T) {
	g := NewGenerator(1)

	mk := func(scores ...int) mentor.Context {
		var hist []brand.Analysis
		for _, s := range scores {
			hist = append(hist, brand.Analysis{OverallScore: s})
		}
		return mentor.Context{UserID: 1, Latest: &hist[0], History: hist}
	}

	up := g.WeeklyInsight(mk(70, 60))
	assert.Contains(t, up.Content, "rose from 60 to 70")

	down := g.WeeklyInsight(mk(55, 65))
	assert.Contains(t, down.Content, "fell from 65 to 55")
	assert.Equal(t, 80, down.PriorityScore)

	flat := g.WeeklyInsight(mk(60, 60))
	assert.Contains(t, flat.Content, "held at 60")

	single := g.WeeklyInsight(mk(60))
	assert.Contains(t, single.Content, "Your brand score is 60")
}

func TestMonthlyReview(t *testing.T) {
	g := NewGenerator(1)

	empty := g.MonthlyReview(mentor.Context{UserID: 1})
	assert.Equal(t, TypeMonthlyReview, empty.Type)
	assert.Contains(t, empty.Content, "nothing to review")

	latest := brand.Analysis{
		OverallScore:      70,
		CompletenessScore: 90,
		KeywordScore:      50,
		EngagementScore:   20,
		PresenceScore:     60,
		NetworkScore:      40,
	}
	c := mentor.Context{
		UserID:  1,
		Latest:  &latest,
		History: []brand.Analysis{latest, {OverallScore: 60}, {OverallScore: 50}},
		OpenGoals: []goals.Goal{
			{GoalType: "score_target"},
		},
	}

	ins := g.MonthlyReview(c)
	assert.Contains(t, ins.Content, "3 recent analyses")
	assert.Contains(t, ins.Content, "averaged 60")
	assert.Contains(t, ins.Content, "strongest area is completeness")
	assert.Contains(t, ins.Content, "weakest is engagement")
	assert.Contains(t, ins.Content, "1 open goal")
}

func TestAchievement(t *testing.T) {
	g := NewGenerator(1)

	ins := g.Achievement(goals.Goal{
		GoalType:     "connection_growth",
		TargetValue:  500,
		CurrentValue: 512,
	})

	assert.Equal(t, TypeAchievement, ins.Type)
	assert.Contains(t, ins.Content, `"connection_growth"`)
	assert.Contains(t, ins.Content, "512")
	assert.Contains(t, ins.Content, "500")
	assert.Equal(t, 70, ins.PriorityScore)
}
