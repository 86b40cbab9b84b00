package insights

import (
	"fmt"
	"math/rand"

	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/mentor"
	"brandpulse/internal/scoring"
)

// Generator turns scores and history into insight records. Title wording is
// the only random element; the randomness source is injected so runs can be
// made deterministic.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// recommendationRule fires when its sub-score drops below the threshold.
// Rules are evaluated in catalog order and each firing rule appends exactly
// one recommendation.
type recommendationRule struct {
	category  string
	threshold float64
	score     func(scoring.BrandSubScores) float64
	titles    []string
	content   string // fmt template receiving the sub-score
	actions   []string
	priority  int
}

var recommendationCatalog = []recommendationRule{
	{
		category:  "profile-completeness",
		threshold: 70,
		score:     func(s scoring.BrandSubScores) float64 { return s.Completeness },
		titles: []string{
			"Round out your profile",
			"Your profile has gaps worth filling",
		},
		content: "Your profile completeness score is %.0f. Profiles with a headline, summary, and documented experience get found far more often.",
		actions: []string{
			"Write a headline that names your specialty",
			"Add a summary of at least a few sentences",
			"List your most recent roles and skills",
		},
		priority: 90,
	},
	{
		category:  "engagement",
		threshold: 50,
		score:     func(s scoring.BrandSubScores) float64 { return s.Engagement },
		titles: []string{
			"Your posts deserve more reach",
			"Engagement is below benchmark",
		},
		content: "Your engagement score is %.0f. Interacting with your network's content lifts your own posts in return.",
		actions: []string{
			"Comment on three posts in your field this week",
			"Post at a consistent time of day",
			"End posts with a question to invite replies",
		},
		priority: 85,
	},
	{
		category:  "keyword-optimization",
		threshold: 60,
		score:     func(s scoring.BrandSubScores) float64 { return s.Keyword },
		titles: []string{
			"Tune your profile keywords",
			"Recruiters search words you aren't using",
		},
		content: "Your keyword score is %.0f. Your target terms barely appear in your headline and summary.",
		actions: []string{
			"Work your top target keywords into your headline",
			"Mirror the vocabulary of roles you want",
		},
		priority: 75,
	},
	{
		category:  "content-presence",
		threshold: 40,
		score:     func(s scoring.BrandSubScores) float64 { return s.Presence },
		titles: []string{
			"Show up more often",
			"Your presence is thin",
		},
		content: "Your presence score is %.0f. Regular posting across platforms keeps you visible between job searches.",
		actions: []string{
			"Share one piece of original content per week",
			"Cross-post highlights to a second platform",
		},
		priority: 70,
	},
	{
		category:  "network-growth",
		threshold: 50,
		score:     func(s scoring.BrandSubScores) float64 { return s.Network },
		titles: []string{
			"Grow your network deliberately",
			"Your network is smaller than your ambitions",
		},
		content: "Your network score is %.0f. A wider network compounds the reach of everything you publish.",
		actions: []string{
			"Send five personalized connection requests a week",
			"Reconnect with former colleagues",
		},
		priority: 65,
	},
}

// Recommendations evaluates the catalog in fixed order against one set of
// sub-scores.
func (g *Generator) Recommendations(sub scoring.BrandSubScores) []Insight {
	var out []Insight
	for _, rule := range recommendationCatalog {
		v := rule.score(sub)
		if v >= rule.threshold {
			continue
		}
		out = append(out, Insight{
			Type:          TypeRecommendation,
			Category:      rule.category,
			Title:         g.pick(rule.titles),
			Content:       fmt.Sprintf(rule.content, v),
			ActionItems:   rule.actions,
			PriorityScore: rule.priority,
		})
	}
	return out
}

var weeklyTitles = struct {
	up, down, flat, onboarding []string
}{
	up:         []string{"Your brand is trending up", "Momentum is on your side this week"},
	down:       []string{"Your score slipped this week", "Time to course-correct"},
	flat:       []string{"Holding steady", "Your weekly brand check-in"},
	onboarding: []string{"Let's establish your baseline", "Your brand journey starts here"},
}

// WeeklyInsight compares the latest analysis against the previous one. A
// context with no analysis yet yields an onboarding insight rather than an
// error.
func (g *Generator) WeeklyInsight(c mentor.Context) Insight {
	if c.Latest == nil {
		content := "You haven't run a brand analysis yet. Run one to establish a baseline and start tracking your progress."
		if c.Profile == nil {
			content = "Connect your LinkedIn account and run your first brand analysis to establish a baseline."
		}
		return Insight{
			Type:          TypeWeekly,
			Title:         g.pick(weeklyTitles.onboarding),
			Content:       content,
			ActionItems:   []string{"Run your first brand analysis"},
			PriorityScore: 60,
		}
	}

	var prev *float64
	if len(c.History) > 1 {
		v := float64(c.History[1].OverallScore)
		prev = &v
	}

	cur := float64(c.Latest.OverallScore)
	switch {
	case prev == nil:
		return Insight{
			Type:          TypeWeekly,
			Title:         g.pick(weeklyTitles.flat),
			Content:       fmt.Sprintf("Your brand score is %.0f. Keep analyses coming and the weekly check-in will track your trend.", cur),
			ActionItems:   []string{"Keep your profile activity up"},
			PriorityScore: 50,
		}
	case cur > *prev:
		return Insight{
			Type:          TypeWeekly,
			Title:         g.pick(weeklyTitles.up),
			Content:       fmt.Sprintf("Your brand score rose from %.0f to %.0f. Whatever you changed, keep doing it.", *prev, cur),
			ActionItems:   []string{"Note what you changed this week and repeat it"},
			PriorityScore: 55,
		}
	case cur < *prev:
		return Insight{
			Type:          TypeWeekly,
			Title:         g.pick(weeklyTitles.down),
			Content:       fmt.Sprintf("Your brand score fell from %.0f to %.0f. Review your open recommendations for the quickest recovery.", *prev, cur),
			ActionItems:   []string{"Work through your highest-priority recommendation"},
			PriorityScore: 80,
		}
	default:
		return Insight{
			Type:          TypeWeekly,
			Title:         g.pick(weeklyTitles.flat),
			Content:       fmt.Sprintf("Your brand score held at %.0f this week.", cur),
			ActionItems:   []string{"Pick one recommendation to push the score up"},
			PriorityScore: 50,
		}
	}
}

var monthlyTitles = []string{
	"Your month in review",
	"Monthly brand report",
}

// MonthlyReview aggregates the recent history into a summary insight.
func (g *Generator) MonthlyReview(c mentor.Context) Insight {
	if c.Latest == nil {
		return Insight{
			Type:          TypeMonthlyReview,
			Title:         g.pick(monthlyTitles),
			Content:       "No analyses were recorded this month, so there is nothing to review yet.",
			ActionItems:   []string{"Run a brand analysis to start your history"},
			PriorityScore: 40,
		}
	}

	var sum float64
	for _, a := range c.History {
		sum += float64(a.OverallScore)
	}
	avg := sum / float64(len(c.History))

	strongest, weakest := extremes(*c.Latest)
	openGoals := len(c.OpenGoals)

	content := fmt.Sprintf(
		"Across %d recent analyses your brand score averaged %.0f. Your strongest area is %s and your weakest is %s.",
		len(c.History), avg, strongest, weakest,
	)
	if openGoals > 0 {
		content += fmt.Sprintf(" You have %d open goal(s) in flight.", openGoals)
	}

	return Insight{
		Type:          TypeMonthlyReview,
		Title:         g.pick(monthlyTitles),
		Content:       content,
		ActionItems:   []string{"Set one concrete goal for the coming month", "Focus effort on your weakest area: " + weakest},
		PriorityScore: 60,
	}
}

var achievementTitles = []string{
	"Goal reached!",
	"You hit your target",
}

// Achievement congratulates a goal whose current value crossed the target.
// It does not complete the goal; that stays an explicit user action.
func (g *Generator) Achievement(goal goals.Goal) Insight {
	return Insight{
		Type:  TypeAchievement,
		Title: g.pick(achievementTitles),
		Content: fmt.Sprintf(
			"Your %q goal reached %.0f of its %.0f target. Mark it complete when you're ready, or raise the bar.",
			goal.GoalType, goal.CurrentValue, goal.TargetValue,
		),
		ActionItems:   []string{"Mark the goal complete", "Set a stretch target"},
		PriorityScore: 70,
	}
}

func (g *Generator) pick(titles []string) string {
	return titles[g.rng.Intn(len(titles))]
}

func extremes(a brand.Analysis) (strongest, weakest string) {
	areas := []struct {
		name  string
		score float64
	}{
		{"completeness", a.CompletenessScore},
		{"keywords", a.KeywordScore},
		{"engagement", a.EngagementScore},
		{"presence", a.PresenceScore},
		{"network", a.NetworkScore},
	}

	hi, lo := 0, 0
	for i, area := range areas {
		if area.score > areas[hi].score {
			hi = i
		}
		if area.score < areas[lo].score {
			lo = i
		}
	}
	return areas[hi].name, areas[lo].name
}
