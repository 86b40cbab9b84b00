// Package scoring holds the pure score calculators for the brand and
// reputation domains. Every score is normalized to [0,100]. Weights and
// benchmarks are product policy and live in exported defaults so a caller
// can override them without touching the formulas.
package scoring

import (
	"math"
	"strings"
)

// ProfileFacts is the structured input to the brand calculators. It is a
// snapshot, not a live record: handlers build it from a stored profile or
// from request payload and the calculators never touch storage.
type ProfileFacts struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Industry string `json:"industry"`

	ExperienceCount int `json:"experience_count"`
	SkillCount      int `json:"skill_count"`
	ConnectionCount int `json:"connection_count"`
	RecentPostCount int `json:"recent_post_count"`
	PlatformCount   int `json:"platform_count"`

	AvgLikes       float64 `json:"avg_likes"`
	AvgComments    float64 `json:"avg_comments"`
	EngagementRate float64 `json:"engagement_rate"`

	Keywords       []string `json:"keywords"`
	TargetKeywords []string `json:"target_keywords"`
}

// BrandSubScores are the five brand sub-scores, each in [0,100].
type BrandSubScores struct {
	Completeness float64 `json:"completeness"`
	Keyword      float64 `json:"keyword"`
	Engagement   float64 `json:"engagement"`
	Presence     float64 `json:"presence"`
	Network      float64 `json:"network"`
}

// BrandWeights combine the sub-scores into the overall brand score.
type BrandWeights struct {
	Completeness float64
	Keyword      float64
	Engagement   float64
	Presence     float64
	Network      float64
}

var DefaultBrandWeights = BrandWeights{
	Completeness: 0.25,
	Keyword:      0.20,
	Engagement:   0.25,
	Presence:     0.15,
	Network:      0.15,
}

// CompletenessPoints are the fixed point values each profile field
// contributes. Per-item points accumulate up to their cap.
type CompletenessPoints struct {
	Headline     float64
	LongHeadline float64 // headline of at least HeadlineLen runes
	HeadlineLen  int

	Summary     float64
	LongSummary float64
	SummaryLen  int

	PerExperience float64
	ExperienceCap float64

	PerSkill float64
	SkillCap float64

	PerRecentPost float64
	RecentPostCap float64
}

var DefaultCompletenessPoints = CompletenessPoints{
	Headline:     15,
	LongHeadline: 5,
	HeadlineLen:  40,

	Summary:     20,
	LongSummary: 5,
	SummaryLen:  200,

	PerExperience: 5,
	ExperienceCap: 25,

	PerSkill: 1,
	SkillCap: 15,

	PerRecentPost: 3,
	RecentPostCap: 15,
}

// EngagementBenchmarks are the fixed industry reference values each
// observed metric is measured against. Each observed/benchmark ratio is
// capped at RatioCap before weighting.
type EngagementBenchmarks struct {
	Likes          float64
	Comments       float64
	EngagementRate float64

	LikesWeight    float64
	CommentsWeight float64
	RateWeight     float64

	RatioCap float64
}

var DefaultEngagementBenchmarks = EngagementBenchmarks{
	Likes:          20,
	Comments:       5,
	EngagementRate: 0.02,

	LikesWeight:    40,
	CommentsWeight: 30,
	RateWeight:     30,

	RatioCap: 2,
}

// KeywordNeutralScore is returned when no target keywords are configured;
// absence of a target list is treated as "nothing to optimize against",
// not as a failing grade.
const KeywordNeutralScore = 50

// PresencePoints value platform coverage and posting activity.
type PresencePoints struct {
	PerPlatform float64
	PlatformCap float64
	PerPost     float64
	PostCap     float64
}

var DefaultPresencePoints = PresencePoints{
	PerPlatform: 20,
	PlatformCap: 60,
	PerPost:     5,
	PostCap:     40,
}

// NetworkBenchmark is the connection count worth half the network score;
// twice the benchmark saturates it.
const NetworkBenchmark = 500

func CompletenessScore(p ProfileFacts, pts CompletenessPoints) float64 {
	var score float64

	if strings.TrimSpace(p.Headline) != "" {
		score += pts.Headline
		if len([]rune(p.Headline)) >= pts.HeadlineLen {
			score += pts.LongHeadline
		}
	}
	if strings.TrimSpace(p.Summary) != "" {
		score += pts.Summary
		if len([]rune(p.Summary)) >= pts.SummaryLen {
			score += pts.LongSummary
		}
	}

	score += math.Min(float64(p.ExperienceCount)*pts.PerExperience, pts.ExperienceCap)
	score += math.Min(float64(p.SkillCount)*pts.PerSkill, pts.SkillCap)
	score += math.Min(float64(p.RecentPostCount)*pts.PerRecentPost, pts.RecentPostCap)

	return Clamp(score)
}

func KeywordScore(p ProfileFacts) float64 {
	if len(p.TargetKeywords) == 0 {
		return KeywordNeutralScore
	}

	haystack := strings.ToLower(p.Headline + " " + p.Summary + " " + strings.Join(p.Keywords, " "))
	matched := 0
	for _, kw := range p.TargetKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(haystack, kw) {
			matched++
		}
	}

	return Clamp(100 * float64(matched) / float64(len(p.TargetKeywords)))
}

func EngagementScore(p ProfileFacts, b EngagementBenchmarks) float64 {
	score := ratio(p.AvgLikes, b.Likes, b.RatioCap)*b.LikesWeight +
		ratio(p.AvgComments, b.Comments, b.RatioCap)*b.CommentsWeight +
		ratio(p.EngagementRate, b.EngagementRate, b.RatioCap)*b.RateWeight
	return Clamp(score)
}

func PresenceScore(p ProfileFacts, pts PresencePoints) float64 {
	score := math.Min(float64(p.PlatformCount)*pts.PerPlatform, pts.PlatformCap) +
		math.Min(float64(p.RecentPostCount)*pts.PerPost, pts.PostCap)
	return Clamp(score)
}

func NetworkScore(p ProfileFacts) float64 {
	return Clamp(ratio(float64(p.ConnectionCount), NetworkBenchmark, 2) * 50)
}

// BrandScores computes all five sub-scores from one snapshot.
func BrandScores(p ProfileFacts) BrandSubScores {
	return BrandSubScores{
		Completeness: CompletenessScore(p, DefaultCompletenessPoints),
		Keyword:      KeywordScore(p),
		Engagement:   EngagementScore(p, DefaultEngagementBenchmarks),
		Presence:     PresenceScore(p, DefaultPresencePoints),
		Network:      NetworkScore(p),
	}
}

// BrandOverall is the fixed-weight linear combination of the sub-scores,
// rounded to the nearest integer.
func BrandOverall(s BrandSubScores, w BrandWeights) int {
	total := w.Completeness*s.Completeness +
		w.Keyword*s.Keyword +
		w.Engagement*s.Engagement +
		w.Presence*s.Presence +
		w.Network*s.Network
	return int(math.Round(Clamp(total)))
}

func Clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func ratio(observed, benchmark, limit float64) float64 {
	if benchmark <= 0 {
		return 0
	}
	return math.Min(observed/benchmark, limit)
}
