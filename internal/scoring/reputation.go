package scoring

import (
	"math"
	"time"
)

// Mention is one item found during a reputation scan, already classified
// by the scanner.
type Mention struct {
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"`
	URL         string    `json:"url"`
	Platform    string    `json:"platform"`
	Ranking     int       `json:"ranking"` // 1-based search result position
	Sentiment   string    `json:"sentiment"`
	PublishedAt time.Time `json:"published_at"`
}

// ReputationSubScores are the four reputation sub-scores, each in [0,100].
type ReputationSubScores struct {
	Sentiment  float64 `json:"sentiment"`
	Visibility float64 `json:"visibility"`
	Authority  float64 `json:"authority"`
	Freshness  float64 `json:"freshness"`
}

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentNeutralScore is recorded when a scan finds nothing at all;
// no mentions is neither good nor bad press.
const SentimentNeutralScore = 50

// VisibilityRankingCutoff is the highest search ranking still counted as
// visible (first page).
const VisibilityRankingCutoff = 10

// FreshnessWindow is how recent a mention must be to count as fresh.
const FreshnessWindow = 6 * 30 * 24 * time.Hour

// AuthorityPlatforms are platforms whose mentions signal professional
// authority.
var AuthorityPlatforms = map[string]bool{
	"linkedin": true,
	"github":   true,
	"medium":   true,
	"news":     true,
}

func SentimentScore(mentions []Mention) float64 {
	if len(mentions) == 0 {
		return SentimentNeutralScore
	}
	return fraction(mentions, func(m Mention) bool {
		return m.Sentiment == SentimentPositive
	})
}

func VisibilityScore(mentions []Mention) float64 {
	if len(mentions) == 0 {
		return 0
	}
	return fraction(mentions, func(m Mention) bool {
		return m.Ranking > 0 && m.Ranking <= VisibilityRankingCutoff
	})
}

func AuthorityScore(mentions []Mention) float64 {
	if len(mentions) == 0 {
		return 0
	}
	return fraction(mentions, func(m Mention) bool {
		return AuthorityPlatforms[m.Platform]
	})
}

func FreshnessScore(mentions []Mention, now time.Time) float64 {
	if len(mentions) == 0 {
		return 0
	}
	cutoff := now.Add(-FreshnessWindow)
	return fraction(mentions, func(m Mention) bool {
		return m.PublishedAt.After(cutoff)
	})
}

// ReputationScores computes all four sub-scores from one mention set.
func ReputationScores(mentions []Mention, now time.Time) ReputationSubScores {
	return ReputationSubScores{
		Sentiment:  SentimentScore(mentions),
		Visibility: VisibilityScore(mentions),
		Authority:  AuthorityScore(mentions),
		Freshness:  FreshnessScore(mentions, now),
	}
}

// ReputationOverall is the unweighted average of the four sub-scores,
// rounded to the nearest integer.
func ReputationOverall(s ReputationSubScores) int {
	avg := (s.Sentiment + s.Visibility + s.Authority + s.Freshness) / 4
	return int(math.Round(Clamp(avg)))
}

func fraction(mentions []Mention, pred func(Mention) bool) float64 {
	n := 0
	for _, m := range mentions {
		if pred(m) {
			n++
		}
	}
	return Clamp(100 * float64(n) / float64(len(mentions)))
}
