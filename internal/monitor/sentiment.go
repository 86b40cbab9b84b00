package monitor

import (
	"strings"

	"brandpulse/internal/scoring"
)

var positiveWords = []string{
	"good", "great", "excellent", "love", "awesome", "fantastic",
	"helpful", "impressive", "recommend", "success", "insightful",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "hate", "broken", "disappointing",
	"fail", "problem", "scandal", "complaint", "misleading",
}

// ClassifySentiment is a basic word-count classifier. Ties and no matches
// come out neutral.
func ClassifySentiment(content string) string {
	content = strings.ToLower(content)

	positive, negative := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(content, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(content, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return scoring.SentimentPositive
	case negative > positive:
		return scoring.SentimentNegative
	default:
		return scoring.SentimentNeutral
	}
}
