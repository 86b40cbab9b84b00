package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"brandpulse/internal/scoring"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Scanner queries the configured search backend for mentions of the user's
// keywords and classifies each hit. With no backend configured it returns
// no mentions, which the scoring layer treats as a neutral scan.
type Scanner struct {
	client  *resty.Client
	baseURL string
}

func NewScanner(baseURL string) *Scanner {
	return &Scanner{
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "brandpulse/1.0"),
		baseURL: baseURL,
	}
}

type searchResult struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	URL         string `json:"url"`
	Platform    string `json:"platform"`
	Position    int    `json:"position"`
	PublishedAt string `json:"published_at"`
}

func (s *Scanner) Fetch(ctx context.Context, keywords, platforms []string) ([]scoring.Mention, error) {
	if s.baseURL == "" || len(keywords) == 0 {
		return nil, nil
	}

	wanted := map[string]bool{}
	for _, p := range platforms {
		wanted[strings.ToLower(strings.TrimSpace(p))] = true
	}

	var all []scoring.Mention
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}

		results, err := s.search(ctx, kw)
		if err != nil {
			// One failing keyword should not sink the whole scan.
			logrus.Warnf("mention search failed for %q: %v", kw, err)
			continue
		}

		for _, r := range results {
			platform := strings.ToLower(r.Platform)
			if len(wanted) > 0 && !wanted[platform] {
				continue
			}

			m := scoring.Mention{
				Title:     r.Title,
				Snippet:   r.Snippet,
				URL:       r.URL,
				Platform:  platform,
				Ranking:   r.Position,
				Sentiment: ClassifySentiment(r.Title + " " + r.Snippet),
			}
			if t, err := time.Parse(time.RFC3339, r.PublishedAt); err == nil {
				m.PublishedAt = t
			}
			all = append(all, m)
		}
	}

	return all, nil
}

func (s *Scanner) search(ctx context.Context, keyword string) ([]searchResult, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", keyword).
		Get(s.baseURL + "/search")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode())
	}

	var results []searchResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Ping reports whether the search backend is reachable; a scanner with no
// backend configured counts as healthy.
func (s *Scanner) Ping(ctx context.Context) error {
	if s.baseURL == "" {
		return nil
	}
	resp, err := s.client.R().SetContext(ctx).Get(s.baseURL + "/health")
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 500 {
		return fmt.Errorf("search API returned status %d", resp.StatusCode())
	}
	return nil
}
