package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client wraps the LinkedIn OAuth and profile APIs. The base URL is
// configurable so tests and staging can point it at a stub.
type Client struct {
	http    *resty.Client
	baseURL string

	clientID     string
	clientSecret string
	redirectURI  string
}

type ClientOptions struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func NewClient(opts ClientOptions) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "brandpulse/1.0"),
		baseURL:      opts.BaseURL,
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		redirectURI:  opts.RedirectURI,
	}
}

// Configured reports whether OAuth credentials are present.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ExchangeCode trades an OAuth authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, authCode string) (*Token, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          authCode,
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"redirect_uri":  c.redirectURI,
		}).
		Post(c.baseURL + "/oauth/v2/accessToken")
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("token exchange returned status %d", resp.StatusCode())
	}

	var tok Token
	if err := json.Unmarshal(resp.Body(), &tok); err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	return &tok, nil
}

// ProfileData is the synced snapshot shape the data-sync job consumes.
type ProfileData struct {
	MemberID string `json:"member_id"`

	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Industry string `json:"industry"`

	ExperienceCount int `json:"experience_count"`
	SkillCount      int `json:"skill_count"`
	ConnectionCount int `json:"connection_count"`
	RecentPostCount int `json:"recent_post_count"`

	AvgLikes       float64 `json:"avg_likes"`
	AvgComments    float64 `json:"avg_comments"`
	EngagementRate float64 `json:"engagement_rate"`

	Keywords []string `json:"keywords"`
}

// FetchProfile pulls the member's profile and recent activity rollup.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*ProfileData, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Get(c.baseURL + "/v2/profile-snapshot")
	if err != nil {
		return nil, fmt.Errorf("profile fetch: %w", err)
	}
	if resp.StatusCode() == 401 {
		return nil, fmt.Errorf("profile fetch: token rejected")
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("profile fetch returned status %d", resp.StatusCode())
	}

	var p ProfileData
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return nil, fmt.Errorf("profile fetch: %w", err)
	}
	return &p, nil
}
