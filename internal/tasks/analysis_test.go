package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandpulse/internal/brand"
	"brandpulse/internal/goals"
	"brandpulse/internal/insights"
	"brandpulse/internal/jobs"
	"brandpulse/internal/linkedin"
	"brandpulse/internal/mentor"
	"brandpulse/internal/monitor"
	"brandpulse/internal/profile"
	"brandpulse/internal/scoring"
)

type fakeProfiles struct {
	stored   *profile.Profile
	upserted []*profile.Profile
}

func (f *fakeProfiles) Get(ctx context.Context, userID uint64) (*profile.Profile, error) {
	return f.stored, nil
}

func (f *fakeProfiles) Upsert(ctx context.Context, p *profile.Profile) error {
	f.upserted = append(f.upserted, p)
	return nil
}

type fakeAnalyses struct {
	recorded []brand.Analysis
}

func (f *fakeAnalyses) Record(ctx context.Context, userID uint64, sub scoring.BrandSubScores, overall int) (*brand.Analysis, error) {
	a := brand.Analysis{
		ID:                uint64(len(f.recorded) + 1),
		UserID:            userID,
		OverallScore:      overall,
		CompletenessScore: sub.Completeness,
		KeywordScore:      sub.Keyword,
		EngagementScore:   sub.Engagement,
		PresenceScore:     sub.Presence,
		NetworkScore:      sub.Network,
	}
	f.recorded = append(f.recorded, a)
	return &a, nil
}

type fakeInsights struct {
	stored []insights.Insight
}

func (f *fakeInsights) Store(ctx context.Context, userID uint64, items []insights.Insight) error {
	f.stored = append(f.stored, items...)
	return nil
}

type fakeGoals struct {
	due      []goals.Goal
	notified []uint64
}

func (f *fakeGoals) DueAchievements(ctx context.Context, userID uint64) ([]goals.Goal, error) {
	return f.due, nil
}

func (f *fakeGoals) MarkNotified(ctx context.Context, id uint64) error {
	f.notified = append(f.notified, id)
	return nil
}

type fakeConnections struct {
	conn *linkedin.Connection
}

func (f *fakeConnections) Connection(ctx context.Context, userID uint64) (*linkedin.Connection, error) {
	if f.conn == nil {
		return nil, linkedin.ErrNotConnected
	}
	return f.conn, nil
}

type fakeLinkedIn struct {
	data     *linkedin.ProfileData
	fetchErr error
}

func (f *fakeLinkedIn) FetchProfile(ctx context.Context, accessToken string) (*linkedin.ProfileData, error) {
	return f.data, f.fetchErr
}

type fakeMonitor struct {
	settings *monitor.Settings
	scans    []monitor.Scan
	touched  []time.Time
}

func (f *fakeMonitor) GetSettings(ctx context.Context, userID uint64) (*monitor.Settings, error) {
	if f.settings == nil {
		return &monitor.Settings{UserID: userID}, nil
	}
	return f.settings, nil
}

func (f *fakeMonitor) RecordScan(ctx context.Context, userID uint64, sub scoring.ReputationSubScores, overall int, mentions []scoring.Mention) (*monitor.Scan, error) {
	s := monitor.Scan{
		ID:           uint64(len(f.scans) + 1),
		UserID:       userID,
		OverallScore: overall,
		MentionCount: len(mentions),
	}
	f.scans = append(f.scans, s)
	return &s, nil
}

func (f *fakeMonitor) TouchLastScan(ctx context.Context, userID uint64, at time.Time) error {
	f.touched = append(f.touched, at)
	return nil
}

type fakeScanner struct {
	mentions []scoring.Mention
}

func (f *fakeScanner) Fetch(ctx context.Context, keywords, platforms []string) ([]scoring.Mention, error) {
	return f.mentions, nil
}

type fakeMentor struct {
	c mentor.Context
}

func (f *fakeMentor) Build(ctx context.Context, userID uint64) (mentor.Context, error) {
	f.c.UserID = userID
	return f.c, nil
}

func testDeps() (Deps, *fakeAnalyses, *fakeInsights) {
	analyses := &fakeAnalyses{}
	sink := &fakeInsights{}
	d := Deps{
		Profiles:    &fakeProfiles{},
		Analyses:    analyses,
		Insights:    sink,
		Goals:       &fakeGoals{},
		Connections: &fakeConnections{},
		LinkedIn:    &fakeLinkedIn{},
		Monitor:     &fakeMonitor{},
		Scanner:     &fakeScanner{},
		Mentor:      &fakeMentor{},
		Generator:   insights.NewGenerator(1),
	}
	return d, analyses, sink
}

func TestBrandAnalysisFromPayload(t *testing.T) {
	d, analyses, sink := testDeps()

	payload, err := json.Marshal(BrandAnalysisPayload{
		ProfileData: &scoring.ProfileFacts{
			Headline:        "Platform Engineer",
			Summary:         "Building infrastructure for a decade.",
			ExperienceCount: 4,
			SkillCount:      10,
			ConnectionCount: 600,
			RecentPostCount: 2,
			PlatformCount:   2,
			AvgLikes:        25,
		},
	})
	require.NoError(t, err)

	job := &jobs.Job{ID: 1, UserID: 42, Type: jobs.TypeBrandAnalysis, Payload: payload}
	result, err := d.brandAnalysis(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, analyses.recorded, 1)
	rec := analyses.recorded[0]
	assert.Equal(t, uint64(42), rec.UserID)
	assert.Greater(t, rec.OverallScore, 0)

	var out brandAnalysisResult
	require.NoError(t, json.Unmarshal(result, &out))
	assert.Equal(t, rec.ID, out.AnalysisID)
	assert.Equal(t, rec.OverallScore, out.OverallScore)
	assert.Equal(t, len(sink.stored), out.Recommendations)
}

func TestBrandAnalysisFallsBackToStoredProfile(t *testing.T) {
	d, analyses, _ := testDeps()
	d.Profiles = &fakeProfiles{stored: &profile.Profile{
		UserID:          42,
		Headline:        "Engineer",
		ConnectionCount: 500,
	}}

	job := &jobs.Job{ID: 1, UserID: 42, Type: jobs.TypeBrandAnalysis, Payload: []byte(`{}`)}
	_, err := d.brandAnalysis(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, analyses.recorded, 1)
	// stored snapshot covers one platform
	assert.Equal(t, 50.0, analyses.recorded[0].NetworkScore)
}

func TestBrandAnalysisNoDataIsNonRetryable(t *testing.T) {
	d, analyses, _ := testDeps()

	job := &jobs.Job{ID: 1, UserID: 42, Type: jobs.TypeBrandAnalysis, Payload: []byte(`{}`)}
	_, err := d.brandAnalysis(context.Background(), job)

	require.Error(t, err)
	assert.True(t, jobs.IsNonRetryable(err))
	assert.Empty(t, analyses.recorded)
}

func TestBrandAnalysisMalformedPayloadIsNonRetryable(t *testing.T) {
	d, _, _ := testDeps()

	job := &jobs.Job{ID: 1, UserID: 42, Type: jobs.TypeBrandAnalysis, Payload: []byte(`{not json`)}
	_, err := d.brandAnalysis(context.Background(), job)

	require.Error(t, err)
	assert.True(t, jobs.IsNonRetryable(err))
}

// The full path: a queued analysis job claimed by the worker ends up
// COMPLETED with one recorded analysis and its recommendations stored.
func TestWorkerRunsBrandAnalysisEndToEnd(t *testing.T) {
	d, analyses, sink := testDeps()

	payload, err := json.Marshal(BrandAnalysisPayload{
		ProfileData: &scoring.ProfileFacts{Headline: "Engineer"},
	})
	require.NoError(t, err)

	store := &memStore{jobs: []*jobs.Job{{
		ID:          11,
		UserID:      42,
		Type:        jobs.TypeBrandAnalysis,
		Payload:     payload,
		MaxAttempts: jobs.DefaultMaxAttempts,
		Status:      jobs.StatusPending,
	}}}

	w := &jobs.Worker{ID: "worker-test", Store: store, Handlers: Handlers(d)}
	require.NoError(t, w.ProcessNext(context.Background()))

	job := store.jobs[0]
	assert.Equal(t, jobs.StatusCompleted, job.Status)
	assert.NotEmpty(t, job.ResultData)

	require.Len(t, analyses.recorded, 1)
	// a profile with nothing but a headline trips most recommendation rules
	assert.NotEmpty(t, sink.stored)
	for _, ins := range sink.stored {
		assert.Equal(t, insights.TypeRecommendation, ins.Type)
	}
}

// memStore is a minimal in-memory jobs.Store for end-to-end handler tests.
type memStore struct {
	jobs []*jobs.Job
}

func (m *memStore) Enqueue(ctx context.Context, typ string, userID uint64, payload any, priority, maxAttempts int, scheduledAt time.Time) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (m *memStore) Claim(ctx context.Context, workerID string) (*jobs.Job, error) {
	for _, j := range m.jobs {
		if j.Status == jobs.StatusPending {
			j.Status = jobs.StatusProcessing
			return j, nil
		}
	}
	return nil, nil
}

func (m *memStore) MarkCompleted(ctx context.Context, id uint64, result []byte) error {
	for _, j := range m.jobs {
		if j.ID == id {
			j.Status = jobs.StatusCompleted
			j.ResultData = result
		}
	}
	return nil
}

func (m *memStore) MarkFailed(ctx context.Context, id uint64, attempts int, errMsg string) error {
	for _, j := range m.jobs {
		if j.ID == id {
			j.Status = jobs.StatusFailed
			j.Attempts = attempts
			j.ErrorMessage = &errMsg
		}
	}
	return nil
}

func (m *memStore) RetryLater(ctx context.Context, id uint64, attempts int, runAt time.Time, errMsg string) error {
	for _, j := range m.jobs {
		if j.ID == id {
			j.Status = jobs.StatusPending
			j.Attempts = attempts
			j.ScheduledAt = runAt
			j.ErrorMessage = &errMsg
		}
	}
	return nil
}

func (m *memStore) HasPending(ctx context.Context, userID uint64, typ string) (bool, error) {
	return false, nil
}
