package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"brandpulse/internal/scoring"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

// GetSettings returns the user's settings, or an inactive default when the
// user never configured monitoring.
func (s *Service) GetSettings(ctx context.Context, userID uint64) (*Settings, error) {
	var st Settings
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Settings{
			UserID:         userID,
			ScanFrequency:  FrequencyWeekly,
			AlertFrequency: FrequencyWeekly,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// UpsertSettings replaces the per-user singleton.
func (s *Service) UpsertSettings(ctx context.Context, st *Settings) error {
	st.UpdatedAt = time.Now()
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"platforms", "keywords", "scan_frequency", "alert_frequency",
			"is_active", "updated_at",
		}),
	}).Create(st).Error
}

// RecordScan writes one immutable reputation scan row.
func (s *Service) RecordScan(ctx context.Context, userID uint64, sub scoring.ReputationSubScores, overall int, mentions []scoring.Mention) (*Scan, error) {
	raw, err := json.Marshal(mentions)
	if err != nil {
		return nil, err
	}
	if mentions == nil {
		raw = []byte("[]")
	}

	scan := Scan{
		UserID:          userID,
		OverallScore:    overall,
		SentimentScore:  sub.Sentiment,
		VisibilityScore: sub.Visibility,
		AuthorityScore:  sub.Authority,
		FreshnessScore:  sub.Freshness,
		MentionCount:    len(mentions),
		Mentions:        raw,
	}
	if err := s.DB.WithContext(ctx).Create(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

// TouchLastScan stamps the settings row after a completed scan.
func (s *Service) TouchLastScan(ctx context.Context, userID uint64, at time.Time) error {
	return s.DB.WithContext(ctx).Model(&Settings{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"last_scan_at": at,
			"updated_at":   time.Now(),
		}).Error
}

// ActiveDue returns active settings on the given frequency whose last scan
// is older than the window (or that never scanned).
func (s *Service) ActiveDue(ctx context.Context, frequency string, window time.Duration) ([]Settings, error) {
	cutoff := time.Now().Add(-window)
	var rows []Settings
	err := s.DB.WithContext(ctx).
		Where("is_active = true AND scan_frequency = ?", frequency).
		Where("last_scan_at IS NULL OR last_scan_at < ?", cutoff).
		Find(&rows).Error
	return rows, err
}
