package brand

import (
	"context"
	"errors"

	"brandpulse/internal/scoring"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("analysis not found")

type Service struct {
	DB *gorm.DB
}

// Record writes one immutable analysis row from computed scores.
func (s *Service) Record(ctx context.Context, userID uint64, sub scoring.BrandSubScores, overall int) (*Analysis, error) {
	a := Analysis{
		UserID:            userID,
		OverallScore:      overall,
		CompletenessScore: sub.Completeness,
		KeywordScore:      sub.Keyword,
		EngagementScore:   sub.Engagement,
		PresenceScore:     sub.Presence,
		NetworkScore:      sub.Network,
	}
	if err := s.DB.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Get returns the analysis only when it exists and belongs to the user.
func (s *Service) Get(ctx context.Context, userID, id uint64) (*Analysis, error) {
	var a Analysis
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Latest returns the newest analysis, or nil when the user has none.
func (s *Service) Latest(ctx context.Context, userID uint64) (*Analysis, error) {
	var a Analysis
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Recent returns up to n analyses, newest first.
func (s *Service) Recent(ctx context.Context, userID uint64, n int) ([]Analysis, error) {
	var rows []Analysis
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(n).
		Find(&rows).Error
	return rows, err
}
