package profile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB *gorm.DB
}

// Get returns the user's profile snapshot, or nil if none was synced yet.
// "No profile yet" is a valid state, not an error.
func (s *Service) Get(ctx context.Context, userID uint64) (*Profile, error) {
	var p Profile
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert replaces the user's snapshot, keyed by user_id.
func (s *Service) Upsert(ctx context.Context, p *Profile) error {
	p.SyncedAt = time.Now()
	p.UpdatedAt = time.Now()
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"headline", "summary", "industry",
			"experience_count", "skill_count", "connection_count", "recent_post_count",
			"avg_likes", "avg_comments", "engagement_rate",
			"keywords", "synced_at", "updated_at",
		}),
	}).Create(p).Error
}
