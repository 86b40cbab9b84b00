package linkedin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotConnected = errors.New("linkedin account not connected")

type Service struct {
	DB *gorm.DB
}

// Connection returns the user's stored tokens.
func (s *Service) Connection(ctx context.Context, userID uint64) (*Connection, error) {
	var c Connection
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveConnection replaces the user's tokens, keyed by user_id.
func (s *Service) SaveConnection(ctx context.Context, c *Connection) error {
	c.UpdatedAt = time.Now()
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"member_id", "access_token", "refresh_token", "expires_at", "updated_at",
		}),
	}).Create(c).Error
}

// ConnectedUsers lists users with a stored connection, for the recurring
// sync trigger.
func (s *Service) ConnectedUsers(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.DB.WithContext(ctx).Model(&Connection{}).
		Pluck("user_id", &ids).Error
	return ids, err
}
