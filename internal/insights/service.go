package insights

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("insight not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Service struct {
	DB *gorm.DB
}

// Store persists a batch of generated insights for one user.
func (s *Service) Store(ctx context.Context, userID uint64, items []Insight) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	for i := range items {
		items[i].UserID = userID
		if items[i].GeneratedAt.IsZero() {
			items[i].GeneratedAt = now
		}
	}
	return s.DB.WithContext(ctx).Create(&items).Error
}

func (s *Service) List(ctx context.Context, userID uint64, typ string, limit int) ([]Insight, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}

	var rows []Insight
	err := q.Order("generated_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// MarkRead is idempotent: marking an already-read insight succeeds and
// leaves is_read true.
func (s *Service) MarkRead(ctx context.Context, userID, id uint64) error {
	res := s.DB.WithContext(ctx).Model(&Insight{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish "already read" (a no-op update still affects the row in
		// Postgres) from "not yours / not there".
		var n int64
		if err := s.DB.WithContext(ctx).Model(&Insight{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (s *Service) Feedback(ctx context.Context, userID, id uint64, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	res := s.DB.WithContext(ctx).Model(&Insight{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("user_feedback", rating)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
