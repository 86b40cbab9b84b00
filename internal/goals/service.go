package goals

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("goal not found")

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	GoalType     string
	TargetValue  float64
	CurrentValue float64
	Deadline     *time.Time
}

func (s *Service) Create(ctx context.Context, userID uint64, in CreateInput) (*Goal, error) {
	g := Goal{
		UserID:       userID,
		GoalType:     in.GoalType,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		Deadline:     in.Deadline,
	}
	if err := s.DB.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Service) List(ctx context.Context, userID uint64) ([]Goal, error) {
	var rows []Goal
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

// Open returns goals not yet marked achieved.
func (s *Service) Open(ctx context.Context, userID uint64) ([]Goal, error) {
	var rows []Goal
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND achieved_at IS NULL", userID).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

func (s *Service) UpdateProgress(ctx context.Context, userID, id uint64, currentValue float64) (*Goal, error) {
	res := s.DB.WithContext(ctx).Model(&Goal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"current_value": currentValue,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var g Goal
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// Complete sets achieved_at. Completing an already-completed goal keeps the
// original timestamp.
func (s *Service) Complete(ctx context.Context, userID, id uint64) (*Goal, error) {
	var g Goal
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if g.AchievedAt == nil {
		now := time.Now()
		if err := s.DB.WithContext(ctx).Model(&g).Updates(map[string]any{
			"achieved_at": now,
			"updated_at":  now,
		}).Error; err != nil {
			return nil, err
		}
		g.AchievedAt = &now
	}
	return &g, nil
}

// DueAchievements returns open goals whose current value has crossed the
// target and which the achievement check has not congratulated yet.
func (s *Service) DueAchievements(ctx context.Context, userID uint64) ([]Goal, error) {
	var rows []Goal
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND achieved_at IS NULL AND notified_at IS NULL AND current_value >= target_value", userID).
		Find(&rows).Error
	return rows, err
}

func (s *Service) MarkNotified(ctx context.Context, id uint64) error {
	return s.DB.WithContext(ctx).Model(&Goal{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"notified_at": time.Now(),
			"updated_at":  time.Now(),
		}).Error
}

// UsersWithOpenGoals lists distinct users eligible for the achievement check.
func (s *Service) UsersWithOpenGoals(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.DB.WithContext(ctx).Model(&Goal{}).
		Where("achieved_at IS NULL").
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
