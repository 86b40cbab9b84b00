package brand

import "time"

// Analysis is one brand score record. Rows are append-only: history is the
// sequence of a user's analyses ordered by created_at, and no row is ever
// rewritten after insert.
type Analysis struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	OverallScore int `gorm:"not null"`

	CompletenessScore float64 `gorm:"not null"`
	KeywordScore      float64 `gorm:"not null"`
	EngagementScore   float64 `gorm:"not null"`
	PresenceScore     float64 `gorm:"not null"`
	NetworkScore      float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"index;not null;default:now()"`
}

func (Analysis) TableName() string { return "brand_analyses" }
