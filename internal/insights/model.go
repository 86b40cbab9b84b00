package insights

import (
	"time"

	"github.com/lib/pq"
)

// Insight types. Recommendations come out of a brand analysis; the others
// out of the recurring generation jobs.
const (
	TypeRecommendation = "recommendation"
	TypeWeekly         = "weekly-insight"
	TypeMonthlyReview  = "monthly-review"
	TypeAchievement    = "achievement"
)

// Insight is a generated, user-facing suggestion. Rows are written once by
// a generator; only is_read and user_feedback mutate afterwards.
type Insight struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	Type     string `gorm:"index;not null"`
	Category string `gorm:"type:text;not null;default:''"`
	Title    string `gorm:"type:text;not null"`
	Content  string `gorm:"type:text;not null"`

	ActionItems   pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	PriorityScore int            `gorm:"not null;default:0"`

	GeneratedAt  time.Time `gorm:"index;not null;default:now()"`
	IsRead       bool      `gorm:"not null;default:false"`
	UserFeedback *int
}
