package goals

import "time"

// Goal is a user-defined target. current_value moves via progress reports;
// achieved_at is set only by an explicit complete call, never automatically
// when the target is crossed. The achievement check emits an insight when a
// goal crosses its target so the user can confirm completion.
type Goal struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	GoalType     string  `gorm:"type:text;not null"`
	TargetValue  float64 `gorm:"not null"`
	CurrentValue float64 `gorm:"not null;default:0"`

	Deadline   *time.Time `gorm:"type:timestamptz"`
	AchievedAt *time.Time `gorm:"type:timestamptz"`

	// NotifiedAt records when the achievement check last congratulated this
	// goal, so the daily run does not repeat itself.
	NotifiedAt *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
