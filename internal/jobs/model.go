package jobs

import "time"

// Job statuses. PENDING and PROCESSING are transient; COMPLETED and FAILED
// are terminal.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Job types the dispatcher knows. Anything else fails immediately without
// retry.
const (
	TypeDailySync        = "daily-data-sync"
	TypeWeeklyInsight    = "weekly-insight-generation"
	TypeMonthlyReview    = "monthly-review-generation"
	TypeBrandAnalysis    = "brand-analysis"
	TypeAchievementCheck = "achievement-check"
	TypeReputationScan   = "reputation-scan"
)

// DefaultMaxAttempts bounds retries when the caller doesn't say otherwise.
const DefaultMaxAttempts = 3

type Job struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	Type    string `gorm:"type:text;not null"`
	Payload []byte `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	Priority    int `gorm:"not null;default:0"`
	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:3"`

	ScheduledAt time.Time `gorm:"index;not null"`
	Status      string    `gorm:"index;not null;default:'PENDING'"`

	ResultData   []byte  `gorm:"type:jsonb"`
	ErrorMessage *string `gorm:"type:text"`

	// Claim lease. Set while PROCESSING so a crashed worker's jobs can be
	// requeued after the lease window.
	LockedBy *string    `gorm:"type:text"`
	LockedAt *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
