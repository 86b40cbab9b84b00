package monitor

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Scan frequencies accepted in settings.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Settings is the per-user monitoring configuration singleton.
type Settings struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"uniqueIndex;not null"`

	Platforms pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Keywords  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	ScanFrequency  string `gorm:"not null;default:'weekly'"`
	AlertFrequency string `gorm:"not null;default:'weekly'"`
	IsActive       bool   `gorm:"not null;default:false"`

	LastScanAt *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Settings) TableName() string { return "monitoring_settings" }

// Scan is one reputation score record. Append-only, like brand analyses.
// The classified mentions that produced the scores are kept alongside for
// the dashboard's mention list.
type Scan struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	OverallScore int `gorm:"not null"`

	SentimentScore  float64 `gorm:"not null"`
	VisibilityScore float64 `gorm:"not null"`
	AuthorityScore  float64 `gorm:"not null"`
	FreshnessScore  float64 `gorm:"not null"`

	MentionCount int             `gorm:"not null;default:0"`
	Mentions     json.RawMessage `gorm:"type:jsonb;not null;default:'[]'::jsonb"`

	CreatedAt time.Time `gorm:"index;not null;default:now()"`
}

func (Scan) TableName() string { return "reputation_scans" }
