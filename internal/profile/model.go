package profile

import (
	"time"

	"github.com/lib/pq"
)

// Profile is the per-user LinkedIn snapshot, refreshed by the daily data
// sync. One row per user, overwritten in place.
type Profile struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"uniqueIndex;not null"`

	Headline string `gorm:"type:text;not null;default:''"`
	Summary  string `gorm:"type:text;not null;default:''"`
	Industry string `gorm:"type:text;not null;default:''"`

	ExperienceCount int `gorm:"not null;default:0"`
	SkillCount      int `gorm:"not null;default:0"`
	ConnectionCount int `gorm:"not null;default:0"`
	RecentPostCount int `gorm:"not null;default:0"`

	AvgLikes       float64 `gorm:"not null;default:0"`
	AvgComments    float64 `gorm:"not null;default:0"`
	EngagementRate float64 `gorm:"not null;default:0"`

	Keywords pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	SyncedAt  time.Time `gorm:"not null;default:now()"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
