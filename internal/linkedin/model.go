package linkedin

import "time"

// Connection holds the per-user OAuth tokens. One row per user, replaced
// on reconnect. Tokens are opaque; refresh is the client's problem.
type Connection struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"uniqueIndex;not null"`

	MemberID     string `gorm:"type:text;not null;default:''"`
	AccessToken  string `gorm:"type:text;not null"`
	RefreshToken string `gorm:"type:text;not null;default:''"`

	ExpiresAt time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Connection) TableName() string { return "linkedin_connections" }
