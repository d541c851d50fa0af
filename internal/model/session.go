package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session backing the session cookie.
// The token is an opaque random value; expired rows are swept lazily on lookup.
type Session struct {
	BaseModel
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
