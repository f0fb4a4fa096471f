package entity

import (
	"time"

	"gorm.io/gorm"
)

// SessionRowID is the primary key of the one cached session row
const SessionRowID uint = 1

// Session is the locally cached bearer token for the remote ledger API
type Session struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	Token     string     `gorm:"type:text;not null" json:"-"`
	UserID    string     `gorm:"size:255" json:"user_id"`
	Email     string     `gorm:"size:255" json:"email"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate pins the row to the singleton ID
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	s.ID = SessionRowID
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// IsExpired reports whether the token is past its expiry
func (s *Session) IsExpired() bool {
	return s.ExpiresAt != nil && !time.Now().Before(*s.ExpiresAt)
}

// AuthUser is the account the remote API reports after login or verification
type AuthUser struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"email_verified"`
	VerifiedAt    *time.Time `json:"email_verified_at,omitempty"`
}

// AuthResult is returned by the remote API when it issues a session token
type AuthResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
