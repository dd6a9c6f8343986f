package model

import (
	"time"
)

// PasswordReset stores a single-use password recovery token.
type PasswordReset struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// IsValid reports whether the token can still be redeemed.
func (p *PasswordReset) IsValid() bool {
	return p.UsedAt == nil && time.Now().Before(p.ExpiresAt)
}
