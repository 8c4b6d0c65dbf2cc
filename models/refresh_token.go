package models

import "time"

// RefreshToken stores only the SHA-256 hash of the issued token.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint      `gorm:"index;not null"`
	TokenHash string    `gorm:"size:128;uniqueIndex;not null"`
	ExpiresAt time.Time
	Revoked   bool      `gorm:"default:false"`
}
