package models

import (
	"time"
)

// User model. Accounts register inactive and must be activated by an
// administrator before login succeeds.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `gorm:"index" json:"-"`
	Email          string     `gorm:"size:255;not null;unique" json:"email"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	HashedPassword []byte     `gorm:"not null" json:"-"`
	IsActive       bool       `gorm:"default:false;not null" json:"is_active"`
	Profiles       []Profile  `gorm:"foreignKey:UserID" json:"-"`
	RoleID         *uint      `gorm:"index" json:"role_id"`
	Role           Role       `gorm:"foreignKey:RoleID;references:ID" json:"-"`
}
