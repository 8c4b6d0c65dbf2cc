package models

import "time"

// Role is a master table (admin, user)
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:64;not null;unique" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
}
