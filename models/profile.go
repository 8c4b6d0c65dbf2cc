package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Contact is the structured contact blob stored on the profile row as
// jsonb. A missing or malformed column scans to four empty strings so the
// editor never sees null here.
type Contact struct {
	Telephone string `json:"telephone"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

func (c Contact) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Contact) Scan(v any) error {
	*c = Contact{}
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		if len(t) == 0 {
			return nil
		}
		if err := json.Unmarshal(t, c); err != nil {
			*c = Contact{}
		}
		return nil
	case string:
		if t == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(t), c); err != nil {
			*c = Contact{}
		}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Contact", v)
	}
}

// Profile is the parent portfolio row. Profiles are never hard-deleted;
// IsDeleted hides them from every read path.
type Profile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PfName       string    `gorm:"size:255;not null" json:"pf_name"` // profile label shown in lists
	Name         string    `gorm:"size:255" json:"name"`
	JobTitle     string    `gorm:"size:255" json:"job_title"`
	Tagline      string    `gorm:"size:512" json:"tagline"`
	Location     string    `gorm:"size:255" json:"location"`
	Introduction string    `gorm:"type:text" json:"introduction"`
	PhotoPath    *string   `gorm:"size:512" json:"photo_path"`
	IsPublic     bool      `gorm:"default:false;not null" json:"is_public"`
	IsDeleted    bool      `gorm:"default:false;not null;index" json:"is_deleted"`
	Contact      Contact   `gorm:"type:jsonb" json:"contact"`
}
