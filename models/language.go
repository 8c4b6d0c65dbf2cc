package models

import (
	"time"

	"pb01/pkg/profilesync"
)

type Language struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProfileID   uint      `gorm:"index;not null" json:"profile_id"`
	Language    string    `gorm:"size:128" json:"language"`
	Proficiency string    `gorm:"size:128" json:"proficiency"`
	Remark      string    `gorm:"size:512" json:"remark"`
}

func (Language) TableName() string   { return "pf_language" }
func (l *Language) RowID() uint      { return l.ID }
func (l *Language) SetRowID(id uint) { l.ID = id }

var LanguageCrud = profilesync.Descriptor[*Language]{
	Table: "pf_language",
	Values: func(l *Language) []any {
		return []any{l.Language, l.Proficiency, l.Remark}
	},
}
