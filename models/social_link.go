package models

import (
	"time"

	"pb01/pkg/profilesync"
)

type SocialLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ProfileID uint      `gorm:"index;not null" json:"profile_id"`
	Platform  string    `gorm:"size:128" json:"platform"`
	URL       string    `gorm:"size:512" json:"url"`
	Remark    string    `gorm:"size:512" json:"remark"`
}

func (SocialLink) TableName() string   { return "pf_social_link" }
func (s *SocialLink) RowID() uint      { return s.ID }
func (s *SocialLink) SetRowID(id uint) { s.ID = id }

var SocialLinkCrud = profilesync.Descriptor[*SocialLink]{
	Table: "pf_social_link",
	Values: func(s *SocialLink) []any {
		return []any{s.Platform, s.URL, s.Remark}
	},
}
