package models

import (
	"time"

	"pb01/pkg/profilesync"
)

type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ProfileID uint      `gorm:"index;not null" json:"profile_id"`
	Skill     string    `gorm:"size:255" json:"skill"`
	Level     string    `gorm:"size:128" json:"level"`
	Remark    string    `gorm:"size:512" json:"remark"`
}

func (Skill) TableName() string   { return "pf_skill" }
func (s *Skill) RowID() uint      { return s.ID }
func (s *Skill) SetRowID(id uint) { s.ID = id }

var SkillCrud = profilesync.Descriptor[*Skill]{
	Table: "pf_skill",
	Values: func(s *Skill) []any {
		return []any{s.Skill, s.Level, s.Remark}
	},
}
