package models

import (
	"time"

	"pb01/pkg/profilesync"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProfileID   uint      `gorm:"index;not null" json:"profile_id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Link        string    `gorm:"size:512" json:"link"`
	Remark      string    `gorm:"size:512" json:"remark"`
}

func (Project) TableName() string   { return "pf_project" }
func (p *Project) RowID() uint      { return p.ID }
func (p *Project) SetRowID(id uint) { p.ID = id }

var ProjectCrud = profilesync.Descriptor[*Project]{
	Table: "pf_project",
	Values: func(p *Project) []any {
		return []any{p.Title, p.Description, p.Link, p.Remark}
	},
}
