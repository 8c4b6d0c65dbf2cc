package models

import (
	"time"

	"pb01/pkg/profilesync"
)

// Education child rows of a profile (one school entry each).
type Education struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ProfileID    uint      `gorm:"index;not null" json:"profile_id"`
	Institution  string    `gorm:"size:255" json:"institution"`
	Degree       string    `gorm:"size:255" json:"degree"`
	FieldOfStudy string    `gorm:"size:255" json:"field_of_study"`
	StartMonth   Date      `json:"start_month"`
	EndMonth     Date      `json:"end_month"`
	Remark       string    `gorm:"size:512" json:"remark"`
	Location     string    `gorm:"size:255" json:"location"`
}

func (Education) TableName() string   { return "pf_education" }
func (e *Education) RowID() uint      { return e.ID }
func (e *Education) SetRowID(id uint) { e.ID = id }

// EducationCrud binds Education to the synchronization engine. Value order
// follows the column registry (profile_id excluded).
var EducationCrud = profilesync.Descriptor[*Education]{
	Table: "pf_education",
	Values: func(e *Education) []any {
		return []any{e.Institution, e.Degree, e.FieldOfStudy, e.StartMonth, e.EndMonth, e.Remark, e.Location}
	},
}
