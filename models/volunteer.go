package models

import (
	"time"

	"pb01/pkg/profilesync"
)

// Volunteer mirrors Work for volunteering entries, including the ongoing
// flag semantics.
type Volunteer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ProfileID    uint      `gorm:"index;not null" json:"profile_id"`
	Organization string    `gorm:"size:255" json:"organization"`
	Role         string    `gorm:"size:255" json:"role"`
	StartMonth   Date      `json:"start_month"`
	EndMonth     Date      `json:"end_month"`
	Description  string    `gorm:"type:text" json:"description"`
	Remark       string    `gorm:"size:512" json:"remark"`
	IsPresent    bool      `gorm:"default:false;not null" json:"is_present"`
}

func (Volunteer) TableName() string   { return "pf_volunteer_experience" }
func (v *Volunteer) RowID() uint      { return v.ID }
func (v *Volunteer) SetRowID(id uint) { v.ID = id }

var VolunteerCrud = profilesync.Descriptor[*Volunteer]{
	Table: "pf_volunteer_experience",
	Values: func(v *Volunteer) []any {
		return []any{v.Organization, v.Role, v.StartMonth, v.EndMonth, v.Description, v.Remark, v.IsPresent}
	},
}
