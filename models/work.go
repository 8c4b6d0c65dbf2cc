package models

import (
	"time"

	"pb01/pkg/profilesync"
)

// Work is one employment entry. IsPresent marks an ongoing position; the
// save path clears EndMonth whenever it is set.
type Work struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProfileID   uint      `gorm:"index;not null" json:"profile_id"`
	Company     string    `gorm:"size:255" json:"company"`
	Position    string    `gorm:"size:255" json:"position"`
	StartMonth  Date      `json:"start_month"`
	EndMonth    Date      `json:"end_month"`
	Description string    `gorm:"type:text" json:"description"`
	Remark      string    `gorm:"size:512" json:"remark"`
	Location    string    `gorm:"size:255" json:"location"`
	IsPresent   bool      `gorm:"default:false;not null" json:"is_present"`
}

func (Work) TableName() string   { return "pf_work_experience" }
func (w *Work) RowID() uint      { return w.ID }
func (w *Work) SetRowID(id uint) { w.ID = id }

var WorkCrud = profilesync.Descriptor[*Work]{
	Table: "pf_work_experience",
	Values: func(w *Work) []any {
		return []any{w.Company, w.Position, w.StartMonth, w.EndMonth, w.Description, w.Remark, w.Location, w.IsPresent}
	},
}
