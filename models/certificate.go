package models

import (
	"time"

	"pb01/pkg/profilesync"
)

type Certificate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ProfileID  uint      `gorm:"index;not null" json:"profile_id"`
	Title      string    `gorm:"size:255" json:"title"`
	Issuer     string    `gorm:"size:255" json:"issuer"`
	IssueDate  Date      `json:"issue_date"`
	ExpiryDate Date      `json:"expiry_date"`
	Remark     string    `gorm:"size:512" json:"remark"`
}

func (Certificate) TableName() string   { return "pf_certificate" }
func (c *Certificate) RowID() uint      { return c.ID }
func (c *Certificate) SetRowID(id uint) { c.ID = id }

var CertificateCrud = profilesync.Descriptor[*Certificate]{
	Table: "pf_certificate",
	Values: func(c *Certificate) []any {
		return []any{c.Title, c.Issuer, c.IssueDate, c.ExpiryDate, c.Remark}
	},
}
