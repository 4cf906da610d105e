package models

import "time"

// Signatory is a staff member who can appear in the "Prepared by" or
// "Submitted by" block of a certificate. Records reference signatories by id
// and resolve them at render time, never embed them.
type Signatory struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Position  string    `json:"position"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Signatory) TableName() string { return "signatories" }
