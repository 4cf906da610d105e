package models

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditCreated  AuditAction = "created"
	AuditUpdated  AuditAction = "updated"
	AuditArchived AuditAction = "archived"
	AuditRestored AuditAction = "restored"
	AuditDeleted  AuditAction = "deleted"
)

// AuditEntry rows are append-only; nothing in the application updates or
// deletes them. OldData and NewData hold only the fields that changed.
type AuditEntry struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	Action    AuditAction     `gorm:"not null" json:"action"`
	Event     string          `json:"event"`
	Table     string          `gorm:"column:table_name;not null" json:"table_name"`
	RecordID  string          `gorm:"index" json:"record_id"`
	UserID    string          `json:"user_id"`
	UserEmail string          `json:"user_email"`
	OldData   json.RawMessage `gorm:"type:jsonb" json:"old_data,omitempty"`
	NewData   json.RawMessage `gorm:"type:jsonb" json:"new_data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (AuditEntry) TableName() string { return "audit_logs" }
