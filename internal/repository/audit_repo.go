package repository

import (
	"context"

	"gorm.io/gorm"

	"cavreg/internal/models"
)

// AuditRepo appends to and reads from the append-only audit table. There is
// deliberately no update or delete.
type AuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Append(ctx context.Context, entry *models.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns entries newest first. Concurrent writers may interleave, so
// display order comes from the timestamp, not insertion order. recordID is
// optional.
func (r *AuditRepo) List(ctx context.Context, recordID string) ([]models.AuditEntry, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if recordID != "" {
		q = q.Where("record_id = ?", recordID)
	}
	var entries []models.AuditEntry
	err := q.Find(&entries).Error
	return entries, err
}

func (r *AuditRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AuditEntry{}).Count(&n).Error
	return n, err
}
