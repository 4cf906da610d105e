package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"cavreg/internal/models"
)

// AuditStore is the append-only audit table.
type AuditStore interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
}

// AuditRecord carries the caller-supplied fields of one audit entry. Table
// defaults to the records table when empty; OldData and NewData hold only the
// fields that changed.
type AuditRecord struct {
	Action   models.AuditAction
	Event    string
	RecordID string
	Table    string
	OldData  map[string]string
	NewData  map[string]string
}

const defaultAuditTable = "cav_forms"

// AuditRecorder appends one immutable entry per mutating operation. Writes
// are advisory: a failed or unattributable write is logged and dropped, never
// surfaced to the caller or allowed to abort the primary mutation.
type AuditRecorder struct {
	Store AuditStore
	Clock func() time.Time
}

func NewAuditRecorder(store AuditStore) *AuditRecorder {
	return &AuditRecorder{Store: store}
}

// Record writes one audit entry attributed to actor. A zero actor means the
// session could not be resolved; the entry is skipped rather than written
// unattributed.
func (r *AuditRecorder) Record(ctx context.Context, actor models.Identity, rec AuditRecord) {
	if actor.IsZero() {
		return
	}
	table := rec.Table
	if table == "" {
		table = defaultAuditTable
	}
	entry := &models.AuditEntry{
		ID:        uuid.NewString(),
		Action:    rec.Action,
		Event:     rec.Event,
		Table:     table,
		RecordID:  rec.RecordID,
		UserID:    actor.UserID,
		UserEmail: actor.Email,
		OldData:   marshalSnapshot(rec.OldData),
		NewData:   marshalSnapshot(rec.NewData),
		CreatedAt: r.now().UTC(),
	}
	if err := r.Store.Append(ctx, entry); err != nil {
		log.Printf("audit insert failed: %v", err)
	}
}

func (r *AuditRecorder) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now()
}

func marshalSnapshot(fields map[string]string) json.RawMessage {
	if fields == nil {
		return nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return data
}
