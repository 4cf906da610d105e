package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"cavreg/internal/diff"
	"cavreg/internal/models"
)

// SignatoryStore is the signatory table.
type SignatoryStore interface {
	Create(ctx context.Context, sig *models.Signatory) error
	FindByID(ctx context.Context, id string) (*models.Signatory, error)
	List(ctx context.Context, activeOnly bool) ([]models.Signatory, error)
	Update(ctx context.Context, sig *models.Signatory) error
	Delete(ctx context.Context, id string) error
}

// SignatoryInput carries the editable fields of a signatory.
type SignatoryInput struct {
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Active   bool   `json:"active"`
}

func (in SignatoryInput) fields() map[string]string {
	return map[string]string{
		"full_name": in.FullName,
		"position":  in.Position,
		"active":    strconv.FormatBool(in.Active),
	}
}

func signatorySnapshot(sig *models.Signatory) map[string]string {
	return map[string]string{
		"full_name": sig.FullName,
		"position":  sig.Position,
		"active":    strconv.FormatBool(sig.Active),
	}
}

const signatoryAuditTable = "signatories"

// SignatoryService manages the signatory roster with the same diff-and-audit
// discipline as the record lifecycle.
type SignatoryService struct {
	store SignatoryStore
	audit Auditor
}

func NewSignatoryService(store SignatoryStore, audit Auditor) *SignatoryService {
	return &SignatoryService{store: store, audit: audit}
}

func (s *SignatoryService) Create(ctx context.Context, actor models.Identity, in SignatoryInput) (*models.Signatory, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, &ValidationError{Missing: []string{"Full Name"}}
	}
	now := time.Now().UTC()
	sig := &models.Signatory{
		ID:        uuid.NewString(),
		FullName:  in.FullName,
		Position:  in.Position,
		Active:    in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, sig); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditCreated,
		Event:    fmt.Sprintf("Added signatory %s", sig.FullName),
		RecordID: sig.ID,
		Table:    signatoryAuditTable,
		NewData:  in.fields(),
	})
	return sig, nil
}

func (s *SignatoryService) Get(ctx context.Context, id string) (*models.Signatory, error) {
	sig, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sig == nil {
		return nil, ErrNotFound
	}
	return sig, nil
}

func (s *SignatoryService) List(ctx context.Context, activeOnly bool) ([]models.Signatory, error) {
	return s.store.List(ctx, activeOnly)
}

func (s *SignatoryService) Update(ctx context.Context, actor models.Identity, id string, in SignatoryInput) (*models.Signatory, error) {
	sig, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sig == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, &ValidationError{Missing: []string{"Full Name"}}
	}

	oldChanged, newChanged := diff.Changed(signatorySnapshot(sig), in.fields())
	if newChanged == nil {
		return sig, nil
	}

	sig.FullName = in.FullName
	sig.Position = in.Position
	sig.Active = in.Active
	sig.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, sig); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditUpdated,
		Event:    fmt.Sprintf("Updated signatory %s", sig.FullName),
		RecordID: sig.ID,
		Table:    signatoryAuditTable,
		OldData:  oldChanged,
		NewData:  newChanged,
	})
	return sig, nil
}

func (s *SignatoryService) Delete(ctx context.Context, actor models.Identity, id string) error {
	sig, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sig == nil {
		return ErrNotFound
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditDeleted,
		Event:    fmt.Sprintf("Removed signatory %s", sig.FullName),
		RecordID: id,
		Table:    signatoryAuditTable,
	})
	return nil
}
