package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cavreg/internal/diff"
	"cavreg/internal/models"
)

// FormStore is the record table.
type FormStore interface {
	Create(ctx context.Context, form *models.CAVForm) error
	FindByID(ctx context.Context, id string) (*models.CAVForm, error)
	List(ctx context.Context, archived bool) ([]models.CAVForm, error)
	Update(ctx context.Context, form *models.CAVForm) error
	SetArchived(ctx context.Context, id string, archived bool) error
	Delete(ctx context.Context, id string) error
}

// SignatoryDirectory resolves signatory references at render time.
type SignatoryDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Signatory, error)
}

// Auditor receives one record per mutation; implementations must never fail
// the caller.
type Auditor interface {
	Record(ctx context.Context, actor models.Identity, rec AuditRecord)
}

// Renderer produces the print artifact for a record.
type Renderer interface {
	Render(form *models.CAVForm, prepared, submitted *models.Signatory) ([]byte, error)
}

// FormService drives the record lifecycle: validate, persist, diff, audit.
// Store errors abort before any side effect; audit runs only after the
// primary mutation succeeded.
type FormService struct {
	forms       FormStore
	signatories SignatoryDirectory
	audit       Auditor
	renderer    Renderer
}

func NewFormService(forms FormStore, signatories SignatoryDirectory, audit Auditor, renderer Renderer) *FormService {
	return &FormService{forms: forms, signatories: signatories, audit: audit, renderer: renderer}
}

func (s *FormService) Create(ctx context.Context, actor models.Identity, in models.FormInput) (*models.CAVForm, error) {
	if missing := in.MissingRequired(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	now := time.Now().UTC()
	form := &models.CAVForm{
		ID:        uuid.NewString(),
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(form)

	if err := s.forms.Create(ctx, form); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditCreated,
		Event:    fmt.Sprintf("Created CAV form for %s", form.FullLegalName),
		RecordID: form.ID,
		NewData:  in.Fields(),
	})
	return form, nil
}

func (s *FormService) Get(ctx context.Context, id string) (*models.CAVForm, error) {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	return form, nil
}

func (s *FormService) List(ctx context.Context, archived bool) ([]models.CAVForm, error) {
	return s.forms.List(ctx, archived)
}

func (s *FormService) Update(ctx context.Context, actor models.Identity, id string, in models.FormInput) (*models.CAVForm, error) {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	if missing := in.MissingRequired(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	oldChanged, newChanged := diff.Changed(form.Snapshot(), in.Fields())
	if newChanged == nil {
		// Nothing changed: leave the row (and updated_at) untouched and
		// write no audit entry.
		return form, nil
	}

	in.Apply(form)
	form.UpdatedAt = time.Now().UTC()
	if err := s.forms.Update(ctx, form); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditUpdated,
		Event:    fmt.Sprintf("Updated CAV form for %s", form.FullLegalName),
		RecordID: form.ID,
		OldData:  oldChanged,
		NewData:  newChanged,
	})
	return form, nil
}

func (s *FormService) Archive(ctx context.Context, actor models.Identity, id string) error {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrNotFound
	}
	if form.IsArchived {
		return ErrAlreadyArchived
	}
	if err := s.forms.SetArchived(ctx, id, true); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditArchived,
		Event:    fmt.Sprintf("Archived form for %s", form.FullLegalName),
		RecordID: id,
	})
	return nil
}

func (s *FormService) Restore(ctx context.Context, actor models.Identity, id string) error {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrNotFound
	}
	if !form.IsArchived {
		return ErrNotArchived
	}
	if err := s.forms.SetArchived(ctx, id, false); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditRestored,
		Event:    fmt.Sprintf("Restored archived form for %s", form.FullLegalName),
		RecordID: id,
	})
	return nil
}

// Delete hard-deletes an archived record. The id is terminal afterwards.
func (s *FormService) Delete(ctx context.Context, actor models.Identity, id string) error {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrNotFound
	}
	if !form.IsArchived {
		return ErrNotArchived
	}
	if err := s.forms.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, AuditRecord{
		Action:   models.AuditDeleted,
		Event:    fmt.Sprintf("Deleted archived form for %s", form.FullLegalName),
		RecordID: id,
	})
	return nil
}

// BulkRestore restores records one at a time. A failure stops the loop;
// earlier records stay restored and the count of completed items is
// returned with the error.
func (s *FormService) BulkRestore(ctx context.Context, actor models.Identity, ids []string) (int, error) {
	for i, id := range ids {
		if err := s.Restore(ctx, actor, id); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}

// BulkDelete deletes archived records one at a time, with the same partial
// failure behavior as BulkRestore.
func (s *FormService) BulkDelete(ctx context.Context, actor models.Identity, ids []string) (int, error) {
	for i, id := range ids {
		if err := s.Delete(ctx, actor, id); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}

// Document renders the certificate for one record, resolving the optional
// signatory references first.
func (s *FormService) Document(ctx context.Context, id string) ([]byte, error) {
	form, err := s.forms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	prepared := s.lookupSignatory(ctx, form.PreparedBy)
	submitted := s.lookupSignatory(ctx, form.SubmittedBy)
	return s.renderer.Render(form, prepared, submitted)
}

// lookupSignatory resolves an optional signatory reference. A missing or
// failed lookup leaves the block blank on the document rather than failing
// the render.
func (s *FormService) lookupSignatory(ctx context.Context, id string) *models.Signatory {
	if id == "" {
		return nil
	}
	sig, err := s.signatories.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return sig
}
