package service

import (
	"context"
	"errors"
	"testing"

	"cavreg/internal/models"
)

type memSignatoryStore struct {
	sigs    map[string]*models.Signatory
	updates int
}

func newMemSignatoryStore() *memSignatoryStore {
	return &memSignatoryStore{sigs: map[string]*models.Signatory{}}
}

func (s *memSignatoryStore) Create(_ context.Context, sig *models.Signatory) error {
	cp := *sig
	s.sigs[sig.ID] = &cp
	return nil
}

func (s *memSignatoryStore) FindByID(_ context.Context, id string) (*models.Signatory, error) {
	sig, ok := s.sigs[id]
	if !ok {
		return nil, nil
	}
	cp := *sig
	return &cp, nil
}

func (s *memSignatoryStore) List(_ context.Context, activeOnly bool) ([]models.Signatory, error) {
	var out []models.Signatory
	for _, sig := range s.sigs {
		if activeOnly && !sig.Active {
			continue
		}
		out = append(out, *sig)
	}
	return out, nil
}

func (s *memSignatoryStore) Update(_ context.Context, sig *models.Signatory) error {
	s.updates++
	cp := *sig
	s.sigs[sig.ID] = &cp
	return nil
}

func (s *memSignatoryStore) Delete(_ context.Context, id string) error {
	delete(s.sigs, id)
	return nil
}

func TestSignatoryCreateAndAudit(t *testing.T) {
	store := newMemSignatoryStore()
	audits := &stubAuditStore{}
	svc := NewSignatoryService(store, NewAuditRecorder(audits))

	sig, err := svc.Create(context.Background(), testActor, SignatoryInput{
		FullName: "Maria Santos",
		Position: "Registrar II",
		Active:   true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sig.ID == "" {
		t.Fatal("id not generated")
	}
	if len(audits.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audits.entries))
	}
	if audits.entries[0].Table != "signatories" {
		t.Fatalf("audit entry in wrong table %q", audits.entries[0].Table)
	}
}

func TestSignatoryCreateRequiresName(t *testing.T) {
	svc := NewSignatoryService(newMemSignatoryStore(), NewAuditRecorder(&stubAuditStore{}))

	_, err := svc.Create(context.Background(), testActor, SignatoryInput{FullName: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSignatoryUpdateNoChangeSkipsAudit(t *testing.T) {
	store := newMemSignatoryStore()
	audits := &stubAuditStore{}
	svc := NewSignatoryService(store, NewAuditRecorder(audits))

	in := SignatoryInput{FullName: "Maria Santos", Position: "Registrar II", Active: true}
	sig, err := svc.Create(context.Background(), testActor, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), testActor, sig.ID, in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.updates != 0 {
		t.Fatal("no-op update reached the store")
	}
	if len(audits.entries) != 1 {
		t.Fatalf("expected only the create entry, got %d", len(audits.entries))
	}
}

func TestSignatoryUpdateAuditsChangedFields(t *testing.T) {
	store := newMemSignatoryStore()
	audits := &stubAuditStore{}
	svc := NewSignatoryService(store, NewAuditRecorder(audits))

	sig, _ := svc.Create(context.Background(), testActor, SignatoryInput{
		FullName: "Maria Santos", Position: "Registrar II", Active: true,
	})

	updated, err := svc.Update(context.Background(), testActor, sig.ID, SignatoryInput{
		FullName: "Maria Santos", Position: "Registrar III", Active: true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Position != "Registrar III" {
		t.Fatalf("position not applied: %q", updated.Position)
	}

	e := audits.entries[1]
	if want := `{"position":"Registrar II"}`; string(e.OldData) != want {
		t.Fatalf("old_data = %s", e.OldData)
	}
	if want := `{"position":"Registrar III"}`; string(e.NewData) != want {
		t.Fatalf("new_data = %s", e.NewData)
	}
}

func TestSignatoryDelete(t *testing.T) {
	store := newMemSignatoryStore()
	audits := &stubAuditStore{}
	svc := NewSignatoryService(store, NewAuditRecorder(audits))

	sig, _ := svc.Create(context.Background(), testActor, SignatoryInput{FullName: "Maria Santos", Active: true})

	if err := svc.Delete(context.Background(), testActor, sig.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.sigs[sig.ID]; ok {
		t.Fatal("signatory still present")
	}
	if err := svc.Delete(context.Background(), testActor, sig.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	last := audits.entries[len(audits.entries)-1]
	if last.Action != models.AuditDeleted || last.Table != "signatories" {
		t.Fatalf("unexpected final entry %+v", last)
	}
}
