package service

import (
	"context"
	"errors"
	"testing"

	"cavreg/internal/models"
)

type memFormStore struct {
	forms   map[string]*models.CAVForm
	updates int
	failID  string
}

func newMemFormStore() *memFormStore {
	return &memFormStore{forms: map[string]*models.CAVForm{}}
}

func (s *memFormStore) Create(_ context.Context, form *models.CAVForm) error {
	cp := *form
	s.forms[form.ID] = &cp
	return nil
}

func (s *memFormStore) FindByID(_ context.Context, id string) (*models.CAVForm, error) {
	form, ok := s.forms[id]
	if !ok {
		return nil, nil
	}
	cp := *form
	return &cp, nil
}

func (s *memFormStore) List(_ context.Context, archived bool) ([]models.CAVForm, error) {
	var out []models.CAVForm
	for _, f := range s.forms {
		if f.IsArchived == archived {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (s *memFormStore) Update(_ context.Context, form *models.CAVForm) error {
	s.updates++
	cp := *form
	s.forms[form.ID] = &cp
	return nil
}

func (s *memFormStore) SetArchived(_ context.Context, id string, archived bool) error {
	if id == s.failID {
		return errors.New("store failure")
	}
	s.forms[id].IsArchived = archived
	return nil
}

func (s *memFormStore) Delete(_ context.Context, id string) error {
	if id == s.failID {
		return errors.New("store failure")
	}
	delete(s.forms, id)
	return nil
}

type stubDirectory struct {
	sigs map[string]*models.Signatory
}

func (d *stubDirectory) FindByID(_ context.Context, id string) (*models.Signatory, error) {
	if sig, ok := d.sigs[id]; ok {
		return sig, nil
	}
	return nil, nil
}

type stubRenderer struct {
	prepared  *models.Signatory
	submitted *models.Signatory
}

func (r *stubRenderer) Render(_ *models.CAVForm, prepared, submitted *models.Signatory) ([]byte, error) {
	r.prepared = prepared
	r.submitted = submitted
	return []byte("%PDF-stub"), nil
}

func validInput() models.FormInput {
	return models.FormInput{
		FullLegalName:       "Juan Dela Cruz",
		DateIssued:          "2025-02-25",
		SchoolName:          "San Isidro National High School",
		SchoolAddress:       "San Isidro, Nueva Ecija",
		SchoolYearCompleted: "2019-2020",
		SchoolYearGraduated: "2020",
		DateOfApplication:   "2025-02-20",
		DateOfTransmission:  "2025-02-24",
		ControlNo:           "CAV-2025-0042",
	}
}

func newTestService() (*FormService, *memFormStore, *stubAuditStore) {
	store := newMemFormStore()
	audits := &stubAuditStore{}
	svc := NewFormService(store, &stubDirectory{}, NewAuditRecorder(audits), &stubRenderer{})
	return svc, store, audits
}

func TestCreateRecordsFullSnapshot(t *testing.T) {
	svc, store, audits := newTestService()

	form, err := svc.Create(context.Background(), testActor, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if form.ID == "" {
		t.Fatal("id not generated")
	}
	if form.CreatedBy != testActor.UserID {
		t.Fatalf("created_by = %q", form.CreatedBy)
	}
	if _, ok := store.forms[form.ID]; !ok {
		t.Fatal("form not persisted")
	}

	if len(audits.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audits.entries))
	}
	e := audits.entries[0]
	if e.Action != models.AuditCreated || e.RecordID != form.ID {
		t.Fatalf("unexpected audit entry %+v", e)
	}
	if e.OldData != nil {
		t.Fatal("create entry should carry no old_data")
	}
	if e.NewData == nil {
		t.Fatal("create entry should carry the full field set")
	}
}

func TestCreateValidationListsMissingLabels(t *testing.T) {
	svc, _, audits := newTestService()

	in := validInput()
	in.DateIssued = "   "
	in.ControlNo = ""

	_, err := svc.Create(context.Background(), testActor, in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Missing) != 2 || verr.Missing[0] != "Date Issued" || verr.Missing[1] != "Control No." {
		t.Fatalf("unexpected missing list %v", verr.Missing)
	}
	if len(audits.entries) != 0 {
		t.Fatal("rejected create must not be audited")
	}
}

func TestUpdateAuditsOnlyChangedFields(t *testing.T) {
	svc, _, audits := newTestService()

	form, err := svc.Create(context.Background(), testActor, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.SchoolAddress = "Cabanatuan City, Nueva Ecija"
	updated, err := svc.Update(context.Background(), testActor, form.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SchoolAddress != in.SchoolAddress {
		t.Fatalf("field not applied: %q", updated.SchoolAddress)
	}

	if len(audits.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(audits.entries))
	}
	e := audits.entries[1]
	if e.Action != models.AuditUpdated {
		t.Fatalf("unexpected action %q", e.Action)
	}
	if want := `{"school_address":"San Isidro, Nueva Ecija"}`; string(e.OldData) != want {
		t.Fatalf("old_data = %s", e.OldData)
	}
	if want := `{"school_address":"Cabanatuan City, Nueva Ecija"}`; string(e.NewData) != want {
		t.Fatalf("new_data = %s", e.NewData)
	}
}

func TestUpdateNoChangeSkipsWriteAndAudit(t *testing.T) {
	svc, store, audits := newTestService()

	form, err := svc.Create(context.Background(), testActor, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := store.forms[form.ID].UpdatedAt

	got, err := svc.Update(context.Background(), testActor, form.ID, validInput())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if store.updates != 0 {
		t.Fatalf("no-op edit reached the store %d times", store.updates)
	}
	if !got.UpdatedAt.Equal(before) {
		t.Fatal("updated_at moved on a no-op edit")
	}
	if len(audits.entries) != 1 {
		t.Fatalf("expected only the create entry, got %d", len(audits.entries))
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), testActor, "missing", validInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArchiveRestoreCycle(t *testing.T) {
	svc, store, audits := newTestService()

	form, _ := svc.Create(context.Background(), testActor, validInput())

	if err := svc.Archive(context.Background(), testActor, form.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !store.forms[form.ID].IsArchived {
		t.Fatal("record not archived")
	}
	if err := svc.Archive(context.Background(), testActor, form.ID); !errors.Is(err, ErrAlreadyArchived) {
		t.Fatalf("expected ErrAlreadyArchived, got %v", err)
	}

	if err := svc.Restore(context.Background(), testActor, form.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if store.forms[form.ID].IsArchived {
		t.Fatal("record still archived")
	}
	if err := svc.Restore(context.Background(), testActor, form.ID); !errors.Is(err, ErrNotArchived) {
		t.Fatalf("expected ErrNotArchived, got %v", err)
	}

	if len(audits.entries) != 3 {
		t.Fatalf("expected create+archive+restore, got %d entries", len(audits.entries))
	}
	if audits.entries[1].Action != models.AuditArchived || audits.entries[2].Action != models.AuditRestored {
		t.Fatalf("unexpected actions %q, %q", audits.entries[1].Action, audits.entries[2].Action)
	}
	for _, e := range audits.entries {
		if e.RecordID != form.ID {
			t.Fatalf("entry for wrong record %q", e.RecordID)
		}
	}
}

func TestDeleteRequiresArchived(t *testing.T) {
	svc, store, audits := newTestService()

	form, _ := svc.Create(context.Background(), testActor, validInput())

	if err := svc.Delete(context.Background(), testActor, form.ID); !errors.Is(err, ErrNotArchived) {
		t.Fatalf("expected ErrNotArchived, got %v", err)
	}

	if err := svc.Archive(context.Background(), testActor, form.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if err := svc.Delete(context.Background(), testActor, form.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.forms[form.ID]; ok {
		t.Fatal("record still present after delete")
	}
	if err := svc.Delete(context.Background(), testActor, form.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	last := audits.entries[len(audits.entries)-1]
	if last.Action != models.AuditDeleted {
		t.Fatalf("expected deleted entry, got %q", last.Action)
	}
}

func TestBulkDeleteStopsAtFirstFailure(t *testing.T) {
	svc, store, _ := newTestService()

	var ids []string
	for i := 0; i < 3; i++ {
		form, _ := svc.Create(context.Background(), testActor, validInput())
		if err := svc.Archive(context.Background(), testActor, form.ID); err != nil {
			t.Fatalf("archive: %v", err)
		}
		ids = append(ids, form.ID)
	}
	store.failID = ids[1]

	done, err := svc.BulkDelete(context.Background(), testActor, ids)
	if err == nil {
		t.Fatal("expected error")
	}
	if done != 1 {
		t.Fatalf("expected 1 completed, got %d", done)
	}
	if _, ok := store.forms[ids[0]]; ok {
		t.Fatal("first record should be gone")
	}
	if _, ok := store.forms[ids[2]]; !ok {
		t.Fatal("third record should be untouched")
	}
}

func TestBulkRestoreAllSucceed(t *testing.T) {
	svc, store, _ := newTestService()

	var ids []string
	for i := 0; i < 2; i++ {
		form, _ := svc.Create(context.Background(), testActor, validInput())
		if err := svc.Archive(context.Background(), testActor, form.ID); err != nil {
			t.Fatalf("archive: %v", err)
		}
		ids = append(ids, form.ID)
	}

	done, err := svc.BulkRestore(context.Background(), testActor, ids)
	if err != nil {
		t.Fatalf("bulk restore: %v", err)
	}
	if done != len(ids) {
		t.Fatalf("expected %d completed, got %d", len(ids), done)
	}
	for _, id := range ids {
		if store.forms[id].IsArchived {
			t.Fatalf("record %s still archived", id)
		}
	}
}

func TestDocumentResolvesSignatories(t *testing.T) {
	store := newMemFormStore()
	renderer := &stubRenderer{}
	dir := &stubDirectory{sigs: map[string]*models.Signatory{
		"sig-1": {ID: "sig-1", FullName: "Maria Santos", Position: "Registrar II"},
	}}
	svc := NewFormService(store, dir, NewAuditRecorder(&stubAuditStore{}), renderer)

	in := validInput()
	in.PreparedBy = "sig-1"
	in.SubmittedBy = "sig-missing"
	form, err := svc.Create(context.Background(), testActor, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	doc, err := svc.Document(context.Background(), form.ID)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("empty document")
	}
	if renderer.prepared == nil || renderer.prepared.FullName != "Maria Santos" {
		t.Fatalf("prepared signatory not resolved: %+v", renderer.prepared)
	}
	if renderer.submitted != nil {
		t.Fatal("unknown signatory must render as a blank block, not fail")
	}
}

func TestDocumentUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Document(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
