package handler

import (
	"net/http"

	"cavreg/internal/repository"
)

type DashboardHandler struct {
	forms       *repository.FormRepo
	signatories *repository.SignatoryRepo
	audits      *repository.AuditRepo
}

func NewDashboardHandler(forms *repository.FormRepo, signatories *repository.SignatoryRepo, audits *repository.AuditRepo) *DashboardHandler {
	return &DashboardHandler{forms: forms, signatories: signatories, audits: audits}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := h.forms.Count(ctx, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	archived, err := h.forms.Count(ctx, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	signatories, err := h.signatories.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	auditEntries, err := h.audits.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"active_forms":   active,
		"archived_forms": archived,
		"signatories":    signatories,
		"audit_entries":  auditEntries,
	})
}
