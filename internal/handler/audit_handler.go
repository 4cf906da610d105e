package handler

import (
	"net/http"

	"cavreg/internal/models"
	"cavreg/internal/repository"
)

// AuditHandler reads the audit trail straight from the repository; there is
// no service layer because the trail is append-only and queries are trivial.
type AuditHandler struct {
	audits *repository.AuditRepo
}

func NewAuditHandler(audits *repository.AuditRepo) *AuditHandler {
	return &AuditHandler{audits: audits}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	recordID := r.URL.Query().Get("record_id")
	entries, err := h.audits.List(r.Context(), recordID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
