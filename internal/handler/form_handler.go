package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cavreg/internal/auth"
	"cavreg/internal/models"
	"cavreg/internal/service"
)

type FormHandler struct {
	svc *service.FormService
}

func NewFormHandler(svc *service.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	archived := r.URL.Query().Get("archived") == "true"
	forms, err := h.svc.List(r.Context(), archived)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if forms == nil {
		forms = []models.CAVForm{}
	}
	writeJSON(w, http.StatusOK, forms)
}

func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.FormInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form, err := h.svc.Create(r.Context(), auth.Identity(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, form)
}

func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, err := h.svc.Get(r.Context(), chi.URLParam(r, "formId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.FormInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form, err := h.svc.Update(r.Context(), auth.Identity(r.Context()), chi.URLParam(r, "formId"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *FormHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Archive(r.Context(), auth.Identity(r.Context()), chi.URLParam(r, "formId")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

func (h *FormHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Restore(r.Context(), auth.Identity(r.Context()), chi.URLParam(r, "formId")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), auth.Identity(r.Context()), chi.URLParam(r, "formId")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type bulkRequest struct {
	IDs []string `json:"ids"`
}

func (h *FormHandler) BulkRestore(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	done, err := h.svc.BulkRestore(r.Context(), auth.Identity(r.Context()), req.IDs)
	if err != nil {
		writeJSON(w, http.StatusMultiStatus, map[string]any{
			"restored": done,
			"error":    err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"restored": done})
}

func (h *FormHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	done, err := h.svc.BulkDelete(r.Context(), auth.Identity(r.Context()), req.IDs)
	if err != nil {
		writeJSON(w, http.StatusMultiStatus, map[string]any{
			"deleted": done,
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": done})
}

// Document streams the rendered certificate. Inline by default so the browser
// previews it; ?download=1 forces a save dialog.
func (h *FormHandler) Document(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "formId")
	doc, err := h.svc.Document(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	disposition := "inline"
	if r.URL.Query().Get("download") == "1" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", disposition+`; filename="CAV-`+id+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
