package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cavreg/internal/auth"
	"cavreg/internal/models"
	"cavreg/internal/service"
)

type SignatoryHandler struct {
	svc *service.SignatoryService
}

func NewSignatoryHandler(svc *service.SignatoryService) *SignatoryHandler {
	return &SignatoryHandler{svc: svc}
}

func (h *SignatoryHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	sigs, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sigs == nil {
		sigs = []models.Signatory{}
	}
	writeJSON(w, http.StatusOK, sigs)
}

func (h *SignatoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.SignatoryInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sig, err := h.svc.Create(r.Context(), auth.Identity(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sig)
}

func (h *SignatoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	sig, err := h.svc.Get(r.Context(), chi.URLParam(r, "signatoryId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

func (h *SignatoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.SignatoryInput
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sig, err := h.svc.Update(r.Context(), auth.Identity(r.Context()), chi.URLParam(r, "signatoryId"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

func (h *SignatoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), auth.Identity(r.Context()), chi.URLParam(r, "signatoryId")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
