package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cavreg/internal/auth"
	"cavreg/internal/handler"
	mw "cavreg/internal/middleware"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	formH *handler.FormHandler,
	sigH *handler.SignatoryHandler,
	auditH *handler.AuditHandler,
	dashH *handler.DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)
	r.Use(mw.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/register", authH.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			// Auth
			r.Get("/auth/me", authH.Me)

			// Dashboard
			r.Get("/dashboard", dashH.Stats)

			// CAV records
			r.Get("/forms", formH.List)
			r.Post("/forms", formH.Create)
			r.Get("/forms/{formId}", formH.Get)
			r.Put("/forms/{formId}", formH.Update)
			r.Delete("/forms/{formId}", formH.Delete)
			r.Post("/forms/{formId}/archive", formH.Archive)
			r.Post("/forms/{formId}/restore", formH.Restore)
			r.Get("/forms/{formId}/document", formH.Document)
			r.Post("/forms/bulk/restore", formH.BulkRestore)
			r.Post("/forms/bulk/delete", formH.BulkDelete)

			// Signatories
			r.Get("/signatories", sigH.List)
			r.Post("/signatories", sigH.Create)
			r.Get("/signatories/{signatoryId}", sigH.Get)
			r.Put("/signatories/{signatoryId}", sigH.Update)
			r.Delete("/signatories/{signatoryId}", sigH.Delete)

			// Audit trail
			r.Get("/audit", auditH.List)
		})
	})

	return r
}
