package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"cavreg/internal/config"
	"cavreg/internal/db"
	"cavreg/internal/gelf"
	"cavreg/internal/handler"
	"cavreg/internal/pdf"
	"cavreg/internal/ratelimit"
	"cavreg/internal/repository"
	"cavreg/internal/router"
	"cavreg/internal/service"
)

func main() {
	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr, "cavreg")
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Database
	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Connected to database")

	// Certificate template. Fail fast: a server that cannot render documents
	// should not come up at all.
	template, err := pdf.LoadTemplate(cfg.TemplatePath)
	if err != nil {
		log.Fatalf("Failed to load certificate template %s: %v", cfg.TemplatePath, err)
	}
	generator, err := pdf.New(template)
	if err != nil {
		log.Fatalf("Certificate template rejected: %v", err)
	}
	log.Printf("Certificate template loaded from %s", cfg.TemplatePath)

	// Login rate limiter
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Printf("Warning: Redis limiter unavailable, falling back to in-memory: %v", err)
			limiter = ratelimit.NewMemoryLimiter(time.Now)
		} else {
			log.Printf("Login rate limiting: Redis (%s)", cfg.RedisAddr)
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(time.Now)
	}

	// Repositories
	userRepo := repository.NewUserRepo(gdb)
	formRepo := repository.NewFormRepo(gdb)
	sigRepo := repository.NewSignatoryRepo(gdb)
	auditRepo := repository.NewAuditRepo(gdb)

	// Services
	recorder := service.NewAuditRecorder(auditRepo)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	formSvc := service.NewFormService(formRepo, sigRepo, recorder, generator)
	sigSvc := service.NewSignatoryService(sigRepo, recorder)

	// Seed admin
	if err := authSvc.SeedAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Printf("Warning: failed to seed admin: %v", err)
	}

	// Handlers
	authH := handler.NewAuthHandler(authSvc, limiter, cfg.LoginLimit)
	formH := handler.NewFormHandler(formSvc)
	sigH := handler.NewSignatoryHandler(sigSvc)
	auditH := handler.NewAuditHandler(auditRepo)
	dashH := handler.NewDashboardHandler(formRepo, sigRepo, auditRepo)

	// Router
	r := router.New(cfg.JWTSecret, authH, formH, sigH, auditH, dashH)

	log.Printf("cavreg server starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
