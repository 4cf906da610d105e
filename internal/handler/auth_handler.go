package handler

import (
	"log"
	"net"
	"net/http"
	"time"

	"cavreg/internal/auth"
	"cavreg/internal/ratelimit"
	"cavreg/internal/service"
)

const loginWindow = time.Minute

type AuthHandler struct {
	svc        *service.AuthService
	limiter    ratelimit.Limiter
	loginLimit int
}

func NewAuthHandler(svc *service.AuthService, limiter ratelimit.Limiter, loginLimit int) *AuthHandler {
	return &AuthHandler{svc: svc, limiter: limiter, loginLimit: loginLimit}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email, password, and name are required")
		return
	}
	result, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	decision, err := h.limiter.Allow(r.Context(), "login:"+clientIP(r), h.loginLimit, loginWindow)
	if err != nil {
		// Fail open: a broken limiter must not lock staff out.
		log.Printf("login rate limit check failed: %v", err)
	} else if !decision.Allowed {
		w.Header().Set("Retry-After", decision.ResetAt.UTC().Format(http.TimeFormat))
		writeError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.svc.Me(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
