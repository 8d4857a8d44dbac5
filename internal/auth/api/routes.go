package api

import (
	"net/http"

	"driver-hub/internal/auth/app"
	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/middleware"
)

type Handler struct {
	service *app.AuthService
	tokens  *jwt.Manager
}

func NewHandler(s *app.AuthService, tokens *jwt.Manager) *Handler {
	return &Handler{service: s, tokens: tokens}
}

// RegisterRoutes registers routes including the health check endpoint
func (h *Handler) RegisterRoutes(healthHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/otp/request", h.RequestOTP)
	mux.HandleFunc("POST /auth/otp/verify", h.VerifyOTP)
	mux.HandleFunc("POST /auth/password/reset", h.ResetPassword)
	mux.HandleFunc("POST /auth/password/update", h.UpdatePassword)
	mux.HandleFunc("POST /auth/password/check", h.CheckPassword)
	if healthHandler != nil {
		mux.HandleFunc("/health", healthHandler)
	}

	// Apply request ID middleware to all routes
	return middleware.RequestID(mux)
}
