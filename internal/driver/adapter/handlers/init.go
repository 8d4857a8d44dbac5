package handlers

import (
	"net/http"

	"driver-hub/internal/driver/app/usecase"
	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/middleware"
	"driver-hub/internal/shared/util"
)

type Handler struct {
	service usecase.Service
	tokens  *jwt.Manager
	logger  *util.Logger
}

func NewHandler(service usecase.Service, tokens *jwt.Manager, logger *util.Logger) *Handler {
	return &Handler{service: service, tokens: tokens, logger: logger}
}

func (h *Handler) Router(healthHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /drivers/{driver_id}/status", h.AuthMiddleware(http.HandlerFunc(h.SetStatus)))
	mux.Handle("GET /drivers/{driver_id}/destinations", h.AuthMiddleware(http.HandlerFunc(h.ListDestinations)))
	mux.Handle("POST /drivers/{driver_id}/destinations", h.AuthMiddleware(http.HandlerFunc(h.AddDestination)))
	mux.Handle("PUT /drivers/{driver_id}/destinations/{destination_id}", h.AuthMiddleware(http.HandlerFunc(h.ReplaceDestination)))
	mux.Handle("DELETE /drivers/{driver_id}/destinations/{destination_id}", h.AuthMiddleware(http.HandlerFunc(h.RemoveDestination)))
	mux.Handle("GET /drivers/{driver_id}/settings", h.AuthMiddleware(http.HandlerFunc(h.GetSettings)))
	mux.Handle("PUT /drivers/{driver_id}/settings", h.AuthMiddleware(http.HandlerFunc(h.UpdateSettings)))

	if healthHandler != nil {
		mux.HandleFunc("/health", healthHandler)
	}

	return middleware.RequestID(mux)
}
