package notify

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/middleware"
	"driver-hub/internal/shared/util"
)

type Handler struct {
	history *History
	ws      *WSManager
	tokens  *jwt.Manager
	logger  *util.Logger
}

func NewHandler(history *History, ws *WSManager, tokens *jwt.Manager, logger *util.Logger) *Handler {
	return &Handler{history: history, ws: ws, tokens: tokens, logger: logger}
}

func (h *Handler) Router(healthHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /drivers/{driver_id}/notifications", h.ListNotifications)
	mux.HandleFunc("GET /ws/drivers/{driver_id}", h.ws.HandleDriverWebSocket)
	if healthHandler != nil {
		mux.HandleFunc("/health", healthHandler)
	}
	return middleware.RequestID(mux)
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		util.WriteJSONError(w, "missing auth header", http.StatusUnauthorized)
		h.logger.HTTP(http.StatusUnauthorized, r.Method, r.URL.Path)
		return
	}
	claims, err := h.tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || claims.Role != "driver" || claims.UserID != driverID {
		util.WriteJSONError(w, "invalid token", http.StatusUnauthorized)
		h.logger.HTTP(http.StatusUnauthorized, r.Method, r.URL.Path)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.history.Recent(ctx, driverID, limit)
	if err != nil {
		h.logger.Error("ListNotificationsHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
	h.logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}
