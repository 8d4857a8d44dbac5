package handlers

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const DriverIDKey contextKey = "driver_id"

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing auth header", http.StatusUnauthorized)
			return
		}

		claims, err := h.tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if claims.Role != "driver" {
			http.Error(w, "invalid role - driver role required", http.StatusForbidden)
			return
		}

		// Extract driver_id from URL and verify it matches token
		driverID := r.PathValue("driver_id")
		if driverID != "" && driverID != claims.UserID {
			http.Error(w, "forbidden - driver_id mismatch", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), DriverIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
