package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"driver-hub/internal/driver/models"
	"driver-hub/internal/shared/util"
)

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("SetStatusHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	driver, err := h.service.SetStatus(ctx, driverID, models.DriverStatus(req.Status))
	if err != nil {
		h.logger.Error("SetStatusHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	message := "You are now offline"
	if driver.Status == models.DriverAvailable {
		message = "You are now online and ready to accept rides"
	} else if driver.Status == models.DriverBusy {
		message = "You are marked busy"
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"driver_id": driver.ID,
		"status":    driver.Status,
		"message":   message,
	})
	h.logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}
