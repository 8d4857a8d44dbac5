package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"driver-hub/internal/driver/models"
	"driver-hub/internal/shared/util"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")

	settings, err := h.service.GetSettings(ctx, driverID)
	if err != nil {
		h.logger.Error("GetSettingsHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, settings)
	h.logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")

	var settings models.Settings
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		h.logger.Error("UpdateSettingsHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	updated, err := h.service.UpdateSettings(ctx, driverID, settings)
	if err != nil {
		h.logger.Error("UpdateSettingsHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, updated)
	h.logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}
