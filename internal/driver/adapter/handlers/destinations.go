package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"driver-hub/internal/shared/util"
)

type destinationRequest struct {
	Address string `json:"address"`
}

func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")

	views, err := h.service.ListDestinations(ctx, driverID)
	if err != nil {
		h.logger.Error("ListDestinationsHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"destinations": views,
		"count":        len(views),
	})
	h.logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

func (h *Handler) AddDestination(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")

	var req destinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("AddDestinationHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	view, err := h.service.AddDestination(ctx, driverID, req.Address)
	if err != nil {
		h.logger.Error("AddDestinationHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusCreated, view)
	h.logger.HTTP(http.StatusCreated, r.Method, r.URL.Path)
}

func (h *Handler) ReplaceDestination(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")
	destinationID, err := strconv.ParseInt(r.PathValue("destination_id"), 10, 64)
	if err != nil {
		util.WriteJSONError(w, "invalid destination id", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	var req destinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("ReplaceDestinationHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	view, err := h.service.ReplaceDestination(ctx, driverID, destinationID, req.Address)
	if err != nil {
		h.logger.Error("ReplaceDestinationHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, view)
	h.logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

func (h *Handler) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	driverID := r.PathValue("driver_id")
	destinationID, err := strconv.ParseInt(r.PathValue("destination_id"), 10, 64)
	if err != nil {
		util.WriteJSONError(w, "invalid destination id", http.StatusBadRequest)
		h.logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	if err := h.service.RemoveDestination(ctx, driverID, destinationID); err != nil {
		h.logger.Error("RemoveDestinationHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]string{
		"message": "destination removed",
	})
	h.logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}
