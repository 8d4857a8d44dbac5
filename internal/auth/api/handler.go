package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"driver-hub/internal/auth/app"
	"driver-hub/internal/auth/domain"
	"driver-hub/internal/auth/password"
	"driver-hub/internal/shared/util"
	"driver-hub/internal/shared/validation"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := util.New()

	logger.Info("RegisterHandler", "incoming register request")

	var req domain.RegisterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		logger.Error("RegisterHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		util.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}
	if err := validation.ValidatePhone(req.Phone); err != nil {
		util.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Phone, req.Password, req.Name)
	if err != nil {
		logger.Error("RegisterHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusCreated, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"status":  user.Status,
	})

	logger.OK("RegisterHandler", "driver registered successfully: "+user.ID)
	logger.HTTP(http.StatusCreated, r.Method, r.URL.Path)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := util.New()

	logger.Info("LoginHandler", "incoming login request")

	var req domain.LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		logger.Error("LoginHandler", err)
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Error("LoginHandler", err)
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
		"user": map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
			"role":    user.Role,
		},
	})

	logger.OK("LoginHandler", "user logged in successfully: "+user.ID)
	logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	logger := util.New()

	var req domain.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	if err := validation.ValidatePhone(req.Phone); err != nil {
		util.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}
	if req.Purpose == "" {
		req.Purpose = app.OTPPurposeReset
	}

	if err := h.service.RequestOTP(r.Context(), req.Phone, req.Purpose); err != nil {
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]string{
		"message": "verification code sent",
	})
	logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := util.New()

	var req domain.OTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	if req.Purpose == "" {
		req.Purpose = app.OTPPurposeReset
	}

	if err := h.service.VerifyOTP(r.Context(), req.Phone, req.Purpose, req.Code); err != nil {
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]string{
		"message": "code verified",
	})
	logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := util.New()

	var req domain.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Phone, req.Code, req.NewPassword); err != nil {
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]string{
		"message": "password reset",
	})
	logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	logger := util.New()

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		util.WriteJSONError(w, "missing auth header", http.StatusUnauthorized)
		logger.HTTP(http.StatusUnauthorized, r.Method, r.URL.Path)
		return
	}
	claims, err := h.tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		util.WriteJSONError(w, "invalid token", http.StatusUnauthorized)
		logger.HTTP(http.StatusUnauthorized, r.Method, r.URL.Path)
		return
	}

	var req domain.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		logger.HTTP(http.StatusBadRequest, r.Method, r.URL.Path)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		util.ErrResponseInJson(w, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]string{
		"message": "password updated",
	})
	logger.HTTP(http.StatusOK, r.Method, r.URL.Path)
}

// CheckPassword powers the live strength indicator on the registration
// and reset screens.
func (h *Handler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"requirements": password.CheckRequirements(req.Password),
		"strength":     password.Classify(req.Password),
	})
}
