package handlers

import (
	"net/http"
	"safecity-service/internal/api/dto"
	"safecity-service/internal/services"
)

// AuthHandler exposes account signup, verification and login.
type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.Auth.Signup(r.Context(), services.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, "signup", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.MessageResponse{Message: "OTP sent to your email"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Auth.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeServiceError(w, r, "verify otp", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Message: "Account verified successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, "login", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, "forgot password", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Message: "OTP sent to your email"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeServiceError(w, r, "reset password", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Message: "Password reset successfully"})
}
