package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type passwordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	user, err := h.svc.Register(r.Context(), req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusCreated, "user registered, verification mail sent", user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	pair, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "login successful", pair)
}

// Refresh exchanges a refresh token for a new pair
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "token refreshed", pair)
}

// SendVerification re-sends the confirmation mail to the caller
func (h *Handler) SendVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	if err := h.svc.SendVerification(r.Context(), userID); err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "verification mail sent", nil)
}

// VerifyEmail confirms the account addressed by the token in the path
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if err := h.svc.VerifyEmail(r.Context(), token); err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "email verified", nil)
}

// ForgetPassword mails a reset link. The answer does not reveal whether the
// address is registered.
func (h *Handler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.svc.ForgetPassword(r.Context(), req.Email); err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "if the address is registered, a reset mail has been sent", nil)
}

// UpdatePassword sets a new password using the reset token in the path
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var req passwordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.svc.UpdatePassword(r.Context(), token, req.Password, req.PasswordConfirm); err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "password updated", nil)
}
