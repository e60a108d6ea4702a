package handler

import (
	"net/http"
)

// User listing and detail are admin-only; the RequireAdmin middleware guards
// the routes, so these handlers only shape the response.

// ListUsers returns all registered users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "users retrieved", users)
}

// GetUser returns one user by id
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "user retrieved", user)
}
