package handler

import (
	"net/http"

	"github.com/shuvam021/fundoo-v3/internal/models"
)

// ListLabels returns the caller's labels
func (h *Handler) ListLabels(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	labels, err := h.svc.ListLabels(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "labels retrieved", labels)
}

// GetLabel returns one of the caller's labels
func (h *Handler) GetLabel(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	label, err := h.svc.GetLabel(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "label retrieved", label)
}

// CreateLabel stores a new label for the caller. Any author supplied in the
// body is ignored.
func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	var draft models.Label
	if err := decodeJSON(r, &draft); err != nil {
		h.respondError(w, r, err)
		return
	}
	label, err := h.svc.CreateLabel(r.Context(), userID, &draft)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusCreated, "label created", label)
}

// UpdateLabel replaces one of the caller's labels
func (h *Handler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var draft models.Label
	if err := decodeJSON(r, &draft); err != nil {
		h.respondError(w, r, err)
		return
	}
	label, err := h.svc.UpdateLabel(r.Context(), userID, id, &draft)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "label updated", label)
}

// DeleteLabel removes one of the caller's labels
func (h *Handler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.svc.DeleteLabel(r.Context(), userID, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "label deleted", nil)
}
