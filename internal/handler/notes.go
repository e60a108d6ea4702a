package handler

import (
	"net/http"

	"github.com/shuvam021/fundoo-v3/internal/models"
)

// ListNotes returns the caller's notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	notes, err := h.svc.ListNotes(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "notes retrieved", notes)
}

// GetNote returns one of the caller's notes
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	note, err := h.svc.GetNote(r.Context(), userID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "note retrieved", note)
}

// CreateNote stores a new note for the caller. Any owner supplied in the body
// is ignored.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	var draft models.Note
	if err := decodeJSON(r, &draft); err != nil {
		h.respondError(w, r, err)
		return
	}
	note, err := h.svc.CreateNote(r.Context(), userID, &draft)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusCreated, "note created", note)
}

// UpdateNote replaces one of the caller's notes
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var draft models.Note
	if err := decodeJSON(r, &draft); err != nil {
		h.respondError(w, r, err)
		return
	}
	note, err := h.svc.UpdateNote(r.Context(), userID, id, &draft)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "note updated", note)
}

// DeleteNote removes one of the caller's notes
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.svc.DeleteNote(r.Context(), userID, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	Respond(w, http.StatusOK, "note deleted", nil)
}

// ExportNotes streams the caller's notes as XML
func (h *Handler) ExportNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.identity(w, r)
	if !ok {
		return
	}
	payload, err := h.svc.ExportNotesXML(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="notes.xml"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
