package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shuvam021/fundoo-v3/internal/apperr"
	"github.com/shuvam021/fundoo-v3/internal/models"
)

// Note reads are served from the per-user cache; a miss rebuilds from the
// store before answering, so the client never sees a "no data" state. Every
// mutation writes to the store first and then rebuilds the owner's snapshot.

// ListNotes returns the caller's complete note set in insertion order.
func (s *Service) ListNotes(ctx context.Context, owner int64) ([]models.Note, error) {
	notes, ok := s.cache.Get(owner)
	if !ok {
		if err := s.cache.Rebuild(ctx, owner); err != nil {
			return nil, err
		}
		notes, _ = s.cache.Get(owner)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// GetNote returns one of the caller's notes. A note owned by someone else is
// reported as not found.
func (s *Service) GetNote(ctx context.Context, owner, id int64) (*models.Note, error) {
	note, hit, found := s.cache.GetOne(owner, id)
	if !hit {
		if err := s.cache.Rebuild(ctx, owner); err != nil {
			return nil, err
		}
		note, _, found = s.cache.GetOne(owner, id)
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	return &note, nil
}

// CreateNote stores a new note for the caller. The owner is always the
// caller, regardless of what the request body claimed.
func (s *Service) CreateNote(ctx context.Context, owner int64, draft *models.Note) (*models.Note, error) {
	if draft.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	draft.UserID = owner
	if err := s.notes.CreateNote(ctx, draft); err != nil {
		return nil, err
	}
	s.rebuildAfterWrite(ctx, owner)
	s.log.Infof("Note %d created for user %d", draft.ID, owner)
	return draft, nil
}

// UpdateNote replaces the mutable fields of one of the caller's notes.
func (s *Service) UpdateNote(ctx context.Context, owner, id int64, draft *models.Note) (*models.Note, error) {
	if draft.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	note, err := s.notes.FindNote(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	note.Title = draft.Title
	note.Description = draft.Description
	note.Color = draft.Color
	note.Archived = draft.Archived
	if err := s.notes.UpdateNote(ctx, note); err != nil {
		return nil, err
	}
	s.rebuildAfterWrite(ctx, owner)
	s.log.Infof("Note %d updated for user %d", id, owner)
	return note, nil
}

// DeleteNote removes one of the caller's notes.
func (s *Service) DeleteNote(ctx context.Context, owner, id int64) error {
	if err := s.notes.DeleteNote(ctx, owner, id); err != nil {
		return err
	}
	s.rebuildAfterWrite(ctx, owner)
	s.log.Infof("Note %d deleted for user %d", id, owner)
	return nil
}

// ExportNotesXML renders the caller's note set as an XML document.
func (s *Service) ExportNotesXML(ctx context.Context, owner int64) ([]byte, error) {
	notes, err := s.ListNotes(ctx, owner)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("notes")
	root.CreateAttr("user_id", strconv.FormatInt(owner, 10))
	for _, n := range notes {
		el := root.CreateElement("note")
		el.CreateAttr("id", strconv.FormatInt(n.ID, 10))
		el.CreateElement("title").SetText(n.Title)
		el.CreateElement("description").SetText(n.Description)
		if n.Color != "" {
			el.CreateElement("color").SetText(n.Color)
		}
		el.CreateElement("archived").SetText(strconv.FormatBool(n.Archived))
		el.CreateElement("created_at").SetText(n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

// rebuildAfterWrite refreshes the owner's snapshot after a committed store
// write. If the rebuild fails the entry is dropped instead, so a stale
// snapshot never outlives the mutation.
func (s *Service) rebuildAfterWrite(ctx context.Context, owner int64) {
	if err := s.cache.Rebuild(ctx, owner); err != nil {
		s.log.Errorf("Cache rebuild failed for user %d: %v", owner, err)
		s.cache.Invalidate(owner)
	}
}
