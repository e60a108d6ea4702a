package service

import (
	"context"
	"fmt"

	"github.com/shuvam021/fundoo-v3/internal/apperr"
	"github.com/shuvam021/fundoo-v3/internal/models"
)

// Labels are plain store CRUD, always scoped to their author.

// ListLabels returns the caller's labels in insertion order.
func (s *Service) ListLabels(ctx context.Context, author int64) ([]models.Label, error) {
	labels, err := s.labels.LabelsByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []models.Label{}
	}
	return labels, nil
}

// GetLabel returns one of the caller's labels.
func (s *Service) GetLabel(ctx context.Context, author, id int64) (*models.Label, error) {
	return s.labels.FindLabel(ctx, author, id)
}

// CreateLabel stores a new label. The author is always the caller.
func (s *Service) CreateLabel(ctx context.Context, author int64, draft *models.Label) (*models.Label, error) {
	if draft.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	draft.AuthorID = author
	if err := s.labels.CreateLabel(ctx, draft); err != nil {
		return nil, err
	}
	s.log.Infof("Label %d created for user %d", draft.ID, author)
	return draft, nil
}

// UpdateLabel replaces the mutable fields of one of the caller's labels.
func (s *Service) UpdateLabel(ctx context.Context, author, id int64, draft *models.Label) (*models.Label, error) {
	if draft.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	label, err := s.labels.FindLabel(ctx, author, id)
	if err != nil {
		return nil, err
	}
	label.Title = draft.Title
	label.Color = draft.Color
	label.Archived = draft.Archived
	if err := s.labels.UpdateLabel(ctx, label); err != nil {
		return nil, err
	}
	s.log.Infof("Label %d updated for user %d", id, author)
	return label, nil
}

// DeleteLabel removes one of the caller's labels.
func (s *Service) DeleteLabel(ctx context.Context, author, id int64) error {
	if err := s.labels.DeleteLabel(ctx, author, id); err != nil {
		return err
	}
	s.log.Infof("Label %d deleted for user %d", id, author)
	return nil
}
