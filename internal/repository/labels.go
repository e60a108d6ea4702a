package repository

import (
	"context"

	"github.com/shuvam021/fundoo-v3/internal/models"
)

// Labels follow the same author scoping as notes but are read straight from
// the store, without a cache in front.

// CreateLabel creates a new label for its author
func (r *Repository) CreateLabel(ctx context.Context, label *models.Label) error {
	query := `
		INSERT INTO labels (title, color, archived, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, label.Title, label.Color, label.Archived, label.AuthorID).
		Scan(&label.ID, &label.CreatedAt, &label.UpdatedAt)
	if err != nil {
		return storeErr("create label", err)
	}
	return nil
}

// LabelsByAuthor retrieves all labels of one author in insertion order
func (r *Repository) LabelsByAuthor(ctx context.Context, author int64) ([]models.Label, error) {
	query := `
		SELECT id, title, color, archived, author_id, created_at, updated_at
		FROM labels
		WHERE author_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, author)
	if err != nil {
		return nil, storeErr("list labels", err)
	}
	defer rows.Close()

	var labels []models.Label
	for rows.Next() {
		var label models.Label
		if err := rows.Scan(&label.ID, &label.Title, &label.Color, &label.Archived,
			&label.AuthorID, &label.CreatedAt, &label.UpdatedAt); err != nil {
			return nil, storeErr("scan label", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list labels", err)
	}
	return labels, nil
}

// FindLabel retrieves one label by id, scoped to its author
func (r *Repository) FindLabel(ctx context.Context, author, id int64) (*models.Label, error) {
	label := &models.Label{}
	query := `
		SELECT id, title, color, archived, author_id, created_at, updated_at
		FROM labels
		WHERE id = $1 AND author_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, author).
		Scan(&label.ID, &label.Title, &label.Color, &label.Archived,
			&label.AuthorID, &label.CreatedAt, &label.UpdatedAt)
	if err != nil {
		return nil, storeErr("find label", err)
	}
	return label, nil
}

// UpdateLabel replaces the mutable fields of a label, scoped to its author
func (r *Repository) UpdateLabel(ctx context.Context, label *models.Label) error {
	query := `
		UPDATE labels
		SET title = $3, color = $4, archived = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND author_id = $2
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		label.ID, label.AuthorID, label.Title, label.Color, label.Archived).
		Scan(&label.UpdatedAt)
	if err != nil {
		return storeErr("update label", err)
	}
	return nil
}

// DeleteLabel removes a label, scoped to its author
func (r *Repository) DeleteLabel(ctx context.Context, author, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = $1 AND author_id = $2`, id, author)
	if err != nil {
		return storeErr("delete label", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete label", err)
	}
	if affected == 0 {
		return storeErr("delete label", errNoRows)
	}
	return nil
}
