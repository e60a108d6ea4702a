package repository

import (
	"context"
	"database/sql"

	"github.com/shuvam021/fundoo-v3/internal/models"
)

// Every note query is scoped by user_id. Ownership is enforced here by
// construction, not by filtering results after the fact.

// CreateNote creates a new note for its owner
func (r *Repository) CreateNote(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (title, description, color, archived, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Description, nullString(note.Color), note.Archived, note.UserID).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return storeErr("create note", err)
	}
	return nil
}

// NotesByOwner retrieves the full current note set of one owner in insertion
// order. This is also the cache loader.
func (r *Repository) NotesByOwner(ctx context.Context, owner int64) ([]models.Note, error) {
	query := `
		SELECT id, title, description, color, archived, user_id, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, storeErr("list notes", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, storeErr("scan note", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list notes", err)
	}
	return notes, nil
}

// FindNote retrieves one note by id, scoped to its owner. A note owned by
// someone else is indistinguishable from a missing one.
func (r *Repository) FindNote(ctx context.Context, owner, id int64) (*models.Note, error) {
	query := `
		SELECT id, title, description, color, archived, user_id, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, owner)
	note, err := scanNote(row)
	if err != nil {
		return nil, storeErr("find note", err)
	}
	return &note, nil
}

// UpdateNote replaces the mutable fields of a note, scoped to its owner.
func (r *Repository) UpdateNote(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET title = $3, description = $4, color = $5, archived = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Description, nullString(note.Color), note.Archived).
		Scan(&note.UpdatedAt)
	if err != nil {
		return storeErr("update note", err)
	}
	return nil
}

// DeleteNote removes a note, scoped to its owner.
func (r *Repository) DeleteNote(ctx context.Context, owner, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return storeErr("delete note", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete note", err)
	}
	if affected == 0 {
		return storeErr("delete note", errNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var note models.Note
	var color sql.NullString
	err := row.Scan(&note.ID, &note.Title, &note.Description, &color, &note.Archived,
		&note.UserID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return models.Note{}, err
	}
	note.Color = color.String
	return note, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
