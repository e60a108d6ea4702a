package repository

import (
	"context"
	"time"

	"github.com/shuvam021/fundoo-v3/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, is_verified, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.IsVerified, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return storeErr("create user", err)
	}
	return nil
}

// FindUserByID retrieves a user by primary key
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, is_verified, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsVerified, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, storeErr("find user by id", err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, is_verified, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsVerified, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, storeErr("find user by email", err)
	}
	return user, nil
}

// ListUsers retrieves all users, oldest first
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, password_hash, is_verified, is_admin, created_at, updated_at
		FROM users
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsVerified, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, storeErr("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

// MarkUserVerified flips the verified flag for the given user.
func (r *Repository) MarkUserVerified(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET is_verified = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return storeErr("mark user verified", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("mark user verified", err)
	}
	if affected == 0 {
		return storeErr("mark user verified", errNoRows)
	}
	return nil
}

// UpdateUserPassword replaces the stored password hash for the given user.
func (r *Repository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return storeErr("update user password", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update user password", err)
	}
	if affected == 0 {
		return storeErr("update user password", errNoRows)
	}
	return nil
}

// UnverifiedUsersCreatedBefore returns users that registered before the given
// cutoff and never confirmed their email. Used by the reminder job.
func (r *Repository) UnverifiedUsersCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	query := `
		SELECT id, email, password_hash, is_verified, is_admin, created_at, updated_at
		FROM users
		WHERE is_verified = FALSE AND created_at < $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, storeErr("list unverified users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsVerified, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, storeErr("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list unverified users", err)
	}
	return users, nil
}
