package service

import (
	"context"
	"time"

	"github.com/shuvam021/fundoo-v3/internal/auth"
	"github.com/shuvam021/fundoo-v3/internal/cache"
	"github.com/shuvam021/fundoo-v3/internal/models"
	"github.com/sirupsen/logrus"
)

// UserStore is the durable store surface for users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	MarkUserVerified(ctx context.Context, id int64) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	UnverifiedUsersCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.User, error)
}

// NoteStore is the durable store surface for notes.
type NoteStore interface {
	CreateNote(ctx context.Context, note *models.Note) error
	NotesByOwner(ctx context.Context, owner int64) ([]models.Note, error)
	FindNote(ctx context.Context, owner, id int64) (*models.Note, error)
	UpdateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, owner, id int64) error
}

// LabelStore is the durable store surface for labels.
type LabelStore interface {
	CreateLabel(ctx context.Context, label *models.Label) error
	LabelsByAuthor(ctx context.Context, author int64) ([]models.Label, error)
	FindLabel(ctx context.Context, author, id int64) (*models.Label, error)
	UpdateLabel(ctx context.Context, label *models.Label) error
	DeleteLabel(ctx context.Context, author, id int64) error
}

// Sender delivers notification mail. Implemented by the mail package.
type Sender interface {
	SendVerification(to, token string) error
	SendPasswordReset(to, token string) error
}

// Service handles business logic
type Service struct {
	users  UserStore
	notes  NoteStore
	labels LabelStore
	cache  *cache.Cache
	tokens *auth.Manager
	mail   Sender
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(users UserStore, notes NoteStore, labels LabelStore, c *cache.Cache, tokens *auth.Manager, mail Sender, log *logrus.Logger) *Service {
	return &Service{
		users:  users,
		notes:  notes,
		labels: labels,
		cache:  c,
		tokens: tokens,
		mail:   mail,
		log:    log,
	}
}
