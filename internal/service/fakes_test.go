package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shuvam021/fundoo-v3/internal/apperr"
	"github.com/shuvam021/fundoo-v3/internal/auth"
	"github.com/shuvam021/fundoo-v3/internal/cache"
	"github.com/shuvam021/fundoo-v3/internal/models"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory stand-in for the repository, implementing all
// three store interfaces. Slices keep insertion order, matching the ORDER BY
// id contract of the real queries.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	users  []*models.User
	notes  []*models.Note
	labels []*models.Label

	// notesErr makes every note read/write fail, simulating an unavailable
	// store.
	notesErr error
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperr.ErrDuplicateEmail
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	m.users = append(m.users, &clone)
	return nil
}

func (m *memStore) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memStore) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memStore) MarkUserVerified(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.IsVerified = true
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *memStore) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *memStore) UnverifiedUsersCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		if !u.IsVerified && u.CreatedAt.Before(cutoff) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memStore) CreateNote(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notesErr != nil {
		return m.notesErr
	}
	note.ID = m.id()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	clone := *note
	m.notes = append(m.notes, &clone)
	return nil
}

func (m *memStore) NotesByOwner(ctx context.Context, owner int64) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notesErr != nil {
		return nil, m.notesErr
	}
	var out []models.Note
	for _, n := range m.notes {
		if n.UserID == owner {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *memStore) FindNote(ctx context.Context, owner, id int64) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notesErr != nil {
		return nil, m.notesErr
	}
	for _, n := range m.notes {
		if n.ID == id && n.UserID == owner {
			clone := *n
			return &clone, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memStore) UpdateNote(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notesErr != nil {
		return m.notesErr
	}
	for _, n := range m.notes {
		if n.ID == note.ID && n.UserID == note.UserID {
			n.Title = note.Title
			n.Description = note.Description
			n.Color = note.Color
			n.Archived = note.Archived
			n.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *memStore) DeleteNote(ctx context.Context, owner, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notesErr != nil {
		return m.notesErr
	}
	for i, n := range m.notes {
		if n.ID == id && n.UserID == owner {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *memStore) CreateLabel(ctx context.Context, label *models.Label) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	label.ID = m.id()
	label.CreatedAt = time.Now()
	label.UpdatedAt = label.CreatedAt
	clone := *label
	m.labels = append(m.labels, &clone)
	return nil
}

func (m *memStore) LabelsByAuthor(ctx context.Context, author int64) ([]models.Label, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Label
	for _, l := range m.labels {
		if l.AuthorID == author {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memStore) FindLabel(ctx context.Context, author, id int64) (*models.Label, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.labels {
		if l.ID == id && l.AuthorID == author {
			clone := *l
			return &clone, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memStore) UpdateLabel(ctx context.Context, label *models.Label) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.labels {
		if l.ID == label.ID && l.AuthorID == label.AuthorID {
			l.Title = label.Title
			l.Color = label.Color
			l.Archived = label.Archived
			l.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *memStore) DeleteLabel(ctx context.Context, author, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.labels {
		if l.ID == id && l.AuthorID == author {
			m.labels = append(m.labels[:i], m.labels[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

// fakeSender records deliveries on a channel so tests can wait for the
// fire-and-forget goroutines.
type fakeSender struct {
	sent chan string
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan string, 16)}
}

func (f *fakeSender) SendVerification(to, token string) error {
	f.sent <- "verify:" + to
	return nil
}

func (f *fakeSender) SendPasswordReset(to, token string) error {
	f.sent <- "reset:" + to
	return nil
}

func (f *fakeSender) waitForMail(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-f.sent:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for mail")
		return ""
	}
}

func newTestService(t *testing.T) (*Service, *memStore, *fakeSender) {
	t.Helper()
	store := &memStore{}
	sender := newFakeSender()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewService(store, store, store, cache.New(store), auth.NewManager("test-secret"), sender, log)
	return svc, store, sender
}

// seedUser registers a user directly in the store, bypassing mail delivery.
func seedUser(t *testing.T, store *memStore, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
