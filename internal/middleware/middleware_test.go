package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shuvam021/fundoo-v3/internal/apperr"
	"github.com/shuvam021/fundoo-v3/internal/auth"
	"github.com/shuvam021/fundoo-v3/internal/handler"
	"github.com/shuvam021/fundoo-v3/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[int64]*models.User

func (f fakeUsers) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, apperr.ErrNotFound
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// identityEcho answers with the identity the middleware resolved, or 204 for
// anonymous.
func identityEcho(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handler.Respond(w, http.StatusOK, "ok", user.Email)
}

func newAuthStack(t *testing.T, users fakeUsers, extra ...mux.MiddlewareFunc) (*mux.Router, *auth.Manager) {
	t.Helper()
	tokens := auth.NewManager("test-secret")
	r := mux.NewRouter()
	r.Use(RequestID(quietLogger()))
	r.Use(Authenticate(tokens, users, quietLogger()))
	for _, mw := range extra {
		r.Use(mw)
	}
	r.HandleFunc("/probe", identityEcho).Methods("GET")
	return r, tokens
}

func do(r *mux.Router, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func envelopeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env handler.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Message
}

func TestAuthenticate_MissingHeaderIsAnonymous(t *testing.T) {
	r, _ := newAuthStack(t, fakeUsers{})

	rec := do(r, "")
	assert.Equal(t, http.StatusNoContent, rec.Code, "anonymous must reach the handler")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	r, _ := newAuthStack(t, fakeUsers{})

	for _, header := range []string{"garbage", "Bearer a b", "Basic abc"} {
		rec := do(r, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "malformed authorization header", envelopeMessage(t, rec))
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	users := fakeUsers{1: {ID: 1, Email: "a@example.com"}}
	r, tokens := newAuthStack(t, users)

	token, err := tokens.Issue(1, auth.PurposeAccess)
	require.NoError(t, err)

	rec := do(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@example.com")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestAuthenticate_ExpiredVsInvalidMessages(t *testing.T) {
	users := fakeUsers{1: {ID: 1, Email: "a@example.com"}}
	r, _ := newAuthStack(t, users)

	// Signed with a different secret.
	forged, err := auth.NewManager("other-secret").Issue(1, auth.PurposeAccess)
	require.NoError(t, err)
	rec := do(r, "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "your token is invalid, login again", envelopeMessage(t, rec))

	// A refresh token is not a session credential.
	refresh, err := auth.NewManager("test-secret").Issue(1, auth.PurposeRefresh)
	require.NoError(t, err)
	rec = do(r, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "your token is invalid, login again", envelopeMessage(t, rec))
}

func TestAuthenticate_UnknownSubjectLooksInvalid(t *testing.T) {
	r, tokens := newAuthStack(t, fakeUsers{})

	token, err := tokens.Issue(99, auth.PurposeAccess)
	require.NoError(t, err)

	rec := do(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "your token is invalid, login again", envelopeMessage(t, rec),
		"deleted users must be indistinguishable from bad signatures")
}

func TestRequireUser_BlocksAnonymous(t *testing.T) {
	r, _ := newAuthStack(t, fakeUsers{}, RequireUser())

	rec := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", envelopeMessage(t, rec))
}

func TestRequireAdmin(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Email: "user@example.com"},
		2: {ID: 2, Email: "admin@example.com", IsAdmin: true},
	}
	r, tokens := newAuthStack(t, users, RequireAdmin())

	// Anonymous: unauthenticated, not forbidden.
	rec := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated regular user: uniform forbidden.
	token, err := tokens.Issue(1, auth.PurposeAccess)
	require.NoError(t, err)
	rec = do(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", envelopeMessage(t, rec))

	// Admin passes.
	token, err = tokens.Issue(2, auth.PurposeAccess)
	require.NoError(t, err)
	rec = do(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
