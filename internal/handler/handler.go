package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shuvam021/fundoo-v3/internal/apperr"
	"github.com/shuvam021/fundoo-v3/internal/auth"
	"github.com/shuvam021/fundoo-v3/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// entry returns a log entry carrying the request correlation fields.
func (h *Handler) entry(r *http.Request) *logrus.Entry {
	return h.log.WithFields(logrus.Fields{
		"request_id": auth.RequestIDFrom(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
	})
}

// respondError is the single place typed errors become status codes. The
// expired and invalid token cases keep distinct messages; unexpected faults
// are logged with full context and answered with a generic message.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		Respond(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperr.ErrDuplicateEmail):
		Respond(w, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, apperr.ErrTokenExpired):
		h.entry(r).Warn("rejected expired token")
		Respond(w, http.StatusUnauthorized, "your token is expired, login again", nil)
	case errors.Is(err, apperr.ErrTokenInvalid):
		h.entry(r).Warn("rejected invalid token")
		Respond(w, http.StatusUnauthorized, "your token is invalid, login again", nil)
	case errors.Is(err, apperr.ErrInvalidCredentials):
		Respond(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, apperr.ErrUnauthenticated):
		Respond(w, http.StatusUnauthorized, "authentication required", nil)
	case errors.Is(err, apperr.ErrForbidden):
		Respond(w, http.StatusForbidden, "forbidden", nil)
	case errors.Is(err, apperr.ErrNotFound):
		Respond(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, apperr.ErrStoreUnavailable):
		h.entry(r).Errorf("store unavailable: %v", err)
		Respond(w, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
	default:
		h.entry(r).Errorf("unexpected error: %v", err)
		Respond(w, http.StatusInternalServerError, "internal server error", nil)
	}
}

// identity returns the authenticated caller. Routes behind RequireUser always
// have one; the guard here is against wiring mistakes.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		h.respondError(w, r, apperr.ErrUnauthenticated)
		return 0, false
	}
	return user.ID, true
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", apperr.ErrValidation)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", apperr.ErrValidation)
	}
	return id, nil
}
