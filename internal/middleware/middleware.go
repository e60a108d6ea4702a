// Package middleware carries the request-scoped concerns: request ids,
// credential verification and the admin gate. Ownership checks on notes and
// labels are not here; those are enforced by construction in the repository
// queries.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shuvam021/fundoo-v3/internal/apperr"
	"github.com/shuvam021/fundoo-v3/internal/auth"
	"github.com/shuvam021/fundoo-v3/internal/handler"
	"github.com/shuvam021/fundoo-v3/internal/models"
	"github.com/sirupsen/logrus"
)

// UserFinder resolves a token subject to a stored user.
type UserFinder interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// RequestID tags every request with a correlation id, echoed in the
// X-Request-Id header and attached to all log lines downstream.
func RequestID(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)
			r = r.WithContext(auth.WithRequestID(r.Context(), id))
			log.WithFields(logrus.Fields{
				"request_id": id,
				"method":     r.Method,
				"path":       r.URL.Path,
			}).Debug("request received")
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate resolves the bearer credential, if any, into an identity in
// the request context. A missing header means anonymous, not an error;
// downstream guards decide whether anonymous is acceptable. A present but
// malformed, invalid or expired credential is rejected here, with distinct
// messages for expired and invalid.
func Authenticate(tokens *auth.Manager, users UserFinder, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				handler.Respond(w, http.StatusUnauthorized, "malformed authorization header", nil)
				return
			}
			if !ok {
				// Anonymous request.
				next.ServeHTTP(w, r)
				return
			}

			userID, err := tokens.Verify(raw, auth.PurposeAccess)
			if err != nil {
				if errors.Is(err, apperr.ErrTokenExpired) {
					log.WithField("request_id", auth.RequestIDFrom(r.Context())).Warn("rejected expired token")
					handler.Respond(w, http.StatusUnauthorized, "your token is expired, login again", nil)
					return
				}
				log.WithField("request_id", auth.RequestIDFrom(r.Context())).Warn("rejected invalid token")
				handler.Respond(w, http.StatusUnauthorized, "your token is invalid, login again", nil)
				return
			}

			user, err := users.FindUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					// Indistinguishable from a bad signature so user ids
					// cannot be enumerated.
					handler.Respond(w, http.StatusUnauthorized, "your token is invalid, login again", nil)
					return
				}
				log.Errorf("failed to resolve token subject %d: %v", userID, err)
				handler.Respond(w, http.StatusServiceUnavailable, "service temporarily unavailable", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.UserFrom(r.Context()) == nil {
				handler.Respond(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects everything but authenticated admins. Anonymous callers
// get 401; authenticated non-admins get a uniform 403.
func RequireAdmin() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.UserFrom(r.Context())
			if user == nil {
				handler.Respond(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}
			if !user.IsAdmin {
				handler.Respond(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
