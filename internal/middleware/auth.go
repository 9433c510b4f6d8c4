package middleware

import (
	"context"
	"net/http"
	"strings"

	"nutellove/internal/auth"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey struct{}

var userKey = contextKey{}

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// ContextWithUser returns a copy of ctx carrying the authenticated user ID.
func ContextWithUser(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// UserFromContext returns the authenticated user ID stored in ctx, if any.
func UserFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// Authenticate resolves an optional "Authorization: Bearer" token.
// Requests without a token pass through anonymously; an invalid token is
// rejected with 401.
func Authenticate(tokens TokenParser, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
				unauthorised(w, "unauthorised: malformed authorization header")
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid bearer token")
				unauthorised(w, "unauthorised: invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), claims.UserID)))
		})
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			unauthorised(w, "unauthorised: authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorised(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="nutellove"`)
	writeJSONError(w, http.StatusUnauthorized, message, "UNAUTHORIZED")
}
