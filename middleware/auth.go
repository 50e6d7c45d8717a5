package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/microblog-app/microblog-backend/auth"
	"github.com/microblog-app/microblog-backend/store"
)

// Identity is the verified caller attached to the request context by
// RequireAuth. Handlers trust it instead of anything client-supplied.
type Identity struct {
	ID       string
	Username string
}

type contextKey struct{}

var identityKey contextKey

// FromContext returns the identity RequireAuth stored, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuth resolves the Authorization bearer token to a stored user before
// letting the request through. A token whose subject no longer exists is
// unauthorized, not a server error.
func RequireAuth(users store.UserStore, secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "Unauthorized")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, "Unauthorized")
			return
		}

		claims, err := auth.VerifyToken(parts[1], secret)
		if err != nil {
			unauthorized(w, "Unauthorized")
			return
		}

		user, err := users.GetByID(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				unauthorized(w, "User not found")
				return
			}
			unauthorized(w, "Unauthorized")
			return
		}

		identity := Identity{ID: user.ID.Hex(), Username: user.Username}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
