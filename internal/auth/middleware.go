package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// tokenFromRequest prefers the session cookie and accepts a bearer
// header as an alternative.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// OptionalIdentity attaches the caller identity to the context when a
// valid token is present and passes the request through either way.
// Generate and grade work anonymously; the result is just unowned.
func OptionalIdentity(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := tokenFromRequest(r); tok != "" {
				if c, err := a.Parse(tok); err == nil && c != nil {
					ctx := WithIdentity(r.Context(), Identity{UserID: c.UserID, Email: c.Email, Name: c.Name})
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity rejects anonymous callers with 401. Used for
// history and dashboard surfaces; the UI treats 401 as "go log in".
func RequireIdentity(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFromRequest(r)
			if tok == "" {
				unauthorized(w)
				return
			}
			c, err := a.Parse(tok)
			if err != nil || c == nil {
				unauthorized(w)
				return
			}
			ctx := WithIdentity(r.Context(), Identity{UserID: c.UserID, Email: c.Email, Name: c.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "authentication required"})
}
