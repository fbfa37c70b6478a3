package auth

import "context"

type ctxKey string

const ctxKeyUser ctxKey = "user"

// Identity is the caller identity threaded through request context.
// Absence means anonymous.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyUser, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if v := ctx.Value(ctxKeyUser); v != nil {
		if id, ok := v.(Identity); ok {
			return id, true
		}
	}
	return Identity{}, false
}

// SubjectFromContext returns the caller's user id, or "" for
// anonymous callers.
func SubjectFromContext(ctx context.Context) string {
	id, _ := IdentityFromContext(ctx)
	return id.UserID
}
