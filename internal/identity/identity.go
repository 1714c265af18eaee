// Package identity carries the verified request identity through
// context.Context. Only the auth gate writes it; handlers read it.
package identity

import "context"

type contextKey struct{}

// Identity is the verified principal attached to a request after token
// verification. It is immutable once attached.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

// WithIdentity returns a context carrying the verified identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the verified identity, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok && id.UserID != ""
}
