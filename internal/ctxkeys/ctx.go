package ctxkeys

import (
	"context"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	IdentityKey contextKey = "identity"
)

// Identity is the verified caller identity extracted from the session JWT.
// It is present even when no user record has been provisioned yet.
type Identity struct {
	TokenIdentifier string // Issuer-qualified identity token (e.g. "https://issuer.example.com|user_abc")
	Subject         string // Provider subject; doubles as the personal-namespace org id
}

func GetIdentity(ctx context.Context) *Identity {
	identity, _ := ctx.Value(IdentityKey).(*Identity)
	return identity
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
