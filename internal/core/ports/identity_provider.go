package ports

import "context"

// IdentityProvider wraps the external credential service used at registration
// time. The returned uid becomes the user document id, so both records share
// one identity.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
}
