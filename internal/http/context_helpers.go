package httpx

import (
	"context"

	domainauth "github.com/target/garage-api/internal/domain/auth"
)

// Unexported key types keep these values private to the package.
type (
	identityKey   struct{}
	credentialKey struct{}
)

// SetIdentityInContext returns a child context that carries the identity.
// If id is nil, ctx is returned unchanged.
func SetIdentityInContext(ctx context.Context, id *domainauth.Identity) context.Context {
	if id == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentityFromContext returns the identity attached by the gate.
func GetIdentityFromContext(ctx context.Context) (*domainauth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*domainauth.Identity)
	return id, ok && id != nil
}

func setCredentialInContext(ctx context.Context, cred string) context.Context {
	return context.WithValue(ctx, credentialKey{}, cred)
}

// GetCredentialFromContext returns the raw credential the gate resolved.
func GetCredentialFromContext(ctx context.Context) string {
	cred, _ := ctx.Value(credentialKey{}).(string)
	return cred
}
