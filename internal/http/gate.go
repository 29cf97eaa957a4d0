package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/garage-api/internal/domain/auth"
	"github.com/target/garage-api/internal/observability/metrics"
	"github.com/target/garage-api/internal/observability/statsd"
)

var errForbidden = errors.New("forbidden")

// CredentialResolver maps a raw credential to an identity.
type CredentialResolver interface {
	Resolve(ctx context.Context, credential string) (*domainauth.Identity, error)
}

// GateOptions configures Gate.
type GateOptions struct {
	Allowlist  *Allowlist
	Resolver   CredentialResolver
	CookieName string
	Logger     *slog.Logger
	Metrics    statsd.Sink // Optional
}

// Gate admits allowlisted requests as-is and requires a resolvable
// credential for everything else. Rejections are a uniform 403.
func Gate(opts GateOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "gate")

	reject := func(w http.ResponseWriter, r *http.Request, step string) {
		logger.InfoContext(r.Context(), "request rejected", "step", step, "method", r.Method, "path", r.URL.Path)
		metrics.EmitGateDenied(opts.Metrics, step)
		writeForbidden(w)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Allowlist.Allows(r) {
				next.ServeHTTP(w, r)
				return
			}

			cred := extractCredential(r, opts.CookieName)
			if cred == "" {
				reject(w, r, "credential")
				return
			}

			id, err := opts.Resolver.Resolve(r.Context(), cred)
			if err != nil || id == nil {
				reject(w, r, "resolve")
				return
			}

			ctx := SetIdentityInContext(r.Context(), id)
			ctx = setCredentialInContext(ctx, cred)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractCredential prefers the auth cookie and falls back to "Authorization: Bearer <cred>".
func extractCredential(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}
	scheme, rest, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(rest)
}

func writeForbidden(w http.ResponseWriter) {
	WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: errForbidden})
}
