package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/garage-api/internal/domain/auth"
)

const forbiddenBody = `{"error":"forbidden","message":"forbidden"}`

type stubResolver struct {
	valid map[string]*domainauth.Identity
	calls int
}

func (s *stubResolver) Resolve(_ context.Context, cred string) (*domainauth.Identity, error) {
	s.calls++
	if id, ok := s.valid[cred]; ok {
		return id, nil
	}
	return nil, domainauth.ErrForbidden
}

func newGateHandler(t *testing.T, res *stubResolver) (http.Handler, *int) {
	t.Helper()
	allow, err := NewAllowlist([]string{"POST /users"})
	require.NoError(t, err)
	hits := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if id, ok := GetIdentityFromContext(r.Context()); ok {
			w.Header().Set("X-User", id.Username)
			w.Header().Set("X-Cred", GetCredentialFromContext(r.Context()))
		}
		w.WriteHeader(http.StatusOK)
	})
	return Gate(GateOptions{Allowlist: allow, Resolver: res, CookieName: "auth_token"})(next), &hits
}

func TestGate(t *testing.T) {
	alice := &domainauth.Identity{ID: 1, Username: "alice"}
	bob := &domainauth.Identity{ID: 2, Username: "bob"}

	t.Run("allowlisted pair passes without credential", func(t *testing.T) {
		res := &stubResolver{}
		h, hits := newGateHandler(t, res)
		apitest.New().Handler(h).Post("/users").Expect(t).Status(http.StatusOK).HeaderNotPresent("X-User").End()
		assert.Equal(t, 1, *hits)
		assert.Equal(t, 0, res.calls)
	})

	t.Run("missing credential", func(t *testing.T) {
		h, hits := newGateHandler(t, &stubResolver{})
		apitest.New().Handler(h).Get("/users").Expect(t).Status(http.StatusForbidden).Body(forbiddenBody).End()
		assert.Equal(t, 0, *hits)
	})

	t.Run("invalid credential", func(t *testing.T) {
		h, hits := newGateHandler(t, &stubResolver{})
		apitest.New().Handler(h).Get("/cars").Header("Authorization", "Bearer nope").
			Expect(t).Status(http.StatusForbidden).Body(forbiddenBody).End()
		assert.Equal(t, 0, *hits)
	})

	t.Run("bearer scheme is case-insensitive", func(t *testing.T) {
		h, _ := newGateHandler(t, &stubResolver{valid: map[string]*domainauth.Identity{"tok": alice}})
		apitest.New().Handler(h).Get("/cars").Header("Authorization", "bEaReR   tok ").
			Expect(t).Status(http.StatusOK).Header("X-User", "alice").Header("X-Cred", "tok").End()
	})

	t.Run("other schemes rejected", func(t *testing.T) {
		h, _ := newGateHandler(t, &stubResolver{valid: map[string]*domainauth.Identity{"tok": alice}})
		apitest.New().Handler(h).Get("/cars").Header("Authorization", "Basic tok").
			Expect(t).Status(http.StatusForbidden).End()
		apitest.New().Handler(h).Get("/cars").Header("Authorization", "tok").
			Expect(t).Status(http.StatusForbidden).End()
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		h, _ := newGateHandler(t, &stubResolver{valid: map[string]*domainauth.Identity{"c": alice, "b": bob}})
		apitest.New().Handler(h).Get("/cars").Cookie("auth_token", "c").Header("Authorization", "Bearer b").
			Expect(t).Status(http.StatusOK).Header("X-User", "alice").End()
	})

	t.Run("empty cookie falls back to header", func(t *testing.T) {
		h, _ := newGateHandler(t, &stubResolver{valid: map[string]*domainauth.Identity{"b": bob}})
		req := httptest.NewRequest(http.MethodGet, "/cars", nil)
		req.Header.Set("Cookie", "auth_token=")
		req.Header.Set("Authorization", "Bearer b")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bob", rec.Header().Get("X-User"))
	})
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	_, ok := GetIdentityFromContext(ctx)
	assert.False(t, ok)
	assert.Empty(t, GetCredentialFromContext(ctx))
	assert.Equal(t, ctx, SetIdentityInContext(ctx, nil))

	id := &domainauth.Identity{ID: 3}
	got, ok := GetIdentityFromContext(SetIdentityInContext(ctx, id))
	assert.True(t, ok)
	assert.Same(t, id, got)
}
