package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAllowlistEntry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"POST /users", "POST /users"},
		{"  post   /users/login ", "POST /users/login"},
		{"GET /cars/:id", "GET /cars/{id}"},
		{"GET /cars/{id}", "GET /cars/{id}"},
		{"GET /docs/", "GET /docs/{$}"},
		{"GET /files/{rest...}", "GET /files/{rest...}"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeAllowlistEntry(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewAllowlist_Invalid(t *testing.T) {
	for _, entry := range []string{
		"/users",
		"POST users",
		"FETCH /users",
		"POST /users extra",
		"GET /cars/:",
		"GET /cars/{id",
	} {
		t.Run(entry, func(t *testing.T) {
			_, err := NewAllowlist([]string{entry})
			require.Error(t, err)
		})
	}
}

func TestNewAllowlist_Conflict(t *testing.T) {
	_, err := NewAllowlist([]string{"GET /cars/{id}", "GET /cars/{carID}"})
	require.Error(t, err)
}

func TestNewAllowlist_Dedupes(t *testing.T) {
	a, err := NewAllowlist([]string{"POST /users", "post /users", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"POST /users"}, a.Patterns())
}

func TestAllowlist_Allows(t *testing.T) {
	a, err := NewAllowlist([]string{"POST /users", "POST /users/login", "GET /cars/:id", "GET /docs/"})
	require.NoError(t, err)

	tests := []struct {
		method, path string
		want         bool
	}{
		{http.MethodPost, "/users", true},
		{http.MethodPost, "/users/login", true},
		{http.MethodGet, "/users", false},
		{http.MethodPost, "/users/5", false},
		{http.MethodPost, "/users/login/x", false},
		{http.MethodGet, "/cars/12", true},
		{http.MethodHead, "/cars/12", true},
		{http.MethodDelete, "/cars/12", false},
		{http.MethodGet, "/cars", false},
		{http.MethodGet, "/cars/12/wheels", false},
		{http.MethodGet, "/docs/", true},
		{http.MethodGet, "/docs/secret", false},
		{http.MethodPost, "//users", false},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "http://example.com"+tt.path, nil)
			assert.Equal(t, tt.want, a.Allows(r))
		})
	}
}

func TestAllowlist_NilAndEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/users", nil)
	var nilList *Allowlist
	assert.False(t, nilList.Allows(r))

	empty, err := NewAllowlist(nil)
	require.NoError(t, err)
	assert.False(t, empty.Allows(r))
}
