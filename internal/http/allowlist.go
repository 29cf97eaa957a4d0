package httpx

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// allowed marks allowlist registrations inside the matching mux. It never serves.
type allowed struct{}

func (allowed) ServeHTTP(http.ResponseWriter, *http.Request) {}

var allowlistMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// Allowlist matches (method, path) pairs that pass the gate without a credential.
// Entries are ServeMux patterns such as "POST /users" or "GET /cars/{id}".
type Allowlist struct {
	mux      *http.ServeMux
	patterns []string
}

// NewAllowlist compiles the entries. An entry that is malformed, or that
// conflicts with an earlier one, is an error.
func NewAllowlist(entries []string) (*Allowlist, error) {
	a := &Allowlist{mux: http.NewServeMux()}
	for _, raw := range entries {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		pattern, err := normalizeAllowlistEntry(raw)
		if err != nil {
			return nil, err
		}
		if slices.Contains(a.patterns, pattern) {
			continue
		}
		if err := registerAllowed(a.mux, pattern); err != nil {
			return nil, fmt.Errorf("allowlist entry %q: %w", raw, err)
		}
		a.patterns = append(a.patterns, pattern)
	}
	return a, nil
}

// Allows reports whether the request matches an entry. GET entries admit HEAD.
func (a *Allowlist) Allows(r *http.Request) bool {
	if a == nil || len(a.patterns) == 0 {
		return false
	}
	h, _ := a.mux.Handler(r)
	_, ok := h.(allowed)
	return ok
}

// Patterns returns the compiled patterns in registration order.
func (a *Allowlist) Patterns() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.patterns)
}

func registerAllowed(mux *http.ServeMux, pattern string) (err error) {
	// ServeMux reports bad or conflicting patterns by panicking.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()
	mux.Handle(pattern, allowed{})
	return nil
}

// normalizeAllowlistEntry turns "post   /cars/:id/" into "POST /cars/{id}/{$}".
func normalizeAllowlistEntry(raw string) (string, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return "", fmt.Errorf("allowlist entry %q: want \"METHOD /path\"", raw)
	}
	method := strings.ToUpper(fields[0])
	if !slices.Contains(allowlistMethods, method) {
		return "", fmt.Errorf("allowlist entry %q: unknown method %q", raw, fields[0])
	}
	path := fields[1]
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("allowlist entry %q: path must start with /", raw)
	}

	segs := strings.Split(path, "/")
	for i, s := range segs {
		if name, ok := strings.CutPrefix(s, ":"); ok {
			if name == "" {
				return "", fmt.Errorf("allowlist entry %q: empty parameter name", raw)
			}
			segs[i] = "{" + name + "}"
		}
	}
	path = strings.Join(segs, "/")

	// A trailing slash would otherwise match the whole subtree.
	if strings.HasSuffix(path, "/") {
		path += "{$}"
	}
	return method + " " + path, nil
}
