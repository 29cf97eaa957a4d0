package data

import (
	"reflect"
	"testing"

	"github.com/target/garage-api/internal/core"
	"github.com/target/garage-api/internal/ports"
)

var (
	_ core.UserRepository          = (*UserRepo)(nil)
	_ core.CarRepository           = (*CarRepo)(nil)
	_ core.SessionReaperRepository = (*SessionRepo)(nil)
	_ ports.SessionStore           = (*SessionRepo)(nil)
)

func TestRepoExportedMethodsMatchAllowlist(t *testing.T) {
	tests := []struct {
		name    string
		repo    any
		allowed []string
	}{
		{"UserRepo", &UserRepo{}, []string{"Create", "Delete", "GetByID", "GetByUsername", "List", "Update"}},
		{"CarRepo", &CarRepo{}, []string{"Create", "Delete", "GetByID", "List", "Update"}},
		{"SessionRepo", &SessionRepo{}, []string{"Delete", "DeleteExpired", "Get", "Save"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := make(map[string]struct{}, len(tt.allowed))
			for _, m := range tt.allowed {
				allowed[m] = struct{}{}
			}

			methods := reflect.TypeOf(tt.repo)
			seen := make(map[string]struct{})
			for i := range methods.NumMethod() {
				m := methods.Method(i)
				if !m.IsExported() {
					continue
				}
				if _, ok := allowed[m.Name]; !ok {
					t.Fatalf("unexpected exported method on %s: %s", tt.name, m.Name)
				}
				seen[m.Name] = struct{}{}
			}
			for name := range allowed {
				if _, ok := seen[name]; !ok {
					t.Fatalf("expected %s to export method %s", tt.name, name)
				}
			}
		})
	}
}
