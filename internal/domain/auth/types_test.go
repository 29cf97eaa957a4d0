package auth

import (
	"testing"
	"time"

	"github.com/target/garage-api/internal/domain/model"
)

func TestSession_ValidBoundary(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d := 1500 * time.Millisecond
	s := Session{ID: "id", UserID: 1, StartTime: start}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "at start", now: start, want: true},
		{name: "d minus 1ms", now: start.Add(d - time.Millisecond), want: true},
		{name: "exactly d", now: start.Add(d), want: true},
		{name: "d plus 1ms", now: start.Add(d + time.Millisecond), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Valid(tc.now, d); got != tc.want {
				t.Fatalf("Valid(%v) = %v, want %v", tc.now.Sub(start), got, tc.want)
			}
		})
	}
	if !s.ExpiresAt(d).Equal(start.Add(d)) {
		t.Fatalf("unexpected expiry %v", s.ExpiresAt(d))
	}
}

func TestIdentityFromUser(t *testing.T) {
	id := IdentityFromUser(model.PublicUser{ID: 3, Username: "alice", Fullname: "Alice", IsAdmin: true})
	want := Identity{ID: 3, Username: "alice", Fullname: "Alice", IsAdmin: true}
	if *id != want {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
