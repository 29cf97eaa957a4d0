package metrics

import (
	"maps"
	"sync"
	"time"

	"github.com/target/garage-api/internal/observability/statsd"
)

// Recorded is one metric captured by RecordingSink. Timings are in milliseconds.
type Recorded struct {
	Kind  string
	Name  string
	Value float64
	Tags  statsd.Tags
}

// RecordingSink keeps emitted metrics in memory for tests.
type RecordingSink struct {
	mu      sync.Mutex
	metrics []Recorded
}

func (s *RecordingSink) Count(name string, value int64, tags statsd.Tags) {
	s.add(Recorded{Kind: "count", Name: name, Value: float64(value), Tags: maps.Clone(tags)})
}

func (s *RecordingSink) Gauge(name string, value float64, tags statsd.Tags) {
	s.add(Recorded{Kind: "gauge", Name: name, Value: value, Tags: maps.Clone(tags)})
}

func (s *RecordingSink) Timing(name string, value time.Duration, tags statsd.Tags) {
	s.add(Recorded{Kind: "timing", Name: name, Value: float64(value) / float64(time.Millisecond), Tags: maps.Clone(tags)})
}

func (s *RecordingSink) add(r Recorded) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, r)
}

// Snapshot returns a copy of everything recorded so far.
func (s *RecordingSink) Snapshot() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.metrics...)
}

// Names returns the recorded metric names in emission order.
func (s *RecordingSink) Names() []string {
	snap := s.Snapshot()
	out := make([]string, len(snap))
	for i, r := range snap {
		out[i] = r.Name
	}
	return out
}
