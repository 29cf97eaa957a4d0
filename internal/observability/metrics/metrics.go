// Package metrics names and tags the metrics the API emits.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/target/garage-api/internal/observability/errors"
	"github.com/target/garage-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// HTTPRequest describes one request served by a registered route.
type HTTPRequest struct {
	Route    string
	Status   int
	Duration time.Duration
}

// EmitHTTPRequest counts the request and records its latency.
func EmitHTTPRequest(sink statsd.Sink, in HTTPRequest) {
	if sink == nil {
		return
	}
	tags := statsd.Tags{
		"route":        in.Route,
		"status_class": StatusClass(in.Status),
	}
	sink.Count("http.request", 1, tags)
	sink.Timing("http.duration", in.Duration, tags)
}

// EmitGateDenied counts a request the authorization gate rejected.
func EmitGateDenied(sink statsd.Sink, step string) {
	if sink == nil {
		return
	}
	sink.Count("auth.gate.denied", 1, statsd.Tags{"step": step})
}

// ReaperRun describes one session cleanup pass.
type ReaperRun struct {
	Purged   int64
	Duration time.Duration
	Err      error
}

// EmitReaperRun records the outcome of a cleanup pass.
func EmitReaperRun(sink statsd.Sink, in ReaperRun) {
	if sink == nil {
		return
	}
	tags := statsd.Tags{"result": ResultSuccess}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count("reaper.run", 1, tags)
	sink.Timing("reaper.duration", in.Duration, tags)
	if in.Err == nil {
		sink.Count("reaper.purged", in.Purged, nil)
	}
}

// StatusClass maps 404 to "4xx".
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
