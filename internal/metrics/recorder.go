// Package metrics defines the observability hooks of page generation.
package metrics

import "time"

// Outcome labels a finished page generation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Recorder receives page-generation measurements.
type Recorder interface {
	ObservePageDuration(format string, d time.Duration)
	IncPageOutcome(format string, outcome Outcome)
	IncOutputRetry(format string)
}

// NoopRecorder is the default when metrics are not configured.
type NoopRecorder struct{}

func (NoopRecorder) ObservePageDuration(string, time.Duration) {}
func (NoopRecorder) IncPageOutcome(string, Outcome)            {}
func (NoopRecorder) IncOutputRetry(string)                     {}
