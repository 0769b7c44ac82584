package ports

import "time"

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Observer receives ingestion and query outcomes, typically for metrics.
type Observer interface {
	ObserveIngest(network string, kind string, outcome string)
	ObserveQuery(kind string, outcome string, elapsed time.Duration)
}

// NopObserver discards observations.
type NopObserver struct{}

func (NopObserver) ObserveIngest(string, string, string)       {}
func (NopObserver) ObserveQuery(string, string, time.Duration) {}
