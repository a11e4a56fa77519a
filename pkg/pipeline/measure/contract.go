package measure

import "time"

// Measure holds the metrics of every pipeline and step a registry ran.
type Measure interface {
	// AddMetric returns the metric stored under name, creating it when needed.
	AddMetric(name string) Metric
	// GetMetric returns the metric stored under name, nil if there is none.
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric aggregates the runs of a pipeline or of one of its steps.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddFailure()
	AVGDuration() time.Duration
	Total() int64
	Failures() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
