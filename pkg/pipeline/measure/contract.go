// Package measure records how long the builder spent on every node.
package measure

import "time"

// Measure holds one metric per node key.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric records the durations of a single node.
type Metric interface {
	// AddDuration records the time spent creating and configuring the node.
	AddDuration(elapsed time.Duration)
	// AddTransportDuration records the time between the input node being ready and this node being ready.
	AddTransportDuration(inputName string, elapsed time.Duration)
	AVGDuration() time.Duration
	AVGTransportDuration() map[string]*TransportInfo
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	AllTransports() map[string]*TransportInfo
}
