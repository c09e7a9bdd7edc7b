package measure

import (
	"sync"
)

// DefaultMeasure is an in-memory Measure.
type DefaultMeasure struct {
	mu    sync.Mutex
	Nodes map[string]Metric
}

// NewDefaultMeasure creates an empty measure.
func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Nodes: make(map[string]Metric),
	}
}

// AddMetric registers the metric of name, replacing any previous one.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := newDefaultMetric()
	m.Nodes[name] = mt

	return mt
}

// GetMetric returns the metric of name or nil.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt, ok := m.Nodes[name]
	if !ok {
		return nil
	}

	return mt
}

// AllMetrics returns a copy of the metrics by name.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.Nodes))
	for name, mt := range m.Nodes {
		all[name] = mt
	}

	return all
}

var _ Measure = (*DefaultMeasure)(nil)
