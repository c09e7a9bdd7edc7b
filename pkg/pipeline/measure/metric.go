package measure

import (
	"sync"
	"time"
)

// TransportInfo is the duration observed from one input and the number of observations behind it.
type TransportInfo struct {
	Elapsed time.Duration
	Count   int64
}

// span sums the durations observed for a node or one of its inputs.
type span struct {
	sum time.Duration
	n   int64
}

func (s *span) add(d time.Duration) {
	s.sum += d
	s.n++
}

func (s span) mean() time.Duration {
	if s.n == 0 {
		return 0
	}

	return round(s.sum / time.Duration(s.n))
}

// DefaultMetric is an in-memory Metric, safe for concurrent use.
type DefaultMetric struct {
	mu     sync.Mutex
	node   span
	inputs map[string]*span
	total  time.Duration
}

func newDefaultMetric() *DefaultMetric {
	return &DefaultMetric{inputs: make(map[string]*span)}
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.node.add(elapsed)
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.node.mean()
}

func (mt *DefaultMetric) SetTotalDuration(total time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.total = total
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) AddTransportDuration(inputName string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	s, ok := mt.inputs[inputName]
	if !ok {
		s = &span{}
		mt.inputs[inputName] = s
	}

	s.add(elapsed)
}

// AVGTransportDuration returns the mean duration per input.
func (mt *DefaultMetric) AVGTransportDuration() map[string]*TransportInfo {
	return mt.transports(func(s span) time.Duration { return s.mean() })
}

// AllTransports returns the summed duration per input.
func (mt *DefaultMetric) AllTransports() map[string]*TransportInfo {
	return mt.transports(func(s span) time.Duration { return s.sum })
}

func (mt *DefaultMetric) transports(value func(span) time.Duration) map[string]*TransportInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	out := make(map[string]*TransportInfo, len(mt.inputs))
	for name, s := range mt.inputs {
		out[name] = &TransportInfo{Elapsed: value(*s), Count: s.n}
	}

	return out
}

var _ Metric = (*DefaultMetric)(nil)

// round drops the precision below the largest unit d exceeds, down to microseconds.
func round(d time.Duration) time.Duration {
	for _, unit := range []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond} {
		if d > unit {
			return d.Round(unit)
		}
	}

	return d
}
