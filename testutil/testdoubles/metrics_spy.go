package testdoubles

import (
	"sync"
	"time"

	"github.com/yeuyeduyin/DataFX/provider"
)

// MetricsSpy is a provider.MetricsCollector implementation that captures
// metric calls for assertions. It is safe for concurrent use.
type MetricsSpy struct {
	mu        sync.Mutex
	durations []SpyMetricCall
	counters  []SpyMetricCall
	values    []SpyMetricCall
}

// SpyMetricCall represents one recorded metric call.
type SpyMetricCall struct {
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// NewMetricsSpy creates a new MetricsSpy instance.
func NewMetricsSpy() *MetricsSpy {
	return &MetricsSpy{}
}

// RecordDuration implements the provider.MetricsCollector interface.
func (s *MetricsSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, SpyMetricCall{Metric: metric, Duration: duration, Labels: labels})
}

// IncrementCounter implements the provider.MetricsCollector interface.
func (s *MetricsSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, SpyMetricCall{Metric: metric, Labels: labels})
}

// RecordValue implements the provider.MetricsCollector interface.
func (s *MetricsSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, SpyMetricCall{Metric: metric, Value: value, Labels: labels})
}

// Durations returns a copy of all recorded duration calls in order.
func (s *MetricsSpy) Durations() []SpyMetricCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricCall(nil), s.durations...)
}

// Counters returns a copy of all recorded counter calls in order.
func (s *MetricsSpy) Counters() []SpyMetricCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricCall(nil), s.counters...)
}

// Values returns a copy of all recorded value calls in order.
func (s *MetricsSpy) Values() []SpyMetricCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricCall(nil), s.values...)
}

// CounterCount returns how often the given counter was incremented, summed
// over all label sets.
func (s *MetricsSpy) CounterCount(metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, call := range s.counters {
		if call.Metric == metric {
			count++
		}
	}

	return count
}

// Ensure MetricsSpy implements provider.MetricsCollector.
var _ provider.MetricsCollector = (*MetricsSpy)(nil)
