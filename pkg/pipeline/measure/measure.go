package measure

import (
	"sync"
)

// Key is the metric name of a step of a pipeline. An empty step is the pipeline itself.
func Key(pipeline, step string) string {
	if step == "" {
		return pipeline
	}

	return pipeline + "/" + step
}

// DefaultMeasure keeps metrics in memory.
type DefaultMeasure struct {
	mu    sync.Mutex
	Steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		mu: &sync.Mutex{},
	}
	m.Steps[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt, ok := m.Steps[name]
	if !ok {
		return nil
	}

	return mt
}

// AllMetrics returns a copy of the metrics by name.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.Steps))
	for name, mt := range m.Steps {
		all[name] = mt
	}

	return all
}

var _ Measure = (*DefaultMeasure)(nil)
