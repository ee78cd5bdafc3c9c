package i915

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vkngwrapper/bufmgr/gbm"
)

// backendMetrics exports object creation per heap. A nil *backendMetrics records nothing.
type backendMetrics struct {
	allocationsTotal *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
	allocatedBytes   *prometheus.GaugeVec
}

func newBackendMetrics(registerer prometheus.Registerer) (*backendMetrics, error) {
	if registerer == nil {
		return nil, nil
	}

	m := &backendMetrics{
		allocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gbm",
				Subsystem: "i915",
				Name:      "allocations_total",
				Help:      "Total number of buffer objects created",
			},
			[]string{"heap"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gbm",
				Subsystem: "i915",
				Name:      "allocation_failures_total",
				Help:      "Total number of buffer object creations the kernel rejected",
			},
			[]string{"heap"},
		),
		allocatedBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gbm",
				Subsystem: "i915",
				Name:      "allocated_bytes",
				Help:      "Bytes held by live buffer objects",
			},
			[]string{"heap"},
		),
	}

	for _, collector := range []prometheus.Collector{m.allocationsTotal, m.failuresTotal, m.allocatedBytes} {
		if err := registerer.Register(collector); err != nil {
			return nil, errors.Wrap(err, "failed to register backend metrics")
		}
	}

	return m, nil
}

func (m *backendMetrics) recordAllocation(heap gbm.Heap, size uint64) {
	if m == nil {
		return
	}

	m.allocationsTotal.WithLabelValues(heap.String()).Inc()
	m.allocatedBytes.WithLabelValues(heap.String()).Add(float64(size))
}

func (m *backendMetrics) recordFailure(heap gbm.Heap) {
	if m == nil {
		return
	}

	m.failuresTotal.WithLabelValues(heap.String()).Inc()
}

func (m *backendMetrics) recordFree(heap gbm.Heap, size uint64) {
	if m == nil {
		return
	}

	m.allocatedBytes.WithLabelValues(heap.String()).Sub(float64(size))
}
