// internal/pipeline/metrics.go
package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the pipeline's Prometheus instrumentation.
type Metrics struct {
	DrainsTotal      prometheus.Counter
	DrainDuration    prometheus.Histogram
	PendingElements  prometheus.Gauge
	PostsExtracted   prometheus.Counter
	PostsRejected    prometheus.Counter
	ExtractionErrors prometheus.Counter
	StoreSize        prometheus.Gauge
}

// NewMetrics registers the pipeline metrics with the given registerer. A nil
// registerer falls back to the default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		DrainsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "postline",
			Subsystem: "pipeline",
			Name:      "drains_total",
			Help:      "Number of queue drain executions",
		}),
		DrainDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "postline",
			Subsystem: "pipeline",
			Name:      "drain_duration_seconds",
			Help:      "Duration of queue drain executions",
			Buckets:   prometheus.DefBuckets,
		}),
		PendingElements: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "postline",
			Subsystem: "pipeline",
			Name:      "pending_elements",
			Help:      "Candidate elements currently queued",
		}),
		PostsExtracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "postline",
			Subsystem: "pipeline",
			Name:      "posts_extracted_total",
			Help:      "Records accepted into the store",
		}),
		PostsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "postline",
			Subsystem: "pipeline",
			Name:      "posts_rejected_total",
			Help:      "Candidate elements rejected by the assembler",
		}),
		ExtractionErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "postline",
			Subsystem: "pipeline",
			Name:      "extraction_errors_total",
			Help:      "Per-element extraction failures recovered during drains",
		}),
		StoreSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "postline",
			Subsystem: "pipeline",
			Name:      "store_size",
			Help:      "Records currently held by the store",
		}),
	}
}
