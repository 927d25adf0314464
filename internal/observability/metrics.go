package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	batchStudentsProcessed *prometheus.CounterVec
	batchDurationSeconds   prometheus.Histogram
	generatorSkippedTotal  prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors for the batch agent.
func RegisterMetrics() {
	registerOnce.Do(func() {
		batchStudentsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agent_students_processed_total",
			Help: "Students handled by batch agent runs, by outcome.",
		}, []string{"outcome"})

		batchDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "agent_batch_duration_seconds",
			Help:    "Duration distribution of full batch agent runs.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		})

		generatorSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "agent_generator_skipped_total",
			Help: "Recommendation generations skipped because the generator was disabled or failed.",
		})

		prometheus.MustRegister(batchStudentsProcessed, batchDurationSeconds, generatorSkippedTotal)
	})
}

// BatchStudents exposes the per-outcome student counter.
func BatchStudents() *prometheus.CounterVec {
	RegisterMetrics()
	return batchStudentsProcessed
}

// BatchDuration exposes the batch run duration histogram.
func BatchDuration() prometheus.Histogram {
	RegisterMetrics()
	return batchDurationSeconds
}

// GeneratorSkipped exposes the skipped-generation counter.
func GeneratorSkipped() prometheus.Counter {
	RegisterMetrics()
	return generatorSkippedTotal
}
