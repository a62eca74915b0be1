// Package metrics exposes practice, collection and translation metrics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records the learner's activity as Prometheus metrics.
// It satisfies usecase.MetricsRecorder and translate.Recorder.
type Collector struct {
	answers      *prometheus.CounterVec
	xp           prometheus.Counter
	collections  *prometheus.GaugeVec
	translations *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lingua_answers_total",
			Help: "Graded practice answers by mode and result.",
		}, []string{"mode", "result"}),
		xp: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lingua_xp_awarded_total",
			Help: "Experience points granted, bonuses included.",
		}),
		collections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lingua_collection_size",
			Help: "Number of entries per collection.",
		}, []string{"kind"}),
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lingua_translations_total",
			Help: "Translation lookups by the source that answered.",
		}, []string{"source"}),
	}

	reg.MustRegister(c.answers, c.xp, c.collections, c.translations)
	return c
}

func (c *Collector) ObserveAnswer(mode string, correct bool, xp int) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	c.answers.WithLabelValues(mode, result).Inc()
	if xp > 0 {
		c.xp.Add(float64(xp))
	}
}

func (c *Collector) SetCollectionSize(kind string, n int) {
	c.collections.WithLabelValues(kind).Set(float64(n))
}

func (c *Collector) ObserveTranslation(source string) {
	c.translations.WithLabelValues(source).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
