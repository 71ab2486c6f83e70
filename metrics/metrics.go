package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	preprocessLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nlp_preprocess_latency_ms",
		Help:    "End-to-end preprocessing latency in milliseconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 15, 20, 30, 50, 100},
	})

	intentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nlp_preprocess_intent_total",
		Help: "Classified intents by type",
	}, []string{"intent"})

	routingDecision = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nlp_preprocess_routing_total",
		Help: "Routing decisions (llm/direct)",
	}, []string{"decision"})

	dedupDropped = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nlp_preprocess_dedup_dropped",
		Help:    "History messages dropped per call by semantic deduplication",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 12, 20, 50},
	})

	expansionCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nlp_preprocess_expansions",
		Help:    "Query expansions generated per call",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 12, 20},
	})

	entityCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nlp_preprocess_entities",
		Help:    "Entities extracted per call",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 12},
	})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(preprocessLatency, intentTotal, routingDecision, dedupDropped, expansionCount, entityCount)
	})
}

// ObservePreprocess records end-to-end latency for one call.
func ObservePreprocess(start time.Time) {
	ensureRegistered()
	preprocessLatency.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

// IncIntent counts a classified intent and its routing decision.
func IncIntent(intent string, shouldCallLLM bool) {
	ensureRegistered()
	intentTotal.WithLabelValues(intent).Inc()
	decision := "direct"
	if shouldCallLLM {
		decision = "llm"
	}
	routingDecision.WithLabelValues(decision).Inc()
}

// ObserveDedup records how many history messages were dropped.
func ObserveDedup(dropped int) {
	ensureRegistered()
	dedupDropped.Observe(float64(dropped))
}

// ObserveExpansion records how many expansions were generated.
func ObserveExpansion(n int) {
	ensureRegistered()
	expansionCount.Observe(float64(n))
}

// ObserveEntities records how many entities were extracted.
func ObserveEntities(n int) {
	ensureRegistered()
	entityCount.Observe(float64(n))
}

// Collectors exposes all collectors for external registration with a custom registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		preprocessLatency, intentTotal, routingDecision, dedupDropped, expansionCount, entityCount,
	}
}
