package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "websearch"

// Search реализует tavily.Recorder
type Search struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ResultsReturnedTotal prometheus.Counter
	ResultsFilteredTotal prometheus.Counter
}

// New регистрирует метрики в reg. nil reg - prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) *Search {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &Search{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_requests_total",
				Help:      "Total number of search API requests",
			},
			[]string{"provider", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_request_duration_seconds",
				Help:      "Search request duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"provider"},
		),
		ResultsReturnedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_results_returned_total",
				Help:      "Total number of results returned to callers",
			},
		),
		ResultsFilteredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_results_filtered_total",
				Help:      "Total number of provider results dropped by the domain allow-list",
			},
		),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor отдает метрики конкретного registry
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Search) RecordSearch(status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues("tavily", status).Inc()
	m.RequestDuration.WithLabelValues("tavily").Observe(duration.Seconds())
}

func (m *Search) RecordResults(returned, filtered int) {
	m.ResultsReturnedTotal.Add(float64(returned))
	m.ResultsFilteredTotal.Add(float64(filtered))
}
