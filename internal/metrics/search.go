package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search engine Prometheus metrics.
var (
	// SearchRequestsTotal counts search executions by collection and outcome.
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gigdex",
			Name:      "search_requests_total",
			Help:      "Total number of search executions",
		},
		[]string{"collection", "status"},
	)

	// SearchWarningsTotal counts soft warnings attached to successful results.
	SearchWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gigdex",
			Name:      "search_warnings_total",
			Help:      "Total search warnings by kind",
		},
		[]string{"collection", "kind"},
	)

	// SearchPageDocs observes page sizes after local filtering.
	SearchPageDocs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gigdex",
			Name:      "search_page_documents",
			Help:      "Documents returned per search page after local filtering",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 200},
		},
		[]string{"collection"},
	)
)

func init() {
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchWarningsTotal)
	prometheus.MustRegister(SearchPageDocs)
}
