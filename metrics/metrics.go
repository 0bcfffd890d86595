// Package metrics holds the prometheus collectors shared by the cache, the
// validators and the HTTP service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cardmeta"

var (
	MetadataFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_fetches_total",
		Help:      "Card metadata fetches issued, by result.",
	}, []string{"result"})

	MetadataCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_coalesced_total",
		Help:      "Retrieve calls that joined an in-flight fetch.",
	})

	MetadataLearnedRanges = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_learned_ranges_total",
		Help:      "Ranges appended to metadata caches from fetches.",
	})

	Validations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validations_total",
		Help:      "Validation results served over HTTP, by field and status.",
	}, []string{"field", "status"})

	BinDatabaseRanges = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "bindb_ranges",
		Help:      "Ranges currently held by the BIN database.",
	})
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
