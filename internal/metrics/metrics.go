// Package metrics holds the prometheus collectors exported by
// cmd/chainindexer's "serve" subcommand on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BlocksIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chainlens",
		Name:      "blocks_ingested_total",
		Help:      "Total block records successfully decoded.",
	})

	TransactionsIngested = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chainlens",
		Name:      "transactions_ingested_total",
		Help:      "Total transactions successfully decoded.",
	})

	DecodeErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainlens",
		Name:      "decode_errors_total",
		Help:      "Decode errors by kind.",
	}, []string{"kind"})

	ChainHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "chainlens",
		Name:      "chain_height",
		Help:      "Height of the resolved main chain's tip.",
	})

	IngestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "chainlens",
		Name:      "ingest_duration_seconds",
		Help:      "Wall-clock time to ingest and resolve the configured block directory.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		BlocksIngested,
		TransactionsIngested,
		DecodeErrors,
		ChainHeight,
		IngestDuration,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
