package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store Metrics
	StoreRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_store_requests_total",
		Help: "The total number of HTTP requests issued against the remote score store",
	})
	StoreRequestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_store_request_errors_total",
		Help: "The total number of transport-level failures talking to the remote score store",
	})
	StoreDecodeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_store_decode_failures_total",
		Help: "The total number of response payloads that could not be decoded",
	})
	StoreSearchPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_store_search_pages_total",
		Help: "The total number of leaderboard pages fetched by the player search",
	})
	StoreRequestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scoresync_store_request_latency_seconds",
		Help:    "Latency of individual HTTP round trips to the remote score store",
		Buckets: prometheus.DefBuckets,
	})

	// Submit Metrics
	SubmitEnqueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_submit_enqueued_total",
		Help: "The total number of score submissions accepted into the submit queue",
	})
	SubmitConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_submit_confirmed_total",
		Help: "The total number of score submissions confirmed by the remote store",
	})
	SubmitFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_submit_failed_total",
		Help: "The total number of score submissions that failed and were left journaled",
	})
	SubmitReplayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoresync_submit_replayed_total",
		Help: "The total number of journaled submissions replayed at service start",
	})
)
