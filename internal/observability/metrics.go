// Package observability holds the Prometheus collectors for a sync run.
// The binary is short-lived, so metrics are pushed to a Pushgateway on
// completion when one is configured.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/AndreyKarmanov/aw-garmin/internal/domain"
)

// Failure stages, used as the label on the failure counter.
const (
	StageFetch = "fetch"
	StageWrite = "write"
)

var (
	eventsSynced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aw_garmin",
		Subsystem: "sync",
		Name:      "events_synced_total",
		Help:      "Events written to the event store, by category.",
	}, []string{"category"})
	runFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aw_garmin",
		Subsystem: "sync",
		Name:      "run_failures_total",
		Help:      "Fatal run failures, by pipeline stage.",
	}, []string{"stage"})
	lastSuccessGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "aw_garmin",
		Subsystem: "sync",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful sync.",
	})
)

func init() {
	prometheus.MustRegister(eventsSynced, runFailures, lastSuccessGauge)
}

// RecordSynced adds to the per-category synced counter.
func RecordSynced(category domain.Category, count int) {
	if count < 0 {
		return
	}
	eventsSynced.WithLabelValues(string(category)).Add(float64(count))
}

// RecordFailure counts a fatal failure in the given stage.
func RecordFailure(stage string) {
	runFailures.WithLabelValues(stage).Inc()
}

// RecordSuccess updates the last-success watermark.
func RecordSuccess(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastSuccessGauge.Set(float64(ts.Unix()))
}

// Push sends the default registry to a Pushgateway under the given job
// name. Callers skip this when no gateway is configured.
func Push(gatewayURL, job string) error {
	return push.New(gatewayURL, job).
		Gatherer(prometheus.DefaultGatherer).
		Push()
}
