// Package metrics provides Prometheus instrumentation for the webhook
// pipeline: update dispositions, verdict categories, admin action outcomes,
// and classification latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpdatesTotal counts webhook deliveries by disposition:
	// "unauthorized", "ignored", "analyzed".
	UpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "groupguard_updates_total",
		Help: "Webhook updates received, by disposition",
	}, []string{"disposition"})

	// VerdictsTotal counts classification verdicts by category. Fail-open
	// outcomes are recorded under "ERROR".
	VerdictsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "groupguard_verdicts_total",
		Help: "Classification verdicts, by category",
	}, []string{"category"})

	// ActionsTotal counts admin actions by action ("delete", "ban") and
	// outcome ("ok", "error").
	ActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "groupguard_actions_total",
		Help: "Moderation actions attempted, by action and outcome",
	}, []string{"action", "outcome"})

	// ClassifyDuration records classification call latency in seconds.
	ClassifyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "groupguard_classify_duration_seconds",
		Help:    "Classification call latency in seconds",
		Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 30},
	})
)

func init() {
	prometheus.MustRegister(
		UpdatesTotal,
		VerdictsTotal,
		ActionsTotal,
		ClassifyDuration,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
