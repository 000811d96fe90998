package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "gce_snapshots"

	LabelOutcome  = "outcome"
	LabelTrigger  = "trigger"
	LabelProvider = "provider"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// RunsTotal counts finished runs by outcome and what started them
	RunsTotal = newCounterVec(
		"runs_total",
		"Number of finished snapshot rotation runs",
		LabelOutcome, LabelTrigger,
	)
	SnapshotsCreated = newCounterVec(
		"snapshots_created_total",
		"Number of snapshots created",
		LabelProvider,
	)
	SnapshotsDeleted = newCounterVec(
		"snapshots_deleted_total",
		"Number of expired snapshots deleted",
		LabelProvider,
	)
	RunDuration = newHistogramVec(
		"run_duration_seconds",
		"Wall time of a snapshot rotation run",
		LabelOutcome,
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome maps a run error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}

func newHistogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}
