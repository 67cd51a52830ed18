package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	cycleRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "cycle_runs_total",
		Help:      "Cycle executions by cycle name and outcome.",
	}, []string{"cycle", "outcome"})

	cycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "cycle_duration_seconds",
		Help:      "Cycle wall time by cycle name.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"cycle"})

	opportunitiesDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "opportunities_detected_total",
		Help:      "Opportunities surviving filters, conflicts and throttle.",
	})

	opportunitiesEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "opportunities_enqueued_total",
		Help:      "Opportunities accepted into the dispatch queue.",
	})

	alertsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "alerts_dispatched_total",
		Help:      "Tracked bets created from drained queue entries.",
	})

	betsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "bets_expired_total",
		Help:      "Pending bets expired by the sweep cycle.",
	})

	betsVoided = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "bets_voided_total",
		Help:      "Pending bets voided after edge revalidation.",
	})

	betsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "bets_settled_total",
		Help:      "Played bets graded by the settlement cycle, by result.",
	}, []string{"result"})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "valuebet",
		Subsystem: "worker",
		Name:      "dispatch_queue_depth",
		Help:      "Entries waiting in the dispatch queue after the last drain.",
	})
)
