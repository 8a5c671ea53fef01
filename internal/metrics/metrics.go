// Package metrics holds the Prometheus collectors of the client runtime and
// the progress server. Collectors are registered on the default registry at
// package initialisation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "save_keeper"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeQueued  = "queued"
)

var (
	tierOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "tier_operation_duration_seconds",
		Help:      "Duration of storage tier operations",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tier", "operation", "outcome"})

	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orchestrator",
		Name:      "saves_total",
		Help:      "Save requests by priority and outcome",
	}, []string{"priority", "outcome"})

	emergencyBackupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orchestrator",
		Name:      "emergency_backups_total",
		Help:      "Emergency backups taken or throttled",
	}, []string{"outcome"})

	cacheState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "connection_state",
		Help:      "1 for the current connection state of the cache tier, 0 otherwise",
	}, []string{"state"})

	cacheFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "fallback_total",
		Help:      "Cache operations served by the in-process fallback",
	})

	syncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "reconciles_total",
		Help:      "Reconcile cycles by push method and outcome",
	}, []string{"method", "outcome"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of progress server requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func outcome(success bool) string {
	if success {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// ObserveTier records one tier operation.
func ObserveTier(tier, operation string, success bool, d time.Duration) {
	tierOperationDuration.WithLabelValues(tier, operation, outcome(success)).Observe(d.Seconds())
}

// CountSave records one save request.
func CountSave(priority, result string) {
	savesTotal.WithLabelValues(priority, result).Inc()
}

// CountEmergencyBackup records an emergency backup; throttled ones count as failures.
func CountEmergencyBackup(taken bool) {
	emergencyBackupsTotal.WithLabelValues(outcome(taken)).Inc()
}

// SetCacheState marks state as the current one among all.
func SetCacheState(state string, all []string) {
	for _, s := range all {
		v := 0.0
		if s == state {
			v = 1
		}
		cacheState.WithLabelValues(s).Set(v)
	}
}

// CountCacheFallback records an operation served from the fallback cache.
func CountCacheFallback() {
	cacheFallbackTotal.Inc()
}

// CountSync records one reconcile cycle.
func CountSync(method, result string) {
	syncTotal.WithLabelValues(method, result).Inc()
}

// ObserveRequest records one HTTP request of the progress server.
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
