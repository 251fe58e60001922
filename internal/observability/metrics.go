package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailures counts rejected bearer tokens and sign-ins by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_failures_total",
		Help: "Total number of authentication failures by reason",
	}, []string{"reason"})

	// AuthorizationDenials counts ownership checks that refused a mutation.
	AuthorizationDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "authorization_denials_total",
		Help: "Total number of mutations refused because the actor is not the owner",
	}, []string{"operation"})

	// CacheRequests counts cache-aside lookups by keyspace and outcome (hit, miss, error).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classifieds_cache_requests_total",
		Help: "Total number of cache lookups by keyspace and outcome",
	}, []string{"keyspace", "outcome"})
)

var (
	httpMetricsOnce sync.Once
	httpMetrics     *fiberprometheus.FiberPrometheus
)

// HTTPMetrics returns the process-wide fiberprometheus middleware.
// fiberprometheus registers its collectors on the default registry, so it is
// built once and shared by every Server in the process.
func HTTPMetrics() *fiberprometheus.FiberPrometheus {
	httpMetricsOnce.Do(func() {
		httpMetrics = fiberprometheus.New(ServiceName)
	})
	return httpMetrics
}
