// Package metrics defines Prometheus metrics for the schema service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CompilesTotal counts schema compilations by entry kind, embed mode,
	// and outcome.
	CompilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telhawk_schema_compiles_total",
			Help: "Total number of schema compilations",
		},
		[]string{"kind", "embed", "outcome"},
	)

	// CompileDuration tracks how long compilations take.
	CompileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "telhawk_schema_compile_duration_seconds",
			Help:    "Duration of schema compilations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheHits counts compilations answered from the schema cache.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telhawk_schema_cache_hits_total",
			Help: "Total number of schema cache hits",
		},
	)

	// CacheMisses counts compilations the cache could not answer.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telhawk_schema_cache_misses_total",
			Help: "Total number of schema cache misses",
		},
	)

	// CatalogClasses reports the class count of the bound catalog version.
	CatalogClasses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "telhawk_schema_catalog_classes",
			Help: "Number of classes in the bound catalog version",
		},
	)

	// CatalogObjects reports the object count of the bound catalog version.
	CatalogObjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "telhawk_schema_catalog_objects",
			Help: "Number of objects in the bound catalog version",
		},
	)

	// UIDLookups counts class UID resolutions by outcome.
	UIDLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telhawk_schema_uid_lookups_total",
			Help: "Total number of class UID lookups",
		},
		[]string{"outcome"},
	)

	// HTTPRequestDuration tracks HTTP request latency by method and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telhawk_schema_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)
