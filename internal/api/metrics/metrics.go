// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogWritesTotal counts successful admin writes to the catalog.
// Labels:
//   - entity: "product" or "category"
//   - op: "create", "update", or "delete"
var CatalogWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_writes_total",
		Help:      "Total number of successful catalog writes, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// MediaUploadsTotal counts image upload attempts.
// Label:
//   - result: "success", "rejected" (validation), or "error" (storage)
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of image upload attempts, by result.",
	},
	[]string{"result"},
)

// MediaUploadBytes observes the declared size of accepted uploads.
var MediaUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "media_upload_bytes",
		Help:      "Declared size in bytes of accepted image uploads.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 6), // 16KiB … 16MiB
	},
)
