// Package metrics defines and registers all custom Prometheus metrics for
// the school portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - result: "ok" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// MenuRequestsTotal counts sidebar menu builds per resolved role.
var MenuRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_requests_total",
		Help:      "Total number of navigation menus served, by canonical role.",
	},
	[]string{"role"},
)

// GuardRedirectsTotal counts unauthenticated requests redirected to login by
// the route guard.
var GuardRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route-guard redirects to the login page.",
	},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ChapterTreeBuildsTotal counts chapter trees assembled from catalog data.
var ChapterTreeBuildsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chapter_tree_builds_total",
		Help:      "Total number of chapter trees built from flat catalog records.",
	},
)

// StaleFetchDiscardsTotal counts catalog fetch results discarded because a
// newer fetch generation was issued while they were in flight.
var StaleFetchDiscardsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_fetch_discards_total",
		Help:      "Total number of chapter tree fetches discarded as stale.",
	},
)

// ── Attachment metrics ────────────────────────────────────────────────────────

// SignedURLRequestsTotal counts upstream signed-URL resolutions.
// Labels:
//   - result: "ok" or "error"
var SignedURLRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signed_url_requests_total",
		Help:      "Total number of upstream signed-URL requests, by result.",
	},
	[]string{"result"},
)

// SignedURLDedupTotal counts burst-window deduplication decisions.
// Labels:
//   - result: "hit" (shared an in-flight or fresh call) or "miss"
var SignedURLDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signed_url_dedup_total",
		Help:      "Total number of signed-URL dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AccessEventsTotal counts audit events written to the access trail.
// Labels:
//   - result: "ok" or "error"
var AccessEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_events_total",
		Help:      "Total number of attachment access audit events, by result.",
	},
	[]string{"result"},
)

// AccessQueueDepth tracks events waiting in each dispatcher worker channel.
// Labels:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AccessQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "access_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
