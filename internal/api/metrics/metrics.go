// Package metrics defines and registers the custom Prometheus metrics of the
// Zanith API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry on package init via
// promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "zanith"

// ── Account metrics ──────────────────────────────────────────────────────────

// SignupsTotal counts accounts created.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "unknown_user" or "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionLookupsTotal counts session token resolutions.
// Label:
//   - source: "cache" (Redis hit), "store" (Mongo hit) or "rejected"
var SessionLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_lookups_total",
		Help:      "Total number of session token lookups, by resolution source.",
	},
	[]string{"source"},
)

// ── Song metrics ─────────────────────────────────────────────────────────────

var ListensTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listens_total",
		Help:      "Total number of listens recorded.",
	},
)

// LikesToggledTotal counts like toggles.
// Label:
//   - action: "like" or "unlike"
var LikesToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_toggled_total",
		Help:      "Total number of like toggles, by resulting action.",
	},
	[]string{"action"},
)

// CommentsTotal counts comment mutations.
// Label:
//   - action: "add" or "delete"
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment mutations, by action.",
	},
	[]string{"action"},
)

// UploadsTotal counts upload registrations.
// Label:
//   - result: "ok", "signature_mismatch" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of song upload registrations, by result.",
	},
	[]string{"result"},
)

// PlaybackQueueDepth tracks pending playback events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var PlaybackQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "playback_queue_depth",
		Help:      "Current number of playback events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
