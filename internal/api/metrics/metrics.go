// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry at import time via promauto; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// UsersRegisteredTotal counts successfully created accounts.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// PostsCreatedTotal counts newly created posts.
// Label:
//   - category: the category title the post was filed under
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by category.",
	},
	[]string{"category"},
)

// LikeTogglesTotal counts like toggles.
// Label:
//   - action: "like" or "unlike"
var LikeTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "like_toggles_total",
		Help:      "Total number of like toggles, by resulting action.",
	},
	[]string{"action"},
)

// AuthDenialsTotal counts authorization denials.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of denied requests, by denial reason.",
	},
	[]string{"reason"},
)

// CascadesTotal counts completed delete cascades.
// Label:
//   - op: "delete_post" or "delete_user"
var CascadesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascades_total",
		Help:      "Total number of delete cascades that ran to completion.",
	},
	[]string{"op"},
)

// CascadeAbortsTotal counts cascades that aborted mid-sequence.
// Labels:
//   - op:   "delete_post" or "delete_user"
//   - step: the step that failed (e.g. "delete_comments")
var CascadeAbortsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_aborts_total",
		Help:      "Total number of delete cascades aborted mid-sequence, by failing step.",
	},
	[]string{"op", "step"},
)
