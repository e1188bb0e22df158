// Package metrics defines the application's Prometheus counters. HTTP
// request metrics come from the echoprometheus middleware; these cover
// what the request metrics cannot tell apart, such as a failed login that
// still answers 303.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gigcircle"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" (bad credentials or empty form), "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "conflict", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ProfileRendersTotal counts profiles served, by view.
var ProfileRendersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_renders_total",
		Help:      "Total number of profiles rendered, by view.",
	},
	[]string{"view"},
)

// UploadsTotal counts stored media files, by form field.
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of media files stored, by form field.",
	},
	[]string{"field"},
)

var EventsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_added_total",
		Help:      "Total number of events created through /add-event.",
	},
)
