package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricInvitesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_invites_sent_total",
		Help: "Invitations pushed upstream.",
	})

	metricInterviewsScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_interviews_scheduled_total",
		Help: "Interviews scheduled upstream.",
	})

	metricDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_decisions_total",
		Help: "Final hire decisions recorded upstream.",
	}, []string{"decision"})

	metricCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_cache_lookups_total",
		Help: "Listing cache lookups by listing kind and outcome.",
	}, []string{"kind", "outcome"})
)

func observeCache(kind string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	metricCacheLookups.WithLabelValues(kind, outcome).Inc()
}
