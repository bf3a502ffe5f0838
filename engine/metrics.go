package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messageEventDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "sentinel_message_duration_sec",
	Help: "Total duration of message event processing",
})

var messageEventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sentinel_messages_processed",
	Help: "Number of message events processed",
})

var messageEventErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sentinel_message_errors",
	Help: "Number of message events which failed processing",
})

var ruleHitCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sentinel_rule_hits",
	Help: "Number of detection rule hits",
}, []string{"rule"})

var accountBlockCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sentinel_accounts_blocked",
	Help: "Number of block transitions",
}, []string{"reason"})

var ownerAlertCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sentinel_owner_alerts",
	Help: "Owner alert dispatch outcomes",
}, []string{"status"})

var rateViolationsReported = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sentinel_rate_violations_reported",
	Help: "Number of rate limit violations reported by the quota layer",
})
