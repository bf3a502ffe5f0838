package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("omamori")

var messagesCheckedCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "omamori_messages_checked",
	Help: "Number of messages submitted for evaluation",
})

var quotaDeniedCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "omamori_quota_denied",
	Help: "Number of requests denied by the per-minute quota",
})
