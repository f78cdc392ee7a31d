package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apiclient",
			Name:      "requests_total",
			Help:      "Requests that reached the transport, by status code and method.",
		},
		[]string{"code", "method"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apiclient",
			Name:      "request_failures_total",
			Help:      "Requests that returned an error to the caller, including hook failures.",
		},
		[]string{"method"},
	)
)
