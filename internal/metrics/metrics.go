package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewNegotiationRetriesTotal returns a Prometheus counter for the number of
// quote resubmissions performed after a scheduling rejection
func NewNegotiationRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "negotiation_retries_total",
		Help: "Total number of quote resubmissions after a scheduling rejection",
	})
}

// NewWebhookEventsTotal returns a Prometheus counter for the number of
// provider webhook events processed
func NewWebhookEventsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Total number of provider webhook events processed",
	})
}
