package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	TeamDraws          prometheus.Counter
	MatchesReplicated  prometheus.Counter
	MessagesGenerated  prometheus.Counter
	MessageFallbacks   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
